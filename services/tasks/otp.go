package tasks

import (
	"encoding/json"

	"slotbooker/models"

	"github.com/hibiken/asynq"
)

const TypeOTPDeliver = "otp:deliver"

// NewOTPDeliveryTask builds an asynq task carrying an OTP email. Delivery
// retries are capped tightly: a code outlives its usefulness long before
// asynq's default retry schedule finishes.
func NewOTPDeliveryTask(payload models.OTPDeliveryPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeOTPDeliver, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
