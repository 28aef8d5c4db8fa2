package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"slotbooker/config"
	"slotbooker/models"
	"slotbooker/services/notification"

	"github.com/hibiken/asynq"
)

const TypeOTPDeliver = "otp:deliver"

// InitOTPWorker runs the async OTP delivery worker in background.
func InitOTPWorker(sender notification.EmailSender) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOTPDeliver, handleOTPDeliveryTask(sender))

	// Start async worker with retry logic.
	go func() {
		log.Println("[OTPWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[OTPWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[OTPWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleOTPDeliveryTask(sender notification.EmailSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.OTPDeliveryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[OTPWorker] Invalid payload: %v", err)
			return err
		}

		msg := notification.EmailMessage{
			To:      p.Email,
			Subject: "Your Slotbooker login code",
			Body:    fmt.Sprintf("Your Slotbooker OTP is: %s. It expires in %d minutes.", p.Code, p.TTLMinutes),
		}
		if err := sender.Send(ctx, msg); err != nil {
			log.Printf("[OTPWorker] Failed to deliver OTP %s to %s: %v", p.TaskID, p.Email, err)
			return err
		}
		return nil
	}
}
