package models

import "fmt"

// TimeSlot is a single 30-minute booking window identified by its start time.
type TimeSlot struct {
	Time     string `bson:"time" json:"time"` // 24-hour "HH:MM"
	IsBooked bool   `bson:"isBooked" json:"isBooked"`
}

// GenerateTimeSlots returns the canonical grid of bookable slots for any
// date: 08:00 through 20:30 inclusive at 30-minute steps, all unbooked.
// The grid is the same for every date; persisted records only cover the
// slots that were actually booked.
func GenerateTimeSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, 26)
	for hour := 8; hour <= 20; hour++ {
		for _, minutes := range []string{"00", "30"} {
			slots = append(slots, TimeSlot{Time: fmt.Sprintf("%02d:%s", hour, minutes)})
		}
	}
	return slots
}
