package booking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	bookingRepo "slotbooker/database/repository/booking"
	"slotbooker/models"
	"slotbooker/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService on top of the Mongo
// booking repository, with a short-lived Redis cache in front of the
// all-bookings listing. Cache is optional; a nil client disables it.
type DefaultBookingService struct {
	Repo  bookingRepo.BookingRepository
	Cache *redis.Client
}

func (s *DefaultBookingService) ListForUser(email string) (models.BookingsByDate, error) {
	return s.Repo.ListByUser(email)
}

func (s *DefaultBookingService) ListAll() (models.BookingsByDate, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, utils.AllBookingsCacheKey).Result(); err == nil {
			var cached models.BookingsByDate
			if jerr := json.Unmarshal([]byte(data), &cached); jerr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("all-bookings cache read failed", zap.Error(err))
		}
	}

	bookings, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, jerr := json.Marshal(bookings); jerr == nil {
			if err := s.Cache.Set(ctx, utils.AllBookingsCacheKey, data, utils.AllBookingsCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("all-bookings cache write failed", zap.Error(err))
			}
		}
	}
	return bookings, nil
}

func (s *DefaultBookingService) Book(email, date string, slot models.TimeSlot) error {
	date = strings.TrimSpace(date)
	if date == "" || !isCanonicalSlotTime(slot.Time) {
		return ErrInvalidSlot
	}

	record := &models.BookingRecord{
		Date:        date,
		UpdatedSlot: slot,
		BookedBy:    email,
	}
	if err := s.Repo.Create(record); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return ErrSlotTaken
		}
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *DefaultBookingService) Cancel(date, slotTime string) error {
	if err := s.Repo.Cancel(date, slotTime); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache()
	return nil
}

func (s *DefaultBookingService) invalidateCache() {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Del(ctx, utils.AllBookingsCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("all-bookings cache invalidation failed", zap.Error(err))
	}
}

// isCanonicalSlotTime reports whether t is one of the generated half-hour
// slot times (08:00 through 20:30).
func isCanonicalSlotTime(t string) bool {
	for _, slot := range models.GenerateTimeSlots() {
		if slot.Time == t {
			return true
		}
	}
	return false
}
