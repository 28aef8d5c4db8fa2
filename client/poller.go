package client

import (
	"context"
	"sync"
	"time"

	"slotbooker/models"

	"go.uber.org/zap"
)

// Grid maps a date key to its full 26-slot list.
type Grid map[string][]models.TimeSlot

// MergeIntoGrid expands a sparse booked-slot response into full per-date
// slot grids: every date present in the response gets a freshly generated
// slot list with the booked flags copied over by time. Slots absent from
// the response stay unbooked, so partial results never break rendering.
func MergeIntoGrid(bookings models.BookingsByDate) Grid {
	grid := make(Grid, len(bookings))
	for date, booked := range bookings {
		slots := models.GenerateTimeSlots()
		for i, slot := range slots {
			for _, b := range booked {
				if b.Time == slot.Time {
					slots[i].IsBooked = b.IsBooked
					break
				}
			}
		}
		grid[date] = slots
	}
	return grid
}

// Poller keeps two merged views in sync with the server: the caller's own
// bookings and the global availability grid. It re-fetches both on a fixed
// interval, backing off exponentially while the server is unreachable, and
// applies optimistic local updates when a book or cancel call succeeds.
type Poller struct {
	client     *Client
	interval   time.Duration
	maxBackoff time.Duration
	logger     *zap.Logger

	mu           sync.RWMutex
	myBookings   Grid
	availability Grid
}

// NewPoller constructs a Poller. A non-positive interval falls back to 2s.
func NewPoller(c *Client, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		client:       c,
		interval:     interval,
		maxBackoff:   time.Minute,
		logger:       logger,
		myBookings:   make(Grid),
		availability: make(Grid),
	}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	delay := p.interval
	for {
		if err := p.Refresh(ctx); err != nil {
			p.logger.Warn("poll failed", zap.Error(err))
			delay *= 2
			if delay > p.maxBackoff {
				delay = p.maxBackoff
			}
		} else {
			delay = p.interval
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// Refresh fetches both views once and replaces local state. The two
// fetches are independent; either can fail without clobbering the other.
func (p *Poller) Refresh(ctx context.Context) error {
	mine, myErr := p.client.Bookings(ctx)
	all, allErr := p.client.AllBookings(ctx)

	p.mu.Lock()
	if myErr == nil {
		p.myBookings = MergeIntoGrid(mine)
	}
	if allErr == nil {
		p.availability = MergeIntoGrid(all)
	}
	p.mu.Unlock()

	if myErr != nil {
		return myErr
	}
	return allErr
}

// Book books a slot and, on success, marks it booked locally without
// waiting for the next poll cycle.
func (p *Poller) Book(ctx context.Context, date, slotTime string) error {
	if err := p.client.Book(ctx, date, slotTime); err != nil {
		return err
	}
	p.applyLocal(date, slotTime, true)
	return nil
}

// Cancel cancels a booking and, on success, marks the slot free locally.
func (p *Poller) Cancel(ctx context.Context, date, slotTime string) error {
	if err := p.client.Cancel(ctx, date, slotTime); err != nil {
		return err
	}
	p.applyLocal(date, slotTime, false)
	return nil
}

func (p *Poller) applyLocal(date, slotTime string, booked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, grid := range []Grid{p.myBookings, p.availability} {
		slots, ok := grid[date]
		if !ok {
			slots = models.GenerateTimeSlots()
			grid[date] = slots
		}
		for i := range slots {
			if slots[i].Time == slotTime {
				slots[i].IsBooked = booked
				break
			}
		}
	}
}

// Availability returns the merged global slot grid for a date. Dates with
// no recorded bookings yield a fresh all-unbooked grid.
func (p *Poller) Availability(date string) []models.TimeSlot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copySlots(p.availability[date])
}

// MyBookings returns the caller's merged slot grid for a date.
func (p *Poller) MyBookings(date string) []models.TimeSlot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copySlots(p.myBookings[date])
}

func copySlots(slots []models.TimeSlot) []models.TimeSlot {
	if slots == nil {
		return models.GenerateTimeSlots()
	}
	out := make([]models.TimeSlot, len(slots))
	copy(out, slots)
	return out
}
