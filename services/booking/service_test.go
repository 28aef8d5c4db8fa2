package booking

import (
	"testing"

	bookingRepo "slotbooker/database/repository/booking"
	"slotbooker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo mimics the Mongo repository in memory, including the
// partial unique index (one active booking per date+time) and the
// date+time-only cancel filter.
type fakeBookingRepo struct {
	records []models.BookingRecord
}

func (f *fakeBookingRepo) Create(record *models.BookingRecord) error {
	if record.UpdatedSlot.IsBooked {
		for _, r := range f.records {
			if r.Date == record.Date && r.UpdatedSlot.Time == record.UpdatedSlot.Time && r.UpdatedSlot.IsBooked {
				return bookingRepo.ErrSlotTaken
			}
		}
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeBookingRepo) ListByUser(email string) (models.BookingsByDate, error) {
	out := make(models.BookingsByDate)
	for _, r := range f.records {
		if r.BookedBy == email {
			out[r.Date] = append(out[r.Date], r.UpdatedSlot)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListAll() (models.BookingsByDate, error) {
	out := make(models.BookingsByDate)
	for _, r := range f.records {
		out[r.Date] = append(out[r.Date], r.UpdatedSlot)
	}
	return out, nil
}

func (f *fakeBookingRepo) Cancel(date, slotTime string) error {
	matched := false
	for i := range f.records {
		if f.records[i].Date == date && f.records[i].UpdatedSlot.Time == slotTime {
			f.records[i].UpdatedSlot.IsBooked = false
			matched = true
			break
		}
	}
	if !matched {
		return bookingRepo.ErrNotFound
	}
	return nil
}

func newTestService() (*DefaultBookingService, *fakeBookingRepo) {
	repo := &fakeBookingRepo{}
	return &DefaultBookingService{Repo: repo}, repo
}

func TestBookThenListIncludesSlot(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Book("sam@example.com", "Mon Jan 01 2024", models.TimeSlot{Time: "09:00", IsBooked: true})
	require.NoError(t, err)

	all, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, all["Mon Jan 01 2024"], 1)
	assert.Equal(t, models.TimeSlot{Time: "09:00", IsBooked: true}, all["Mon Jan 01 2024"][0])

	mine, err := svc.ListForUser("sam@example.com")
	require.NoError(t, err)
	assert.Len(t, mine["Mon Jan 01 2024"], 1)

	other, err := svc.ListForUser("someone@example.com")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestBookRejectsActiveDuplicate(t *testing.T) {
	svc, _ := newTestService()

	slot := models.TimeSlot{Time: "09:00", IsBooked: true}
	require.NoError(t, svc.Book("a@example.com", "Mon Jan 01 2024", slot))

	err := svc.Book("b@example.com", "Mon Jan 01 2024", slot)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Same time on a different date is fine.
	assert.NoError(t, svc.Book("b@example.com", "Tue Jan 02 2024", slot))
}

func TestBookValidatesSlot(t *testing.T) {
	svc, _ := newTestService()

	err := svc.Book("a@example.com", "Mon Jan 01 2024", models.TimeSlot{Time: "09:15", IsBooked: true})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	err = svc.Book("a@example.com", "", models.TimeSlot{Time: "09:00", IsBooked: true})
	assert.ErrorIs(t, err, ErrInvalidSlot)

	err = svc.Book("a@example.com", "Mon Jan 01 2024", models.TimeSlot{Time: "21:00", IsBooked: true})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCancelMarksSlotUnbooked(t *testing.T) {
	svc, _ := newTestService()

	slot := models.TimeSlot{Time: "10:30", IsBooked: true}
	require.NoError(t, svc.Book("a@example.com", "Mon Jan 01 2024", slot))

	require.NoError(t, svc.Cancel("Mon Jan 01 2024", "10:30"))

	all, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, all["Mon Jan 01 2024"], 1)
	assert.False(t, all["Mon Jan 01 2024"][0].IsBooked)

	// Cancelled slots can be booked again.
	assert.NoError(t, svc.Book("b@example.com", "Mon Jan 01 2024", slot))
}

func TestCancelMatchesOnDateAndTimeOnly(t *testing.T) {
	svc, _ := newTestService()

	require.NoError(t, svc.Book("a@example.com", "Mon Jan 01 2024", models.TimeSlot{Time: "10:30", IsBooked: true}))
	require.NoError(t, svc.Cancel("Mon Jan 01 2024", "10:30"))

	// The filter is date+time, not date+time+booked, so a repeat cancel
	// still matches the now-unbooked record and reports success.
	assert.NoError(t, svc.Cancel("Mon Jan 01 2024", "10:30"))
}

func TestCancelMissingBookingReturnsNotFound(t *testing.T) {
	svc, _ := newTestService()
	assert.ErrorIs(t, svc.Cancel("Mon Jan 01 2024", "09:00"), ErrNotFound)
}
