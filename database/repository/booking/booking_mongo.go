package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"slotbooker/config"
	"slotbooker/database"
	"slotbooker/models"
	"slotbooker/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("booking repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new booking document. The partial unique index on
// (date, updatedSlot.time) rejects a second active booking for the same
// slot, which surfaces here as ErrSlotTaken.
func (repo *MongoBookingRepo) Create(record *models.BookingRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// ListByUser returns booked slots grouped by date for the given email.
func (repo *MongoBookingRepo) ListByUser(email string) (models.BookingsByDate, error) {
	return repo.list(bson.M{"bookedBy": email})
}

// ListAll returns every booked slot grouped by date.
func (repo *MongoBookingRepo) ListAll() (models.BookingsByDate, error) {
	return repo.list(bson.M{})
}

func (repo *MongoBookingRepo) list(filter bson.M) (models.BookingsByDate, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make(models.BookingsByDate)
	for cursor.Next(ctx) {
		var rec models.BookingRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings[rec.Date] = append(bookings[rec.Date], rec.UpdatedSlot)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

// Cancel flips updatedSlot.isBooked to false on the record matching
// date+time. The booked state is deliberately not part of the filter.
func (repo *MongoBookingRepo) Cancel(date, slotTime string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"date": date, "updatedSlot.time": slotTime}
	update := bson.M{"$set": bson.M{"updatedSlot.isBooked": false}}

	result, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error cancelling booking %s %s: %w", date, slotTime, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
