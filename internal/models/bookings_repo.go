package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, version int64, status string) (*Booking, error)
	CancelBooking(ctx context.Context, id primitive.ObjectID, version int64, cancelledBy primitive.ObjectID, reason string) (*Booking, error)
	SetBookingReview(ctx context.Context, bookingID, reviewID primitive.ObjectID) error
	ListBookingsByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]*Booking, error)
	ListBookingsByTechnician(ctx context.Context, technicianID primitive.ObjectID) ([]*Booking, error)
	ListBookings(ctx context.Context) ([]*Booking, error)
	ListBookingsByStatus(ctx context.Context, status string) ([]*Booking, error)
	CountBookings(ctx context.Context) (int64, error)
	CountBookingsByStatus(ctx context.Context, status string) (int64, error)
	CountBookingsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

func (mdb *MongodbRepo) CreateBooking(ctx context.Context, booking *Booking) (*Booking, error) {
	res, err := mdb.collection(BookingsCol).InsertOne(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to insert booking: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid
	}
	return booking, nil
}

func (mdb *MongodbRepo) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*Booking, error) {
	var booking Booking
	err := mdb.collection(BookingsCol).FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find booking: %v", err)
	}
	return &booking, nil
}

// UpdateBookingStatus writes the new status only when the version still
// matches, bumping it on success. A nil result with nil error means no
// document matched: either the booking is gone or a concurrent transition
// won the race.
func (mdb *MongodbRepo) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, version int64, status string) (*Booking, error) {
	update := bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
		"$inc": bson.M{"version": 1},
	}

	var booking Booking
	err := mdb.collection(BookingsCol).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "version": version}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking status: %v", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) CancelBooking(ctx context.Context, id primitive.ObjectID, version int64, cancelledBy primitive.ObjectID, reason string) (*Booking, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"status":             BookingCancelled,
			"cancellationReason": reason,
			"cancelledBy":        cancelledBy,
			"cancelledAt":        now,
			"updatedAt":          now,
		},
		"$inc": bson.M{"version": 1},
	}

	var booking Booking
	err := mdb.collection(BookingsCol).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "version": version}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %v", err)
	}
	return &booking, nil
}

func (mdb *MongodbRepo) SetBookingReview(ctx context.Context, bookingID, reviewID primitive.ObjectID) error {
	_, err := mdb.collection(BookingsCol).UpdateOne(ctx,
		bson.M{"_id": bookingID},
		bson.M{"$set": bson.M{"reviewId": reviewID, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to attach review to booking: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListBookingsByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{"customerId": customerID})
}

func (mdb *MongodbRepo) ListBookingsByTechnician(ctx context.Context, technicianID primitive.ObjectID) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{"technicianId": technicianID})
}

func (mdb *MongodbRepo) ListBookings(ctx context.Context) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{})
}

func (mdb *MongodbRepo) ListBookingsByStatus(ctx context.Context, status string) ([]*Booking, error) {
	return mdb.findBookings(ctx, bson.M{"status": status})
}

func (mdb *MongodbRepo) findBookings(ctx context.Context, filter bson.M) ([]*Booking, error) {
	cursor, err := mdb.collection(BookingsCol).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %v", err)
	}
	defer cursor.Close(ctx)

	bookings := []*Booking{}
	for cursor.Next(ctx) {
		var booking Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %v", err)
		}
		bookings = append(bookings, &booking)
	}
	return bookings, cursor.Err()
}

func (mdb *MongodbRepo) CountBookings(ctx context.Context) (int64, error) {
	return mdb.collection(BookingsCol).CountDocuments(ctx, bson.M{})
}

func (mdb *MongodbRepo) CountBookingsByStatus(ctx context.Context, status string) (int64, error) {
	return mdb.collection(BookingsCol).CountDocuments(ctx, bson.M{"status": status})
}

func (mdb *MongodbRepo) CountBookingsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	return mdb.collection(BookingsCol).CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": from, "$lt": to},
	})
}
