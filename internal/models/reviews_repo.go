package models

import (
	"context"
	"errors"
	"fmt"

	"github.com/repair-hero/server/internal/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByBooking(ctx context.Context, bookingID primitive.ObjectID) (*Review, error)
	ListReviewsByTechnician(ctx context.Context, technicianID primitive.ObjectID) ([]*Review, error)
	ListReviews(ctx context.Context) ([]*Review, error)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	res, err := mdb.collection(ReviewsCol).InsertOne(ctx, review)
	if err != nil {
		// The unique bookingId index rejects the second review for a booking.
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("review already exists for this booking")
		}
		return nil, fmt.Errorf("failed to insert review: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return review, nil
}

func (mdb *MongodbRepo) GetReviewByBooking(ctx context.Context, bookingID primitive.ObjectID) (*Review, error) {
	var review Review
	err := mdb.collection(ReviewsCol).FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&review)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find review: %v", err)
	}
	return &review, nil
}

func (mdb *MongodbRepo) ListReviewsByTechnician(ctx context.Context, technicianID primitive.ObjectID) ([]*Review, error) {
	return mdb.findReviews(ctx, bson.M{"technicianId": technicianID})
}

func (mdb *MongodbRepo) ListReviews(ctx context.Context) ([]*Review, error) {
	return mdb.findReviews(ctx, bson.M{})
}

func (mdb *MongodbRepo) findReviews(ctx context.Context, filter bson.M) ([]*Review, error) {
	cursor, err := mdb.collection(ReviewsCol).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %v", err)
	}
	defer cursor.Close(ctx)

	reviews := []*Review{}
	for cursor.Next(ctx) {
		var review Review
		if err := cursor.Decode(&review); err != nil {
			return nil, fmt.Errorf("failed to decode review: %v", err)
		}
		reviews = append(reviews, &review)
	}
	return reviews, cursor.Err()
}
