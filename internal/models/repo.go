package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	UsersCol        = "users"
	TechniciansCol  = "technicians"
	BookingsCol     = "bookings"
	ReviewsCol      = "reviews"
	FlagsCol        = "flags"
	AdminActionsCol = "admin_actions"
	PartsCol        = "parts"
	TrackingLogsCol = "tracking_logs"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) collection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name)
}

// EnsureIndexes creates the unique indexes the business rules lean on:
// one account per email/phone, one profile per technician, one review per
// booking. Safe to call on every startup.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := mdb.collection(UsersCol).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %v", err)
	}

	_, err = mdb.collection(TechniciansCol).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}}, Options: unique,
	})
	if err != nil {
		return fmt.Errorf("failed to create technician index: %v", err)
	}

	_, err = mdb.collection(ReviewsCol).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: unique,
	})
	if err != nil {
		return fmt.Errorf("failed to create review index: %v", err)
	}

	return nil
}
