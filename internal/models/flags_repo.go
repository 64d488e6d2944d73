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

type FlagRepo interface {
	CreateFlag(ctx context.Context, flag *Flag) (*Flag, error)
	GetFlagByID(ctx context.Context, id primitive.ObjectID) (*Flag, error)
	ListFlagsByRaiser(ctx context.Context, userID primitive.ObjectID) ([]*Flag, error)
	ListFlags(ctx context.Context) ([]*Flag, error)
	ResolveFlag(ctx context.Context, id primitive.ObjectID, status string, resolvedBy primitive.ObjectID) (*Flag, error)
	CountFlagsByStatus(ctx context.Context, status string) (int64, error)
}

func (mdb *MongodbRepo) CreateFlag(ctx context.Context, flag *Flag) (*Flag, error) {
	res, err := mdb.collection(FlagsCol).InsertOne(ctx, flag)
	if err != nil {
		return nil, fmt.Errorf("failed to insert flag: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		flag.ID = oid
	}
	return flag, nil
}

func (mdb *MongodbRepo) GetFlagByID(ctx context.Context, id primitive.ObjectID) (*Flag, error) {
	var flag Flag
	err := mdb.collection(FlagsCol).FindOne(ctx, bson.M{"_id": id}).Decode(&flag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find flag: %v", err)
	}
	return &flag, nil
}

func (mdb *MongodbRepo) ListFlagsByRaiser(ctx context.Context, userID primitive.ObjectID) ([]*Flag, error) {
	return mdb.findFlags(ctx, bson.M{"raisedBy": userID})
}

func (mdb *MongodbRepo) ListFlags(ctx context.Context) ([]*Flag, error) {
	return mdb.findFlags(ctx, bson.M{})
}

// ResolveFlag moves an open flag to resolved or dismissed. The open-status
// filter makes the transition one-shot; a nil result means the flag was
// missing or already settled.
func (mdb *MongodbRepo) ResolveFlag(ctx context.Context, id primitive.ObjectID, status string, resolvedBy primitive.ObjectID) (*Flag, error) {
	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":     status,
		"resolvedBy": resolvedBy,
		"resolvedAt": now,
	}}

	var flag Flag
	err := mdb.collection(FlagsCol).FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": FlagOpen}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&flag)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve flag: %v", err)
	}
	return &flag, nil
}

func (mdb *MongodbRepo) CountFlagsByStatus(ctx context.Context, status string) (int64, error) {
	return mdb.collection(FlagsCol).CountDocuments(ctx, bson.M{"status": status})
}

func (mdb *MongodbRepo) findFlags(ctx context.Context, filter bson.M) ([]*Flag, error) {
	cursor, err := mdb.collection(FlagsCol).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list flags: %v", err)
	}
	defer cursor.Close(ctx)

	flags := []*Flag{}
	for cursor.Next(ctx) {
		var flag Flag
		if err := cursor.Decode(&flag); err != nil {
			return nil, fmt.Errorf("failed to decode flag: %v", err)
		}
		flags = append(flags, &flag)
	}
	return flags, cursor.Err()
}
