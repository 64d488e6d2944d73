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

type PartRepo interface {
	CreatePart(ctx context.Context, part *Part) (*Part, error)
	UpdatePart(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Part, error)
	DeletePart(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetPartByID(ctx context.Context, id primitive.ObjectID) (*Part, error)
	ListPartsInStock(ctx context.Context) ([]*Part, error)
	SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*Part, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID) error
	CreateTrackingLog(ctx context.Context, log *TrackingLog) (*TrackingLog, error)
	DeleteTrackingLog(ctx context.Context, id primitive.ObjectID) error
	ListOrdersByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*TrackingLog, error)
	ListOrders(ctx context.Context) ([]*TrackingLog, error)
	SetOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*TrackingLog, error)
}

func (mdb *MongodbRepo) CreatePart(ctx context.Context, part *Part) (*Part, error) {
	res, err := mdb.collection(PartsCol).InsertOne(ctx, part)
	if err != nil {
		return nil, fmt.Errorf("failed to insert part: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		part.ID = oid
	}
	return part, nil
}

func (mdb *MongodbRepo) UpdatePart(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*Part, error) {
	set := bson.M{"updatedAt": time.Now()}
	for key, value := range update {
		set[key] = value
	}

	var part Part
	err := mdb.collection(PartsCol).FindOneAndUpdate(ctx,
		bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&part)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update part: %v", err)
	}
	return &part, nil
}

func (mdb *MongodbRepo) DeletePart(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := mdb.collection(PartsCol).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete part: %v", err)
	}
	return res.DeletedCount > 0, nil
}

func (mdb *MongodbRepo) GetPartByID(ctx context.Context, id primitive.ObjectID) (*Part, error) {
	var part Part
	err := mdb.collection(PartsCol).FindOne(ctx, bson.M{"_id": id}).Decode(&part)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find part: %v", err)
	}
	return &part, nil
}

func (mdb *MongodbRepo) ListPartsInStock(ctx context.Context) ([]*Part, error) {
	cursor, err := mdb.collection(PartsCol).Find(ctx,
		bson.M{"stock": bson.M{"$gt": 0}},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list parts: %v", err)
	}
	defer cursor.Close(ctx)

	parts := []*Part{}
	for cursor.Next(ctx) {
		var part Part
		if err := cursor.Decode(&part); err != nil {
			return nil, fmt.Errorf("failed to decode part: %v", err)
		}
		parts = append(parts, &part)
	}
	return parts, cursor.Err()
}

func (mdb *MongodbRepo) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*Part, error) {
	var part Part
	err := mdb.collection(PartsCol).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"stock": stock, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&part)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set stock: %v", err)
	}
	return &part, nil
}

// DecrementStock takes one unit only while stock is positive, in a single
// conditional update so concurrent orders cannot drive stock negative.
// Returns false when no unit was available.
func (mdb *MongodbRepo) DecrementStock(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := mdb.collection(PartsCol).UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"stock": -1},
			"$set": bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %v", err)
	}
	return res.ModifiedCount > 0, nil
}

func (mdb *MongodbRepo) IncrementStock(ctx context.Context, id primitive.ObjectID) error {
	_, err := mdb.collection(PartsCol).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": 1},
			"$set": bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to restore stock: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateTrackingLog(ctx context.Context, log *TrackingLog) (*TrackingLog, error) {
	res, err := mdb.collection(TrackingLogsCol).InsertOne(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("failed to insert tracking log: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		log.ID = oid
	}
	return log, nil
}

func (mdb *MongodbRepo) DeleteTrackingLog(ctx context.Context, id primitive.ObjectID) error {
	_, err := mdb.collection(TrackingLogsCol).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete tracking log: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListOrdersByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*TrackingLog, error) {
	return mdb.findOrders(ctx, bson.M{"buyer_ID": buyerID})
}

func (mdb *MongodbRepo) ListOrders(ctx context.Context) ([]*TrackingLog, error) {
	return mdb.findOrders(ctx, bson.M{})
}

func (mdb *MongodbRepo) SetOrderStatus(ctx context.Context, id primitive.ObjectID, status string) (*TrackingLog, error) {
	var log TrackingLog
	err := mdb.collection(TrackingLogsCol).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&log)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %v", err)
	}
	return &log, nil
}

func (mdb *MongodbRepo) findOrders(ctx context.Context, filter bson.M) ([]*TrackingLog, error) {
	cursor, err := mdb.collection(TrackingLogsCol).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %v", err)
	}
	defer cursor.Close(ctx)

	orders := []*TrackingLog{}
	for cursor.Next(ctx) {
		var log TrackingLog
		if err := cursor.Decode(&log); err != nil {
			return nil, fmt.Errorf("failed to decode order: %v", err)
		}
		orders = append(orders, &log)
	}
	return orders, cursor.Err()
}
