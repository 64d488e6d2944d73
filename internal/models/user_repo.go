package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, userName, email, phone string) (*User, error)
	UpdateUserLocation(ctx context.Context, id primitive.ObjectID, location *GeoLocation) (*User, error)
	UpdateUserStatus(ctx context.Context, id primitive.ObjectID, status string) (*User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	ListUsers(ctx context.Context) ([]*User, error)
	CountUsers(ctx context.Context) (int64, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col := mdb.collection(UsersCol)

	count, err := col.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"email": user.Email},
		bson.M{"phone": user.Phone},
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %v", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("email or phone already exists")
	}

	res, err := col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("email or phone already exists")
		}
		return nil, fmt.Errorf("failed to insert user: %v", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := mdb.collection(UsersCol).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user by email: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var user User
	err := mdb.collection(UsersCol).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*User, error) {
	users := make(map[primitive.ObjectID]*User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	cursor, err := mdb.collection(UsersCol).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var user User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users[user.ID] = &user
	}
	return users, cursor.Err()
}

func (mdb *MongodbRepo) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, userName, email, phone string) (*User, error) {
	col := mdb.collection(UsersCol)

	count, err := col.CountDocuments(ctx, bson.M{
		"_id": bson.M{"$ne": id},
		"$or": bson.A{bson.M{"email": email}, bson.M{"phone": phone}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing users: %v", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("email or phone already exists")
	}

	update := bson.M{"$set": bson.M{
		"userName":  userName,
		"email":     email,
		"phone":     phone,
		"updatedAt": time.Now(),
	}}

	var user User
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.Conflict("email or phone already exists")
		}
		return nil, fmt.Errorf("failed to update user: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) UpdateUserLocation(ctx context.Context, id primitive.ObjectID, location *GeoLocation) (*User, error) {
	update := bson.M{"$set": bson.M{
		"location":  location,
		"updatedAt": time.Now(),
	}}

	var user User
	err := mdb.collection(UsersCol).FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) UpdateUserStatus(ctx context.Context, id primitive.ObjectID, status string) (*User, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}

	var user User
	err := mdb.collection(UsersCol).FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %v", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	_, err := mdb.collection(UsersCol).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) ListUsers(ctx context.Context) ([]*User, error) {
	cursor, err := mdb.collection(UsersCol).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %v", err)
	}
	defer cursor.Close(ctx)

	users := []*User{}
	for cursor.Next(ctx) {
		var user User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}
		users = append(users, &user)
	}
	return users, cursor.Err()
}

func (mdb *MongodbRepo) CountUsers(ctx context.Context) (int64, error) {
	return mdb.collection(UsersCol).CountDocuments(ctx, bson.M{})
}
