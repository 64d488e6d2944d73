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

type TechnicianRepo interface {
	CreateProfile(ctx context.Context, profile *TechnicianProfile) (*TechnicianProfile, error)
	GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*TechnicianProfile, error)
	GetProfileByID(ctx context.Context, id primitive.ObjectID) (*TechnicianProfile, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update map[string]interface{}) (*TechnicianProfile, error)
	UpsertKycDocuments(ctx context.Context, userID primitive.ObjectID, docs KycDocuments) (*TechnicianProfile, error)
	SetKycStatus(ctx context.Context, id primitive.ObjectID, status string) (*TechnicianProfile, error)
	SetServiceLocation(ctx context.Context, userID primitive.ObjectID, latitude, longitude float64) (*TechnicianProfile, error)
	SetServiceRadius(ctx context.Context, userID primitive.ObjectID, radius float64) (*TechnicianProfile, error)
	FindApproved(ctx context.Context, expertise string) ([]*TechnicianProfile, error)
	SearchProfiles(ctx context.Context, expertise, serviceArea string) ([]*TechnicianProfile, error)
	ListProfiles(ctx context.Context) ([]*TechnicianProfile, error)
	SetRating(ctx context.Context, id primitive.ObjectID, avgRating float64, totalReviews int) error
	PushPartOrder(ctx context.Context, id primitive.ObjectID, order PartOrderSummary) error
	SetPartOrderStatus(ctx context.Context, buyerID, orderID primitive.ObjectID, status string) error
	DeleteProfileByUserID(ctx context.Context, userID primitive.ObjectID) error
	CountProfiles(ctx context.Context) (int64, error)
	CountProfilesByKycStatus(ctx context.Context, status string) (int64, error)
}

func (mdb *MongodbRepo) CreateProfile(ctx context.Context, profile *TechnicianProfile) (*TechnicianProfile, error) {
	res, err := mdb.collection(TechniciansCol).InsertOne(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to insert technician profile: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		profile.ID = oid
	}
	return profile, nil
}

func (mdb *MongodbRepo) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*TechnicianProfile, error) {
	var profile TechnicianProfile
	err := mdb.collection(TechniciansCol).FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find technician profile: %v", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) GetProfileByID(ctx context.Context, id primitive.ObjectID) (*TechnicianProfile, error) {
	var profile TechnicianProfile
	err := mdb.collection(TechniciansCol).FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find technician profile: %v", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update map[string]interface{}) (*TechnicianProfile, error) {
	set := bson.M{"updatedAt": time.Now()}
	for key, value := range update {
		set[key] = value
	}

	var profile TechnicianProfile
	err := mdb.collection(TechniciansCol).FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update technician profile: %v", err)
	}
	return &profile, nil
}

// UpsertKycDocuments records submitted documents and moves the profile to
// pending review. The upsert covers the defensive recovery path where a
// technician somehow has no profile; registration normally creates it.
func (mdb *MongodbRepo) UpsertKycDocuments(ctx context.Context, userID primitive.ObjectID, docs KycDocuments) (*TechnicianProfile, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"userId":       userID,
			"kycDocuments": docs,
			"kycStatus":    KycStatusPending,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"expertise":    []string{},
			"serviceAreas": []string{},
			"availability": DefaultAvailability(),
			"pricing":      0,
			"avgRating":    0,
			"totalReviews": 0,
			"partsOrdered": []PartOrderSummary{},
			"createdAt":    now,
		},
	}

	var profile TechnicianProfile
	err := mdb.collection(TechniciansCol).FindOneAndUpdate(ctx,
		bson.M{"userId": userID}, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)).Decode(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert kyc documents: %v", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) SetKycStatus(ctx context.Context, id primitive.ObjectID, status string) (*TechnicianProfile, error) {
	var profile TechnicianProfile
	err := mdb.collection(TechniciansCol).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"kycStatus": status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update kyc status: %v", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) SetServiceLocation(ctx context.Context, userID primitive.ObjectID, latitude, longitude float64) (*TechnicianProfile, error) {
	current, err := mdb.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	// Preserve a previously chosen radius; apply the default only on first set.
	radius := float64(DefaultServiceRadiusKm)
	if current.ServiceLocation != nil && current.ServiceLocation.ServiceRadius > 0 {
		radius = current.ServiceLocation.ServiceRadius
	}

	location := &ServiceLocation{
		Latitude:      latitude,
		Longitude:     longitude,
		ServiceRadius: radius,
	}

	var profile TechnicianProfile
	err = mdb.collection(TechniciansCol).FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"serviceLocation": location, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service location: %v", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) SetServiceRadius(ctx context.Context, userID primitive.ObjectID, radius float64) (*TechnicianProfile, error) {
	var profile TechnicianProfile
	err := mdb.collection(TechniciansCol).FindOneAndUpdate(ctx,
		bson.M{"userId": userID, "serviceLocation": bson.M{"$ne": nil}},
		bson.M{"$set": bson.M{"serviceLocation.serviceRadius": radius, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update service radius: %v", err)
	}
	return &profile, nil
}

func (mdb *MongodbRepo) FindApproved(ctx context.Context, expertise string) ([]*TechnicianProfile, error) {
	filter := bson.M{"kycStatus": KycStatusApproved}
	if expertise != "" {
		filter["expertise"] = expertise
	}
	return mdb.findProfiles(ctx, filter, nil)
}

func (mdb *MongodbRepo) SearchProfiles(ctx context.Context, expertise, serviceArea string) ([]*TechnicianProfile, error) {
	filter := bson.M{}
	if expertise != "" {
		filter["expertise"] = expertise
	}
	if serviceArea != "" {
		filter["serviceAreas"] = serviceArea
	}
	return mdb.findProfiles(ctx, filter, nil)
}

func (mdb *MongodbRepo) ListProfiles(ctx context.Context) ([]*TechnicianProfile, error) {
	return mdb.findProfiles(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (mdb *MongodbRepo) findProfiles(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*TechnicianProfile, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = mdb.collection(TechniciansCol).Find(ctx, filter, opts)
	} else {
		cursor, err = mdb.collection(TechniciansCol).Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list technician profiles: %v", err)
	}
	defer cursor.Close(ctx)

	profiles := []*TechnicianProfile{}
	for cursor.Next(ctx) {
		var profile TechnicianProfile
		if err := cursor.Decode(&profile); err != nil {
			return nil, fmt.Errorf("failed to decode technician profile: %v", err)
		}
		profiles = append(profiles, &profile)
	}
	return profiles, cursor.Err()
}

func (mdb *MongodbRepo) SetRating(ctx context.Context, id primitive.ObjectID, avgRating float64, totalReviews int) error {
	_, err := mdb.collection(TechniciansCol).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"avgRating":    avgRating,
			"totalReviews": totalReviews,
			"updatedAt":    time.Now(),
		}})
	if err != nil {
		return fmt.Errorf("failed to update technician rating: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) PushPartOrder(ctx context.Context, id primitive.ObjectID, order PartOrderSummary) error {
	_, err := mdb.collection(TechniciansCol).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"partsOrdered": order},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("failed to record part order on profile: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) SetPartOrderStatus(ctx context.Context, buyerID, orderID primitive.ObjectID, status string) error {
	_, err := mdb.collection(TechniciansCol).UpdateOne(ctx,
		bson.M{"_id": buyerID, "partsOrdered.o_id": orderID},
		bson.M{"$set": bson.M{"partsOrdered.$.status": status, "updatedAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to update embedded order status: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) DeleteProfileByUserID(ctx context.Context, userID primitive.ObjectID) error {
	_, err := mdb.collection(TechniciansCol).DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete technician profile: %v", err)
	}
	return nil
}

func (mdb *MongodbRepo) CountProfiles(ctx context.Context) (int64, error) {
	return mdb.collection(TechniciansCol).CountDocuments(ctx, bson.M{})
}

func (mdb *MongodbRepo) CountProfilesByKycStatus(ctx context.Context, status string) (int64, error) {
	return mdb.collection(TechniciansCol).CountDocuments(ctx, bson.M{"kycStatus": status})
}
