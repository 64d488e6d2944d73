package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AdminRepo interface {
	LogAdminAction(ctx context.Context, action *AdminAction) (*AdminAction, error)
}

func (mdb *MongodbRepo) LogAdminAction(ctx context.Context, action *AdminAction) (*AdminAction, error) {
	res, err := mdb.collection(AdminActionsCol).InsertOne(ctx, action)
	if err != nil {
		return nil, fmt.Errorf("failed to insert admin action: %v", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		action.ID = oid
	}
	return action, nil
}
