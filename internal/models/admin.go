package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminAction is an append-only audit record. Never mutated or deleted.
type AdminAction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID     primitive.ObjectID `bson:"adminId" json:"adminId"`
	Action      string             `bson:"action" json:"action" validate:"required"`
	TargetType  string             `bson:"targetType,omitempty" json:"targetType,omitempty"`
	TargetID    primitive.ObjectID `bson:"targetId" json:"targetId"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// DashboardStats is the admin overview aggregate.
type DashboardStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	TotalTechnicians  int64   `json:"totalTechnicians"`
	TotalBookings     int64   `json:"totalBookings"`
	TodaysBookings    int64   `json:"todaysBookings"`
	PendingKyc        int64   `json:"pendingKyc"`
	ActiveFlags       int64   `json:"activeFlags"`
	CompletedBookings int64   `json:"completedBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
	ConversionRate    float64 `json:"conversionRate"`
}
