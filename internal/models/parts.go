package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	OrderPlaced     = "placed"
	OrderDispatched = "dispatched"
	OrderInTransit  = "in transit"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
)

type Part struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Stock       int                `bson:"stock" json:"stock" validate:"min=0"`
	Supplier    string             `bson:"supplier,omitempty" json:"supplier,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TrackingLog records one part order. BuyerID references the technician's
// profile document, price is snapshotted at order time.
type TrackingLog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PartID      primitive.ObjectID `bson:"p_id" json:"p_id"`
	BuyerID     primitive.ObjectID `bson:"buyer_ID" json:"buyer_ID"`
	Price       float64            `bson:"price" json:"price"`
	Status      string             `bson:"status" json:"status"`
	TrackingURL string             `bson:"trackingURL" json:"trackingURL"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	Part *Part `bson:"-" json:"part,omitempty"`
}

func ValidOrderStatus(status string) bool {
	switch status {
	case OrderPlaced, OrderDispatched, OrderInTransit, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
