package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is immutable once filed; one per completed booking.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID  primitive.ObjectID `bson:"bookingId" json:"bookingId"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	// TechnicianID references the TechnicianProfile document.
	TechnicianID primitive.ObjectID `bson:"technicianId" json:"technicianId"`
	Rating       int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment      string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
