package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingPending    = "pending"
	BookingAccepted   = "accepted"
	BookingRejected   = "rejected"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// bookingTransitions enumerates every legal status move. Rejected, completed
// and cancelled are terminal.
var bookingTransitions = map[string][]string{
	BookingPending:    {BookingAccepted, BookingRejected, BookingCancelled},
	BookingAccepted:   {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted, BookingCancelled},
}

// BookingLocation is the customer-supplied service point for a booking.
type BookingLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

type Booking struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	// TechnicianID always references the TechnicianProfile document, never
	// the technician's user record.
	TechnicianID       primitive.ObjectID  `bson:"technicianId" json:"technicianId"`
	ServiceType        string              `bson:"serviceType" json:"serviceType" validate:"required"`
	Description        string              `bson:"description,omitempty" json:"description,omitempty"`
	Address            string              `bson:"address,omitempty" json:"address,omitempty"`
	ScheduledDate      time.Time           `bson:"scheduledDate,omitempty" json:"scheduledDate,omitempty"`
	ScheduledTime      string              `bson:"scheduledTime,omitempty" json:"scheduledTime,omitempty"`
	Status             string              `bson:"status" json:"status"`
	ReviewID           *primitive.ObjectID `bson:"reviewId,omitempty" json:"reviewId,omitempty"`
	CancellationReason string              `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	CancelledBy        *primitive.ObjectID `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time          `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	ServiceLocation    BookingLocation     `bson:"serviceLocation" json:"serviceLocation"`
	// Distance in km from the customer's service point to the technician's
	// service location at creation time; nil when the technician had none.
	Distance *float64 `bson:"distance,omitempty" json:"distance,omitempty"`
	// Version guards status updates against concurrent conflicting writes.
	Version   int64     `bson:"version" json:"version"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	Customer   *UserSummary       `bson:"-" json:"customer,omitempty"`
	Technician *TechnicianProfile `bson:"-" json:"technician,omitempty"`
}

func ValidBookingStatus(status string) bool {
	switch status {
	case BookingPending, BookingAccepted, BookingRejected,
		BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

func IsTerminalStatus(status string) bool {
	switch status {
	case BookingRejected, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another. Terminal states absorb.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
