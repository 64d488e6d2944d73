package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FlagOpen      = "open"
	FlagResolved  = "resolved"
	FlagDismissed = "dismissed"
)

// Flag is a report raised by one booking party against the other, or
// independently. It transitions once from open to resolved or dismissed.
type Flag struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RaisedBy       primitive.ObjectID  `bson:"raisedBy" json:"raisedBy"`
	AgainstUser    primitive.ObjectID  `bson:"againstUser" json:"againstUser"`
	Reason         string              `bson:"reason,omitempty" json:"reason,omitempty"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	Status         string              `bson:"status" json:"status"`
	ResolvedBy     *primitive.ObjectID `bson:"resolvedBy,omitempty" json:"resolvedBy,omitempty"`
	ResolvedAt     *time.Time          `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	RelatedBooking *primitive.ObjectID `bson:"relatedBooking,omitempty" json:"relatedBooking,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
}

func ValidFlagResolution(status string) bool {
	return status == FlagResolved || status == FlagDismissed
}
