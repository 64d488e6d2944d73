package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer   = "customer"
	RoleTechnician = "technician"
	RoleAdmin      = "admin"
)

const (
	UserStatusActive              = "active"
	UserStatusSuspended           = "suspended"
	UserStatusPendingVerification = "pending_verification"
)

// GeoLocation is a user's last known position plus a free-text address.
type GeoLocation struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Address   string  `bson:"address,omitempty" json:"address,omitempty"`
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName  string             `bson:"userName" json:"userName" validate:"required"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Phone     string             `bson:"phone" json:"phone" validate:"required"`
	Password  string             `bson:"password" json:"-" validate:"required,min=8"`
	Role      string             `bson:"role" json:"role" validate:"required,oneof=customer technician admin"`
	Status    string             `bson:"status" json:"status"`
	Location  *GeoLocation       `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary carries the public subset of a user for embedding in other
// resources (bookings, flags, technician listings).
type UserSummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	UserName string             `bson:"userName" json:"userName"`
	Email    string             `bson:"email" json:"email"`
	Phone    string             `bson:"phone" json:"phone"`
	Location *GeoLocation       `bson:"location,omitempty" json:"location,omitempty"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:       u.ID,
		UserName: u.UserName,
		Email:    u.Email,
		Phone:    u.Phone,
		Location: u.Location,
	}
}

func ValidUserStatus(status string) bool {
	switch status {
	case UserStatusActive, UserStatusSuspended, UserStatusPendingVerification:
		return true
	}
	return false
}
