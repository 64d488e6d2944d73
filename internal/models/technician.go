package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	KycStatusNotSubmitted = "not_submitted"
	KycStatusPending      = "pending"
	KycStatusApproved     = "approved"
	KycStatusRejected     = "rejected"
)

// DefaultServiceRadiusKm applies when a technician first sets a service
// location without choosing a radius.
const DefaultServiceRadiusKm = 10

const (
	ExpertiseAC             = "AC"
	ExpertiseRefrigerator   = "Refrigerator"
	ExpertiseWashingMachine = "Washing Machine"
)

// DayWindow is a single weekday's availability window (hours 0-23).
type DayWindow struct {
	Available bool `bson:"available" json:"available"`
	StartHour int  `bson:"startHour" json:"startHour"`
	EndHour   int  `bson:"endHour" json:"endHour"`
}

type WeeklyAvailability struct {
	Monday    DayWindow `bson:"monday" json:"monday"`
	Tuesday   DayWindow `bson:"tuesday" json:"tuesday"`
	Wednesday DayWindow `bson:"wednesday" json:"wednesday"`
	Thursday  DayWindow `bson:"thursday" json:"thursday"`
	Friday    DayWindow `bson:"friday" json:"friday"`
	Saturday  DayWindow `bson:"saturday" json:"saturday"`
	Sunday    DayWindow `bson:"sunday" json:"sunday"`
}

// DefaultAvailability marks every day unavailable with placeholder 9-17 hours.
func DefaultAvailability() WeeklyAvailability {
	day := DayWindow{Available: false, StartHour: 9, EndHour: 17}
	return WeeklyAvailability{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}

type KycDocuments struct {
	IDImage string `bson:"IDImage,omitempty" json:"IDImage,omitempty"`
	Photo   string `bson:"Photo,omitempty" json:"Photo,omitempty"`
}

// ServiceLocation is where a technician operates from and how far they are
// willing to travel. The radius is authoritative: customers cannot reach a
// technician beyond it no matter how wide they search.
type ServiceLocation struct {
	Latitude      float64 `bson:"latitude" json:"latitude"`
	Longitude     float64 `bson:"longitude" json:"longitude"`
	ServiceRadius float64 `bson:"serviceRadius" json:"serviceRadius"`
}

// PartOrderSummary is the order record embedded on the technician profile.
type PartOrderSummary struct {
	OrderID     primitive.ObjectID `bson:"o_id" json:"o_id"`
	PartID      primitive.ObjectID `bson:"p_id" json:"p_id"`
	PartName    string             `bson:"p_name" json:"p_name"`
	Price       float64            `bson:"price" json:"price"`
	Status      string             `bson:"status" json:"status"`
	TrackingURL string             `bson:"trackingURL" json:"trackingURL"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

type TechnicianProfile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	Expertise       []string           `bson:"expertise" json:"expertise"`
	ServiceAreas    []string           `bson:"serviceAreas" json:"serviceAreas"`
	Availability    WeeklyAvailability `bson:"availability" json:"availability"`
	Pricing         float64            `bson:"pricing" json:"pricing"`
	KycStatus       string             `bson:"kycStatus" json:"kycStatus"`
	KycDocuments    KycDocuments       `bson:"kycDocuments,omitempty" json:"kycDocuments,omitempty"`
	AvgRating       float64            `bson:"avgRating" json:"avgRating"`
	TotalReviews    int                `bson:"totalReviews" json:"totalReviews"`
	ServiceLocation *ServiceLocation   `bson:"serviceLocation,omitempty" json:"serviceLocation,omitempty"`
	PartsOrdered    []PartOrderSummary `bson:"partsOrdered" json:"partsOrdered"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewTechnicianProfile builds the defaulted profile created alongside a
// technician user at registration.
func NewTechnicianProfile(userID primitive.ObjectID) *TechnicianProfile {
	now := time.Now()
	return &TechnicianProfile{
		UserID:       userID,
		Expertise:    []string{},
		ServiceAreas: []string{},
		Availability: DefaultAvailability(),
		Pricing:      0,
		KycStatus:    KycStatusNotSubmitted,
		AvgRating:    0,
		TotalReviews: 0,
		PartsOrdered: []PartOrderSummary{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func ValidExpertise(tag string) bool {
	switch tag {
	case ExpertiseAC, ExpertiseRefrigerator, ExpertiseWashingMachine:
		return true
	}
	return false
}

func (tp *TechnicianProfile) IsApproved() bool {
	return tp != nil && tp.KycStatus == KycStatusApproved
}
