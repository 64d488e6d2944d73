package services

import (
	"context"
	"fmt"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/helpers"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService struct {
	bookingRepo models.BookingRepo
	techRepo    models.TechnicianRepo
	userRepo    models.UserRepo
	adminRepo   models.AdminRepo
}

func NewBookingService(bookingRepo models.BookingRepo, techRepo models.TechnicianRepo, userRepo models.UserRepo, adminRepo models.AdminRepo) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		techRepo:    techRepo,
		userRepo:    userRepo,
		adminRepo:   adminRepo,
	}
}

type CreateBookingInput struct {
	TechnicianID  primitive.ObjectID
	ServiceType   string
	Description   string
	Address       string
	ScheduledDate time.Time
	ScheduledTime string
	Latitude      *float64
	Longitude     *float64
}

// Create books a KYC-approved technician, computing and storing the distance
// between the customer's service point and the technician's service location.
func (bs *BookingService) Create(ctx context.Context, customerID primitive.ObjectID, input CreateBookingInput) (*models.Booking, error) {
	if input.Latitude == nil || input.Longitude == nil {
		return nil, apperr.Validation("service location coordinates required")
	}
	if !helpers.ValidCoordinates(*input.Latitude, *input.Longitude) {
		return nil, apperr.Validation("service location coordinates are invalid")
	}
	if !models.ValidExpertise(input.ServiceType) {
		return nil, apperr.Validation("unknown service type")
	}

	technician, err := bs.techRepo.GetProfileByID(ctx, input.TechnicianID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch technician", err)
	}
	if technician == nil || !technician.IsApproved() {
		return nil, apperr.Validation("selected technician not available")
	}

	var distance *float64
	if technician.ServiceLocation != nil {
		d := helpers.RoundDistance(helpers.HaversineDistance(
			*input.Latitude, *input.Longitude,
			technician.ServiceLocation.Latitude, technician.ServiceLocation.Longitude,
		))
		distance = &d
	}

	now := time.Now()
	booking := &models.Booking{
		CustomerID:    customerID,
		TechnicianID:  technician.ID,
		ServiceType:   input.ServiceType,
		Description:   input.Description,
		Address:       input.Address,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		Status:        models.BookingPending,
		ServiceLocation: models.BookingLocation{
			Latitude:  *input.Latitude,
			Longitude: *input.Longitude,
		},
		Distance:  distance,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := bs.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, apperr.Internal("failed to create booking", err)
	}
	created.Technician = technician
	return created, nil
}

// UpdateStatus applies a lifecycle transition on behalf of the booking's
// customer or assigned technician. Transitions outside the state machine are
// rejected; stale writes lose to the version check.
func (bs *BookingService) UpdateStatus(ctx context.Context, bookingID, callerID primitive.ObjectID, role, newStatus string) (*models.Booking, error) {
	if !models.ValidBookingStatus(newStatus) {
		return nil, apperr.Validation("invalid status")
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}

	switch role {
	case models.RoleCustomer:
		if booking.CustomerID != callerID {
			return nil, apperr.Forbidden("access denied - not your booking")
		}
		if newStatus != models.BookingCancelled {
			return nil, apperr.Forbidden("customers may only cancel their bookings")
		}
	case models.RoleTechnician:
		profile, err := bs.techRepo.GetProfileByUserID(ctx, callerID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch technician profile", err)
		}
		// The booking stores the profile id; comparing against the user id
		// would silently deny every technician.
		if profile == nil || booking.TechnicianID != profile.ID {
			return nil, apperr.Forbidden("access denied - not your booking")
		}
		switch newStatus {
		case models.BookingAccepted, models.BookingRejected,
			models.BookingInProgress, models.BookingCompleted:
		default:
			return nil, apperr.Forbidden("technicians cannot set this status")
		}
	default:
		return nil, apperr.Forbidden("access denied")
	}

	if !models.CanTransition(booking.Status, newStatus) {
		return nil, apperr.Validation(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, newStatus))
	}

	var updated *models.Booking
	if newStatus == models.BookingCancelled {
		updated, err = bs.bookingRepo.CancelBooking(ctx, bookingID, booking.Version, callerID, "")
	} else {
		updated, err = bs.bookingRepo.UpdateBookingStatus(ctx, bookingID, booking.Version, newStatus)
	}
	if err != nil {
		return nil, apperr.Internal("failed to update booking status", err)
	}
	if updated == nil {
		return nil, apperr.Conflict("booking was updated concurrently, retry")
	}
	return updated, nil
}

// AdminCancel force-cancels a non-terminal booking, recording the reason on
// the booking and in the audit log.
func (bs *BookingService) AdminCancel(ctx context.Context, adminID, bookingID primitive.ObjectID, reason string) (*models.Booking, error) {
	if reason == "" {
		return nil, apperr.Validation("cancellation reason is required")
	}

	booking, err := bs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if models.IsTerminalStatus(booking.Status) {
		return nil, apperr.Validation("booking is already in a terminal state")
	}

	cancelled, err := bs.bookingRepo.CancelBooking(ctx, bookingID, booking.Version, adminID, reason)
	if err != nil {
		return nil, apperr.Internal("failed to cancel booking", err)
	}
	if cancelled == nil {
		return nil, apperr.Conflict("booking was updated concurrently, retry")
	}

	_, err = bs.adminRepo.LogAdminAction(ctx, &models.AdminAction{
		AdminID:     adminID,
		Action:      "CANCEL_BOOKING",
		TargetType:  "booking",
		TargetID:    bookingID,
		Description: "Cancelled booking with reason: " + reason,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return nil, apperr.Internal("failed to record admin action", err)
	}

	return cancelled, nil
}

func (bs *BookingService) ListForCustomer(ctx context.Context, customerID primitive.ObjectID) ([]*models.Booking, error) {
	bookings, err := bs.bookingRepo.ListBookingsByCustomer(ctx, customerID)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	for _, booking := range bookings {
		technician, err := bs.techRepo.GetProfileByID(ctx, booking.TechnicianID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch technician", err)
		}
		booking.Technician = technician
	}
	return bookings, nil
}

// ListForTechnician is KYC-gated: an unapproved technician cannot see its
// queue even with a valid token.
func (bs *BookingService) ListForTechnician(ctx context.Context, userID primitive.ObjectID) ([]*models.Booking, error) {
	profile, err := bs.techRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch technician profile", err)
	}
	if profile == nil || !profile.IsApproved() {
		return nil, apperr.Forbidden("KYC approval required to access bookings")
	}

	bookings, err := bs.bookingRepo.ListBookingsByTechnician(ctx, profile.ID)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	if err := bs.attachCustomers(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (bs *BookingService) ListAll(ctx context.Context) ([]*models.Booking, error) {
	bookings, err := bs.bookingRepo.ListBookings(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list bookings", err)
	}
	if err := bs.attachCustomers(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (bs *BookingService) attachCustomers(ctx context.Context, bookings []*models.Booking) error {
	ids := make([]primitive.ObjectID, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.CustomerID)
	}
	users, err := bs.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return apperr.Internal("failed to fetch booking customers", err)
	}
	for _, booking := range bookings {
		booking.Customer = users[booking.CustomerID].Summary()
	}
	return nil
}
