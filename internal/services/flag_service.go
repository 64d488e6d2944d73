package services

import (
	"context"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FlagService struct {
	flagRepo    models.FlagRepo
	bookingRepo models.BookingRepo
	techRepo    models.TechnicianRepo
}

func NewFlagService(flagRepo models.FlagRepo, bookingRepo models.BookingRepo, techRepo models.TechnicianRepo) *FlagService {
	return &FlagService{
		flagRepo:    flagRepo,
		bookingRepo: bookingRepo,
		techRepo:    techRepo,
	}
}

// RaiseForBooking flags the counterparty of a booking the caller is part of.
func (fs *FlagService) RaiseForBooking(ctx context.Context, callerID primitive.ObjectID, role string, bookingID primitive.ObjectID, reason, description string) (*models.Flag, error) {
	booking, err := fs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch booking", err)
	}
	if booking == nil {
		return nil, apperr.NotFound("booking not found")
	}

	var againstUser primitive.ObjectID
	switch {
	case booking.CustomerID == callerID:
		technician, err := fs.techRepo.GetProfileByID(ctx, booking.TechnicianID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch technician", err)
		}
		if technician == nil {
			return nil, apperr.NotFound("technician not found")
		}
		againstUser = technician.UserID
	case role == models.RoleTechnician:
		profile, err := fs.techRepo.GetProfileByUserID(ctx, callerID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch technician profile", err)
		}
		if profile == nil || booking.TechnicianID != profile.ID {
			return nil, apperr.Forbidden("access denied")
		}
		againstUser = booking.CustomerID
	default:
		return nil, apperr.Forbidden("access denied")
	}

	flag := &models.Flag{
		RaisedBy:       callerID,
		AgainstUser:    againstUser,
		Reason:         reason,
		Description:    description,
		Status:         models.FlagOpen,
		RelatedBooking: &bookingID,
		CreatedAt:      time.Now(),
	}

	created, err := fs.flagRepo.CreateFlag(ctx, flag)
	if err != nil {
		return nil, apperr.Internal("failed to raise flag", err)
	}
	return created, nil
}

// Raise files a standalone flag against a user, outside any booking.
func (fs *FlagService) Raise(ctx context.Context, callerID, againstUser primitive.ObjectID, reason, description string) (*models.Flag, error) {
	if againstUser.IsZero() {
		return nil, apperr.Validation("againstUser is required")
	}

	flag := &models.Flag{
		RaisedBy:    callerID,
		AgainstUser: againstUser,
		Reason:      reason,
		Description: description,
		Status:      models.FlagOpen,
		CreatedAt:   time.Now(),
	}

	created, err := fs.flagRepo.CreateFlag(ctx, flag)
	if err != nil {
		return nil, apperr.Internal("failed to raise flag", err)
	}
	return created, nil
}

func (fs *FlagService) MyFlags(ctx context.Context, userID primitive.ObjectID) ([]*models.Flag, error) {
	flags, err := fs.flagRepo.ListFlagsByRaiser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list flags", err)
	}
	return flags, nil
}

func (fs *FlagService) ListAll(ctx context.Context) ([]*models.Flag, error) {
	flags, err := fs.flagRepo.ListFlags(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list flags", err)
	}
	return flags, nil
}

// Resolve settles an open flag exactly once; resolved and dismissed are
// irreversible.
func (fs *FlagService) Resolve(ctx context.Context, adminID, flagID primitive.ObjectID, status string) (*models.Flag, error) {
	if !models.ValidFlagResolution(status) {
		return nil, apperr.Validation("invalid flag status")
	}

	resolved, err := fs.flagRepo.ResolveFlag(ctx, flagID, status, adminID)
	if err != nil {
		return nil, apperr.Internal("failed to resolve flag", err)
	}
	if resolved != nil {
		return resolved, nil
	}

	existing, err := fs.flagRepo.GetFlagByID(ctx, flagID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch flag", err)
	}
	if existing == nil {
		return nil, apperr.NotFound("flag not found")
	}
	return nil, apperr.Conflict("flag is already settled")
}
