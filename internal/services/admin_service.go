package services

import (
	"context"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/helpers"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminService covers back-office moderation: KYC decisions, account status,
// deletion cascades, the audit log and the dashboard aggregate.
type AdminService struct {
	userRepo    models.UserRepo
	techRepo    models.TechnicianRepo
	bookingRepo models.BookingRepo
	flagRepo    models.FlagRepo
	adminRepo   models.AdminRepo
}

func NewAdminService(userRepo models.UserRepo, techRepo models.TechnicianRepo, bookingRepo models.BookingRepo, flagRepo models.FlagRepo, adminRepo models.AdminRepo) *AdminService {
	return &AdminService{
		userRepo:    userRepo,
		techRepo:    techRepo,
		bookingRepo: bookingRepo,
		flagRepo:    flagRepo,
		adminRepo:   adminRepo,
	}
}

// DecideKyc approves or rejects a pending technician.
func (as *AdminService) DecideKyc(ctx context.Context, adminID, profileID primitive.ObjectID, status string) (*models.TechnicianProfile, error) {
	if status != models.KycStatusApproved && status != models.KycStatusRejected {
		return nil, apperr.Validation("invalid KYC status")
	}

	profile, err := as.techRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch technician", err)
	}
	if profile == nil {
		return nil, apperr.NotFound("technician not found")
	}
	if profile.KycStatus != models.KycStatusPending {
		return nil, apperr.Validation("technician has no pending KYC submission")
	}

	updated, err := as.techRepo.SetKycStatus(ctx, profileID, status)
	if err != nil {
		return nil, apperr.Internal("failed to update KYC status", err)
	}
	if updated == nil {
		return nil, apperr.NotFound("technician not found")
	}

	if err := as.logAction(ctx, adminID, "KYC_"+status, "technician", profileID,
		"KYC decision: "+status); err != nil {
		return nil, err
	}
	return updated, nil
}

// KycImages returns the stored document paths for admin review.
func (as *AdminService) KycImages(ctx context.Context, profileID primitive.ObjectID) (*models.KycDocuments, string, error) {
	profile, err := as.techRepo.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, "", apperr.Internal("failed to fetch technician", err)
	}
	if profile == nil {
		return nil, "", apperr.NotFound("technician not found")
	}
	return &profile.KycDocuments, profile.KycStatus, nil
}

func (as *AdminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := as.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

func (as *AdminService) SetUserStatus(ctx context.Context, adminID, userID primitive.ObjectID, status string) (*models.User, error) {
	if !models.ValidUserStatus(status) {
		return nil, apperr.Validation("invalid status")
	}

	user, err := as.userRepo.UpdateUserStatus(ctx, userID, status)
	if err != nil {
		return nil, apperr.Internal("failed to update user status", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	if err := as.logAction(ctx, adminID, "SET_USER_STATUS", "user", userID,
		"User status set to "+status); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser hard-deletes an account, cascading to the technician profile.
func (as *AdminService) DeleteUser(ctx context.Context, adminID, userID primitive.ObjectID) error {
	user, err := as.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return apperr.Internal("failed to fetch user", err)
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}

	if user.Role == models.RoleTechnician {
		if err := as.techRepo.DeleteProfileByUserID(ctx, userID); err != nil {
			return apperr.Internal("failed to delete technician profile", err)
		}
	}
	if err := as.userRepo.DeleteUser(ctx, userID); err != nil {
		return apperr.Internal("failed to delete user", err)
	}

	return as.logAction(ctx, adminID, "DELETE_USER", "user", userID, "User account deleted")
}

// LogAction appends an arbitrary audit entry.
func (as *AdminService) LogAction(ctx context.Context, action *models.AdminAction) (*models.AdminAction, error) {
	if action.Action == "" || action.TargetID.IsZero() {
		return nil, apperr.Validation("action and targetId are required")
	}
	action.CreatedAt = time.Now()

	created, err := as.adminRepo.LogAdminAction(ctx, action)
	if err != nil {
		return nil, apperr.Internal("failed to log admin action", err)
	}
	return created, nil
}

func (as *AdminService) logAction(ctx context.Context, adminID primitive.ObjectID, action, targetType string, targetID primitive.ObjectID, description string) error {
	_, err := as.adminRepo.LogAdminAction(ctx, &models.AdminAction{
		AdminID:     adminID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		Description: description,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		return apperr.Internal("failed to record admin action", err)
	}
	return nil
}

// Dashboard assembles the admin overview counters. Revenue is the simplified
// sum of technician pricing over completed bookings.
func (as *AdminService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	today := time.Now().Truncate(24 * time.Hour)
	tomorrow := today.Add(24 * time.Hour)

	stats := &models.DashboardStats{}
	var err error

	if stats.TotalUsers, err = as.userRepo.CountUsers(ctx); err != nil {
		return nil, apperr.Internal("failed to count users", err)
	}
	if stats.TotalTechnicians, err = as.techRepo.CountProfiles(ctx); err != nil {
		return nil, apperr.Internal("failed to count technicians", err)
	}
	if stats.TotalBookings, err = as.bookingRepo.CountBookings(ctx); err != nil {
		return nil, apperr.Internal("failed to count bookings", err)
	}
	if stats.TodaysBookings, err = as.bookingRepo.CountBookingsCreatedBetween(ctx, today, tomorrow); err != nil {
		return nil, apperr.Internal("failed to count today's bookings", err)
	}
	if stats.PendingKyc, err = as.techRepo.CountProfilesByKycStatus(ctx, models.KycStatusPending); err != nil {
		return nil, apperr.Internal("failed to count pending KYC", err)
	}
	if stats.ActiveFlags, err = as.flagRepo.CountFlagsByStatus(ctx, models.FlagOpen); err != nil {
		return nil, apperr.Internal("failed to count open flags", err)
	}
	if stats.CompletedBookings, err = as.bookingRepo.CountBookingsByStatus(ctx, models.BookingCompleted); err != nil {
		return nil, apperr.Internal("failed to count completed bookings", err)
	}

	completed, err := as.bookingRepo.ListBookingsByStatus(ctx, models.BookingCompleted)
	if err != nil {
		return nil, apperr.Internal("failed to list completed bookings", err)
	}
	for _, booking := range completed {
		technician, err := as.techRepo.GetProfileByID(ctx, booking.TechnicianID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch technician", err)
		}
		if technician != nil {
			stats.TotalRevenue += technician.Pricing
		}
	}

	if stats.TotalBookings > 0 {
		stats.ConversionRate = helpers.RoundRating(
			float64(stats.CompletedBookings) / float64(stats.TotalBookings) * 100)
	}
	return stats, nil
}
