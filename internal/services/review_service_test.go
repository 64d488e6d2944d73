package services

import (
	"context"
	"testing"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type reviewFixture struct {
	service  *ReviewService
	reviews  *fakeReviewRepo
	bookings *fakeBookingRepo
	techs    *fakeTechRepo

	customerID primitive.ObjectID
	profile    *models.TechnicianProfile
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	reviews := newFakeReviewRepo()
	bookings := newFakeBookingRepo()
	techs := newFakeTechRepo()
	users := newFakeUserRepo()

	profile := seedTechnician(techs, users, "rated-tech", 28.61, 77.20, 20, models.KycStatusApproved)

	return &reviewFixture{
		service:    NewReviewService(reviews, bookings, techs),
		reviews:    reviews,
		bookings:   bookings,
		techs:      techs,
		customerID: primitive.NewObjectID(),
		profile:    profile,
	}
}

func (f *reviewFixture) completedBooking(t *testing.T, customerID primitive.ObjectID) *models.Booking {
	t.Helper()
	booking, err := f.bookings.CreateBooking(context.Background(), &models.Booking{
		CustomerID:   customerID,
		TechnicianID: f.profile.ID,
		ServiceType:  models.ExpertiseAC,
		Status:       models.BookingCompleted,
		Version:      2,
	})
	if err != nil {
		t.Fatalf("seeding booking failed: %v", err)
	}
	return booking
}

func TestCreateReview(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	booking := f.completedBooking(t, f.customerID)

	review, err := f.service.Create(ctx, f.customerID, booking.ID, 5, "fixed it fast")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if review.TechnicianID != f.profile.ID {
		t.Error("review should reference the technician profile")
	}

	stored, _ := f.bookings.GetBookingByID(ctx, booking.ID)
	if stored.ReviewID == nil || *stored.ReviewID != review.ID {
		t.Error("booking should link back to the review")
	}

	if f.profile.AvgRating != 5.0 || f.profile.TotalReviews != 1 {
		t.Errorf("rating = %f/%d, want 5.0/1", f.profile.AvgRating, f.profile.TotalReviews)
	}
}

func TestCreateReviewRecomputesAverage(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	ratings := []int{5, 4, 4}
	for _, rating := range ratings {
		customerID := primitive.NewObjectID()
		booking := f.completedBooking(t, customerID)
		if _, err := f.service.Create(ctx, customerID, booking.ID, rating, ""); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	// (5+4+4)/3 = 4.333..., rounded to one decimal.
	if f.profile.AvgRating != 4.3 {
		t.Errorf("avgRating = %f, want 4.3", f.profile.AvgRating)
	}
	if f.profile.TotalReviews != 3 {
		t.Errorf("totalReviews = %d, want 3", f.profile.TotalReviews)
	}
}

func TestCreateReviewRejections(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	booking := f.completedBooking(t, f.customerID)

	// Rating out of range.
	for _, rating := range []int{0, 6, -1} {
		if _, err := f.service.Create(ctx, f.customerID, booking.ID, rating, ""); apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("rating %d: expected a validation error, got %v", rating, err)
		}
	}

	// Unknown booking.
	if _, err := f.service.Create(ctx, f.customerID, primitive.NewObjectID(), 5, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("unknown booking: expected a validation error, got %v", err)
	}

	// Someone else's booking.
	if _, err := f.service.Create(ctx, primitive.NewObjectID(), booking.ID, 5, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("foreign booking: expected a validation error, got %v", err)
	}

	// Not yet completed.
	open, _ := f.bookings.CreateBooking(ctx, &models.Booking{
		CustomerID:   f.customerID,
		TechnicianID: f.profile.ID,
		Status:       models.BookingInProgress,
		Version:      1,
	})
	if _, err := f.service.Create(ctx, f.customerID, open.ID, 5, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("incomplete booking: expected a validation error, got %v", err)
	}

	// Duplicate review.
	if _, err := f.service.Create(ctx, f.customerID, booking.ID, 5, "first"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := f.service.Create(ctx, f.customerID, booking.ID, 4, "second"); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("duplicate review: expected a conflict, got %v", err)
	}
}
