package services

import (
	"context"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/helpers"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviewRepo  models.ReviewRepo
	bookingRepo models.BookingRepo
	techRepo    models.TechnicianRepo
}

func NewReviewService(reviewRepo models.ReviewRepo, bookingRepo models.BookingRepo, techRepo models.TechnicianRepo) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		techRepo:    techRepo,
	}
}

// Create files the one review a customer may leave on a completed booking,
// then recomputes the technician's average over all of their reviews.
func (rs *ReviewService) Create(ctx context.Context, customerID, bookingID primitive.ObjectID, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating must be between 1 and 5")
	}

	booking, err := rs.bookingRepo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch booking", err)
	}
	if booking == nil || booking.CustomerID != customerID || booking.Status != models.BookingCompleted {
		return nil, apperr.Validation("booking not found or not completed")
	}

	existing, err := rs.reviewRepo.GetReviewByBooking(ctx, bookingID)
	if err != nil {
		return nil, apperr.Internal("failed to check existing review", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("review already exists for this booking")
	}

	review := &models.Review{
		BookingID:    bookingID,
		CustomerID:   customerID,
		TechnicianID: booking.TechnicianID,
		Rating:       rating,
		Comment:      comment,
		CreatedAt:    time.Now(),
	}

	created, err := rs.reviewRepo.CreateReview(ctx, review)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		return nil, apperr.Internal("failed to create review", err)
	}

	if err := rs.bookingRepo.SetBookingReview(ctx, bookingID, created.ID); err != nil {
		return nil, apperr.Internal("failed to attach review to booking", err)
	}

	// Full recomputation over the technician's review set; O(n) per review
	// but immune to drift.
	reviews, err := rs.reviewRepo.ListReviewsByTechnician(ctx, booking.TechnicianID)
	if err != nil {
		return nil, apperr.Internal("failed to list technician reviews", err)
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := helpers.RoundRating(float64(sum) / float64(len(reviews)))

	if err := rs.techRepo.SetRating(ctx, booking.TechnicianID, avg, len(reviews)); err != nil {
		return nil, apperr.Internal("failed to update technician rating", err)
	}

	return created, nil
}

func (rs *ReviewService) ListByTechnician(ctx context.Context, technicianID primitive.ObjectID) ([]*models.Review, error) {
	reviews, err := rs.reviewRepo.ListReviewsByTechnician(ctx, technicianID)
	if err != nil {
		return nil, apperr.Internal("failed to list reviews", err)
	}
	return reviews, nil
}

func (rs *ReviewService) ListAll(ctx context.Context) ([]*models.Review, error) {
	reviews, err := rs.reviewRepo.ListReviews(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list reviews", err)
	}
	return reviews, nil
}
