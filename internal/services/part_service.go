package services

import (
	"context"
	"fmt"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PartService struct {
	partRepo models.PartRepo
	techRepo models.TechnicianRepo
}

func NewPartService(partRepo models.PartRepo, techRepo models.TechnicianRepo) *PartService {
	return &PartService{
		partRepo: partRepo,
		techRepo: techRepo,
	}
}

func (ps *PartService) ListAvailable(ctx context.Context) ([]*models.Part, error) {
	parts, err := ps.partRepo.ListPartsInStock(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list parts", err)
	}
	return parts, nil
}

// Order places a part order for a KYC-approved technician. The stock
// decrement is a guarded conditional write; the three related writes
// (tracking log, stock, profile push) are sequenced with compensation so a
// later failure does not leave a paid-for unit missing or a phantom order.
func (ps *PartService) Order(ctx context.Context, userID, partID primitive.ObjectID) (*models.TrackingLog, error) {
	profile, err := ps.techRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch technician profile", err)
	}
	if profile == nil || !profile.IsApproved() {
		return nil, apperr.Forbidden("KYC approval required to order parts")
	}

	part, err := ps.partRepo.GetPartByID(ctx, partID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch part", err)
	}
	if part == nil {
		return nil, apperr.NotFound("part not found")
	}

	taken, err := ps.partRepo.DecrementStock(ctx, partID)
	if err != nil {
		return nil, apperr.Internal("failed to reserve stock", err)
	}
	if !taken {
		return nil, apperr.Validation("part out of stock")
	}

	now := time.Now()
	order := &models.TrackingLog{
		PartID:      partID,
		BuyerID:     profile.ID,
		Price:       part.Price,
		Status:      models.OrderPlaced,
		TrackingURL: fmt.Sprintf("https://tracking.example.com/%d", now.UnixNano()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := ps.partRepo.CreateTrackingLog(ctx, order)
	if err != nil {
		_ = ps.partRepo.IncrementStock(ctx, partID)
		return nil, apperr.Internal("failed to record order", err)
	}

	summary := models.PartOrderSummary{
		OrderID:     created.ID,
		PartID:      part.ID,
		PartName:    part.Name,
		Price:       part.Price,
		Status:      models.OrderPlaced,
		TrackingURL: created.TrackingURL,
		CreatedAt:   now,
	}
	if err := ps.techRepo.PushPartOrder(ctx, profile.ID, summary); err != nil {
		_ = ps.partRepo.DeleteTrackingLog(ctx, created.ID)
		_ = ps.partRepo.IncrementStock(ctx, partID)
		return nil, apperr.Internal("failed to record order on profile", err)
	}

	created.Part = part
	return created, nil
}

func (ps *PartService) MyOrders(ctx context.Context, userID primitive.ObjectID) ([]*models.TrackingLog, error) {
	profile, err := ps.techRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch technician profile", err)
	}
	if profile == nil {
		return nil, apperr.NotFound("technician profile not found")
	}

	orders, err := ps.partRepo.ListOrdersByBuyer(ctx, profile.ID)
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return ps.attachParts(ctx, orders)
}

func (ps *PartService) ListOrders(ctx context.Context) ([]*models.TrackingLog, error) {
	orders, err := ps.partRepo.ListOrders(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return ps.attachParts(ctx, orders)
}

func (ps *PartService) attachParts(ctx context.Context, orders []*models.TrackingLog) ([]*models.TrackingLog, error) {
	for _, order := range orders {
		part, err := ps.partRepo.GetPartByID(ctx, order.PartID)
		if err != nil {
			return nil, apperr.Internal("failed to fetch part", err)
		}
		order.Part = part
	}
	return orders, nil
}

func (ps *PartService) CreatePart(ctx context.Context, part *models.Part) (*models.Part, error) {
	if err := models.Validate.Struct(part); err != nil {
		return nil, apperr.Validation("name and a positive price are required")
	}

	now := time.Now()
	part.CreatedAt = now
	part.UpdatedAt = now

	created, err := ps.partRepo.CreatePart(ctx, part)
	if err != nil {
		return nil, apperr.Internal("failed to create part", err)
	}
	return created, nil
}

func (ps *PartService) UpdatePart(ctx context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Part, error) {
	if len(update) == 0 {
		return nil, apperr.Validation("no part fields provided")
	}

	part, err := ps.partRepo.UpdatePart(ctx, id, update)
	if err != nil {
		return nil, apperr.Internal("failed to update part", err)
	}
	if part == nil {
		return nil, apperr.NotFound("part not found")
	}
	return part, nil
}

func (ps *PartService) DeletePart(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := ps.partRepo.DeletePart(ctx, id)
	if err != nil {
		return apperr.Internal("failed to delete part", err)
	}
	if !deleted {
		return apperr.NotFound("part not found")
	}
	return nil
}

func (ps *PartService) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*models.Part, error) {
	if stock < 0 {
		return nil, apperr.Validation("stock cannot be negative")
	}

	part, err := ps.partRepo.SetStock(ctx, id, stock)
	if err != nil {
		return nil, apperr.Internal("failed to set stock", err)
	}
	if part == nil {
		return nil, apperr.NotFound("part not found")
	}
	return part, nil
}

// SetOrderStatus advances an order through the shipping stages, mirroring the
// change into the buyer's embedded order list.
func (ps *PartService) SetOrderStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.TrackingLog, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperr.Validation("invalid order status")
	}

	order, err := ps.partRepo.SetOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, apperr.Internal("failed to update order status", err)
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}

	if err := ps.techRepo.SetPartOrderStatus(ctx, order.BuyerID, order.ID, status); err != nil {
		return nil, apperr.Internal("failed to mirror order status", err)
	}
	return order, nil
}
