package services

import (
	"context"
	"testing"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedTechnician(techRepo *fakeTechRepo, userRepo *fakeUserRepo, name string, lat, lon, radius float64, kycStatus string) *models.TechnicianProfile {
	user, _ := userRepo.CreateUser(context.Background(), &models.User{
		UserName: name,
		Email:    name + "@example.com",
		Phone:    name + "-phone",
		Role:     models.RoleTechnician,
	})
	profile := models.NewTechnicianProfile(user.ID)
	profile.Expertise = []string{models.ExpertiseAC}
	profile.KycStatus = kycStatus
	profile.ServiceLocation = &models.ServiceLocation{
		Latitude:      lat,
		Longitude:     lon,
		ServiceRadius: radius,
	}
	created, _ := techRepo.CreateProfile(context.Background(), profile)
	return created
}

func TestNearbyRespectsBothRadii(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	// Customer searches from (28.60, 77.20) with a 10 km radius.
	// 0.01 degrees of latitude is roughly 1.11 km.
	near := seedTechnician(techRepo, userRepo, "near", 28.627, 77.20, 20, models.KycStatusApproved)   // ~3 km, within both radii
	seedTechnician(techRepo, userRepo, "small-radius", 28.672, 77.20, 5, models.KycStatusApproved)    // ~8 km, beyond its own 5 km radius
	seedTechnician(techRepo, userRepo, "far", 28.735, 77.20, 50, models.KycStatusApproved)            // ~15 km, beyond the search radius
	seedTechnician(techRepo, userRepo, "unapproved", 28.61, 77.20, 20, models.KycStatusPending)       // ~1 km but not approved

	results, err := ts.Nearby(context.Background(), NearbyQuery{
		Latitude:  28.60,
		Longitude: 77.20,
		Radius:    10,
	})
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", len(results))
	}
	if results[0].ID != near.ID {
		t.Errorf("expected the near technician to match")
	}
	if results[0].Distance < 2.9 || results[0].Distance > 3.1 {
		t.Errorf("distance = %f, want ~3 km", results[0].Distance)
	}
	if results[0].User == nil || results[0].User.UserName != "near" {
		t.Errorf("expected the owning user to be attached")
	}
}

func TestNearbySortsByDistance(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	farther := seedTechnician(techRepo, userRepo, "farther", 28.66, 77.20, 20, models.KycStatusApproved) // ~6.7 km
	closest := seedTechnician(techRepo, userRepo, "closest", 28.61, 77.20, 20, models.KycStatusApproved) // ~1.1 km
	middle := seedTechnician(techRepo, userRepo, "middle", 28.63, 77.20, 20, models.KycStatusApproved)   // ~3.3 km

	results, err := ts.Nearby(context.Background(), NearbyQuery{
		Latitude:  28.60,
		Longitude: 77.20,
		Radius:    10,
	})
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(results))
	}

	want := []primitive.ObjectID{closest.ID, middle.ID, farther.ID}
	for i, id := range want {
		if results[i].ID != id {
			t.Errorf("result %d out of order", i)
		}
	}
}

func TestNearbySkipsMissingServiceLocation(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	profile := seedTechnician(techRepo, userRepo, "homeless", 28.60, 77.20, 20, models.KycStatusApproved)
	profile.ServiceLocation = nil

	results, err := ts.Nearby(context.Background(), NearbyQuery{Latitude: 28.60, Longitude: 77.20})
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches without a service location, got %d", len(results))
	}
}

func TestNearbyExpertiseFilter(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	seedTechnician(techRepo, userRepo, "ac-tech", 28.61, 77.20, 20, models.KycStatusApproved)

	results, err := ts.Nearby(context.Background(), NearbyQuery{
		Latitude:  28.60,
		Longitude: 77.20,
		Expertise: models.ExpertiseRefrigerator,
	})
	if err != nil {
		t.Fatalf("Nearby failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches for a different expertise, got %d", len(results))
	}

	if _, err := ts.Nearby(context.Background(), NearbyQuery{
		Latitude:  28.60,
		Longitude: 77.20,
		Expertise: "Plumbing",
	}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected a validation error for unknown expertise, got %v", err)
	}
}

func TestNearbyRejectsInvalidCoordinates(t *testing.T) {
	ts := NewTechnicianService(newFakeTechRepo(), newFakeUserRepo())

	_, err := ts.Nearby(context.Background(), NearbyQuery{Latitude: 91, Longitude: 77.20})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected a validation error, got %v", err)
	}
}

func TestSearchTechnicians(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	seedTechnician(techRepo, userRepo, "approved-ac", 28.60, 77.20, 20, models.KycStatusApproved)
	pending := seedTechnician(techRepo, userRepo, "pending-fridge", 28.61, 77.20, 20, models.KycStatusPending)
	pending.Expertise = []string{models.ExpertiseRefrigerator}
	pending.ServiceAreas = []string{"Karol Bagh"}

	// The public directory lists every profile, KYC decision or not.
	all, err := ts.Search(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected both profiles in an unfiltered search, got %d", len(all))
	}

	fridge, err := ts.Search(context.Background(), models.ExpertiseRefrigerator, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(fridge) != 1 || fridge[0].ID != pending.ID {
		t.Errorf("expected only the refrigerator profile, got %d results", len(fridge))
	}
	if fridge[0].User == nil || fridge[0].User.UserName != "pending-fridge" {
		t.Errorf("expected the owner attached to the listing, got %+v", fridge[0].User)
	}

	area, err := ts.Search(context.Background(), "", "Karol Bagh")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(area) != 1 || area[0].ID != pending.ID {
		t.Errorf("expected only the Karol Bagh profile, got %d results", len(area))
	}

	none, err := ts.Search(context.Background(), models.ExpertiseWashingMachine, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestSaveProfileValidation(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	profile := seedTechnician(techRepo, userRepo, "tech", 28.60, 77.20, 10, models.KycStatusApproved)

	if _, err := ts.SaveProfile(context.Background(), profile.UserID, ProfileInput{
		Expertise: []string{"Plumbing"},
	}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected a validation error for unknown expertise, got %v", err)
	}

	negative := -10.0
	if _, err := ts.SaveProfile(context.Background(), profile.UserID, ProfileInput{
		Pricing: &negative,
	}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected a validation error for negative pricing, got %v", err)
	}

	if _, err := ts.SaveProfile(context.Background(), profile.UserID, ProfileInput{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected a validation error for an empty update, got %v", err)
	}

	pricing := 500.0
	updated, err := ts.SaveProfile(context.Background(), profile.UserID, ProfileInput{
		Expertise: []string{models.ExpertiseAC, models.ExpertiseRefrigerator},
		Pricing:   &pricing,
	})
	if err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	if len(updated.Expertise) != 2 || updated.Pricing != 500 {
		t.Errorf("profile not updated: %+v", updated)
	}
}

func TestSetServiceRadiusBounds(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	profile := seedTechnician(techRepo, userRepo, "tech", 28.60, 77.20, 10, models.KycStatusApproved)

	for _, radius := range []float64{0, 0.5, 51, -3} {
		if _, err := ts.SetServiceRadius(context.Background(), profile.UserID, radius); apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("radius %f: expected a validation error, got %v", radius, err)
		}
	}

	updated, err := ts.SetServiceRadius(context.Background(), profile.UserID, 30)
	if err != nil {
		t.Fatalf("SetServiceRadius failed: %v", err)
	}
	if updated.ServiceLocation.ServiceRadius != 30 {
		t.Errorf("radius = %f, want 30", updated.ServiceLocation.ServiceRadius)
	}
}

func TestSubmitKycRequiresBothDocuments(t *testing.T) {
	techRepo := newFakeTechRepo()
	userRepo := newFakeUserRepo()
	ts := NewTechnicianService(techRepo, userRepo)

	profile := seedTechnician(techRepo, userRepo, "tech", 28.60, 77.20, 10, models.KycStatusNotSubmitted)

	if _, err := ts.SubmitKyc(context.Background(), profile.UserID, models.KycDocuments{
		IDImage: "uploads/id.png",
	}); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected a validation error with a missing photo, got %v", err)
	}

	updated, err := ts.SubmitKyc(context.Background(), profile.UserID, models.KycDocuments{
		IDImage: "uploads/id.png",
		Photo:   "uploads/photo.png",
	})
	if err != nil {
		t.Fatalf("SubmitKyc failed: %v", err)
	}
	if updated.KycStatus != models.KycStatusPending {
		t.Errorf("kycStatus = %q, want pending", updated.KycStatus)
	}
}
