package services

import (
	"context"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/helpers"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultSearchRadiusKm applies when a nearby search omits the radius.
const DefaultSearchRadiusKm = 25

type TechnicianService struct {
	techRepo models.TechnicianRepo
	userRepo models.UserRepo
}

func NewTechnicianService(techRepo models.TechnicianRepo, userRepo models.UserRepo) *TechnicianService {
	return &TechnicianService{
		techRepo: techRepo,
		userRepo: userRepo,
	}
}

type NearbyQuery struct {
	Latitude  float64
	Longitude float64
	Radius    float64
	Expertise string
}

// NearbyTechnician is a matching result: the profile, its owner's public
// info and the rounded distance from the requester.
type NearbyTechnician struct {
	*models.TechnicianProfile
	User     *models.UserSummary `json:"user,omitempty"`
	Distance float64             `json:"distance"`
}

// Nearby returns KYC-approved technicians whose service location falls within
// both the requested radius and their own advertised radius, closest first.
// The technician's radius is authoritative: a customer willing to search
// further cannot reach past it.
func (ts *TechnicianService) Nearby(ctx context.Context, query NearbyQuery) ([]*NearbyTechnician, error) {
	if !helpers.ValidCoordinates(query.Latitude, query.Longitude) {
		return nil, apperr.Validation("latitude and longitude are required")
	}
	if query.Radius <= 0 {
		query.Radius = DefaultSearchRadiusKm
	}
	if query.Expertise != "" && !models.ValidExpertise(query.Expertise) {
		return nil, apperr.Validation("unknown expertise")
	}

	profiles, err := ts.techRepo.FindApproved(ctx, query.Expertise)
	if err != nil {
		return nil, apperr.Internal("failed to fetch technicians", err)
	}

	nearby := []*NearbyTechnician{}
	for _, profile := range profiles {
		// No service location means unreachable, not "anywhere".
		if profile.ServiceLocation == nil {
			continue
		}

		distance := helpers.RoundDistance(helpers.HaversineDistance(
			query.Latitude, query.Longitude,
			profile.ServiceLocation.Latitude, profile.ServiceLocation.Longitude,
		))

		cutoff := query.Radius
		if profile.ServiceLocation.ServiceRadius < cutoff {
			cutoff = profile.ServiceLocation.ServiceRadius
		}
		if distance > cutoff {
			continue
		}

		nearby = append(nearby, &NearbyTechnician{
			TechnicianProfile: profile,
			Distance:          distance,
		})
	}

	sortNearby(nearby)

	if err := ts.attachUsers(ctx, nearby); err != nil {
		return nil, err
	}
	return nearby, nil
}

func sortNearby(techs []*NearbyTechnician) {
	// Insertion sort; candidate sets are small and already mostly ordered.
	for i := 1; i < len(techs); i++ {
		for j := i; j > 0 && techs[j].Distance < techs[j-1].Distance; j-- {
			techs[j], techs[j-1] = techs[j-1], techs[j]
		}
	}
}

func (ts *TechnicianService) attachUsers(ctx context.Context, techs []*NearbyTechnician) error {
	ids := make([]primitive.ObjectID, 0, len(techs))
	for _, t := range techs {
		ids = append(ids, t.UserID)
	}

	users, err := ts.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return apperr.Internal("failed to fetch technician users", err)
	}
	for _, t := range techs {
		t.User = users[t.UserID].Summary()
	}
	return nil
}

// TechnicianListing is a public search result.
type TechnicianListing struct {
	*models.TechnicianProfile
	User *models.UserSummary `json:"user,omitempty"`
}

func (ts *TechnicianService) Search(ctx context.Context, expertise, serviceArea string) ([]*TechnicianListing, error) {
	profiles, err := ts.techRepo.SearchProfiles(ctx, expertise, serviceArea)
	if err != nil {
		return nil, apperr.Internal("failed to search technicians", err)
	}
	return ts.withUsers(ctx, profiles)
}

func (ts *TechnicianService) ListAll(ctx context.Context) ([]*TechnicianListing, error) {
	profiles, err := ts.techRepo.ListProfiles(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list technicians", err)
	}
	return ts.withUsers(ctx, profiles)
}

func (ts *TechnicianService) withUsers(ctx context.Context, profiles []*models.TechnicianProfile) ([]*TechnicianListing, error) {
	ids := make([]primitive.ObjectID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := ts.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal("failed to fetch technician users", err)
	}

	listings := make([]*TechnicianListing, 0, len(profiles))
	for _, p := range profiles {
		listings = append(listings, &TechnicianListing{
			TechnicianProfile: p,
			User:              users[p.UserID].Summary(),
		})
	}
	return listings, nil
}

func (ts *TechnicianService) MyProfile(ctx context.Context, userID primitive.ObjectID) (*models.TechnicianProfile, error) {
	profile, err := ts.techRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch profile", err)
	}
	if profile == nil {
		return nil, apperr.NotFound("technician profile not found")
	}
	return profile, nil
}

type ProfileInput struct {
	Expertise    []string                   `json:"expertise"`
	ServiceAreas []string                   `json:"serviceAreas"`
	Availability *models.WeeklyAvailability `json:"availability"`
	Pricing      *float64                   `json:"pricing"`
}

// SaveProfile updates the mutable profile attributes. KYC state and rating
// are derived fields and never writable here.
func (ts *TechnicianService) SaveProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*models.TechnicianProfile, error) {
	update := map[string]interface{}{}

	if input.Expertise != nil {
		for _, tag := range input.Expertise {
			if !models.ValidExpertise(tag) {
				return nil, apperr.Validation("unknown expertise: " + tag)
			}
		}
		update["expertise"] = input.Expertise
	}
	if input.ServiceAreas != nil {
		update["serviceAreas"] = input.ServiceAreas
	}
	if input.Availability != nil {
		if err := validateAvailability(input.Availability); err != nil {
			return nil, err
		}
		update["availability"] = input.Availability
	}
	if input.Pricing != nil {
		if *input.Pricing < 0 {
			return nil, apperr.Validation("pricing cannot be negative")
		}
		update["pricing"] = *input.Pricing
	}

	if len(update) == 0 {
		return nil, apperr.Validation("no profile fields provided")
	}

	profile, err := ts.techRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, apperr.Internal("failed to save profile", err)
	}
	if profile == nil {
		return nil, apperr.NotFound("technician profile not found")
	}
	return profile, nil
}

func validateAvailability(a *models.WeeklyAvailability) error {
	days := []models.DayWindow{
		a.Monday, a.Tuesday, a.Wednesday, a.Thursday,
		a.Friday, a.Saturday, a.Sunday,
	}
	for _, day := range days {
		if day.StartHour < 0 || day.StartHour > 23 || day.EndHour < 0 || day.EndHour > 23 {
			return apperr.Validation("availability hours must be between 0 and 23")
		}
	}
	return nil
}

func (ts *TechnicianService) SetServiceRadius(ctx context.Context, userID primitive.ObjectID, radius float64) (*models.TechnicianProfile, error) {
	if radius < 1 || radius > 50 {
		return nil, apperr.Validation("service radius must be between 1 and 50 km")
	}

	profile, err := ts.techRepo.SetServiceRadius(ctx, userID, radius)
	if err != nil {
		return nil, apperr.Internal("failed to update service radius", err)
	}
	if profile == nil {
		return nil, apperr.NotFound("technician profile with a service location not found")
	}
	return profile, nil
}

// SubmitKyc records the uploaded document paths and moves the profile to
// pending review.
func (ts *TechnicianService) SubmitKyc(ctx context.Context, userID primitive.ObjectID, docs models.KycDocuments) (*models.TechnicianProfile, error) {
	if docs.IDImage == "" || docs.Photo == "" {
		return nil, apperr.Validation("both IDImage and Photo are required")
	}

	profile, err := ts.techRepo.UpsertKycDocuments(ctx, userID, docs)
	if err != nil {
		return nil, apperr.Internal("failed to submit kyc documents", err)
	}
	return profile, nil
}
