package services

import (
	"context"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Map-backed repository fakes so service logic is testable without a
// running MongoDB.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email || u.Phone == user.Phone {
			return nil, apperr.Conflict("email or phone already exists")
		}
	}
	user.ID = primitive.NewObjectID()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUsersByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error) {
	out := map[primitive.ObjectID]*models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUserProfile(_ context.Context, id primitive.ObjectID, userName, email, phone string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	if userName != "" {
		u.UserName = userName
	}
	if email != "" {
		u.Email = email
	}
	if phone != "" {
		u.Phone = phone
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateUserLocation(_ context.Context, id primitive.ObjectID, location *models.GeoLocation) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.Location = location
	return u, nil
}

func (f *fakeUserRepo) UpdateUserStatus(_ context.Context, id primitive.ObjectID, status string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	u.Status = status
	return u, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]*models.User, error) {
	out := []*models.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) CountUsers(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeTechRepo struct {
	profiles map[primitive.ObjectID]*models.TechnicianProfile
}

func newFakeTechRepo() *fakeTechRepo {
	return &fakeTechRepo{profiles: map[primitive.ObjectID]*models.TechnicianProfile{}}
}

func (f *fakeTechRepo) CreateProfile(_ context.Context, profile *models.TechnicianProfile) (*models.TechnicianProfile, error) {
	profile.ID = primitive.NewObjectID()
	f.profiles[profile.ID] = profile
	return profile, nil
}

func (f *fakeTechRepo) GetProfileByUserID(_ context.Context, userID primitive.ObjectID) (*models.TechnicianProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeTechRepo) GetProfileByID(_ context.Context, id primitive.ObjectID) (*models.TechnicianProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeTechRepo) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update map[string]interface{}) (*models.TechnicianProfile, error) {
	p, _ := f.GetProfileByUserID(ctx, userID)
	if p == nil {
		return nil, nil
	}
	if v, ok := update["expertise"].([]string); ok {
		p.Expertise = v
	}
	if v, ok := update["serviceAreas"].([]string); ok {
		p.ServiceAreas = v
	}
	if v, ok := update["availability"].(*models.WeeklyAvailability); ok {
		p.Availability = *v
	}
	if v, ok := update["pricing"].(float64); ok {
		p.Pricing = v
	}
	return p, nil
}

func (f *fakeTechRepo) UpsertKycDocuments(ctx context.Context, userID primitive.ObjectID, docs models.KycDocuments) (*models.TechnicianProfile, error) {
	p, _ := f.GetProfileByUserID(ctx, userID)
	if p == nil {
		p = models.NewTechnicianProfile(userID)
		p.ID = primitive.NewObjectID()
		f.profiles[p.ID] = p
	}
	p.KycDocuments = docs
	p.KycStatus = models.KycStatusPending
	return p, nil
}

func (f *fakeTechRepo) SetKycStatus(_ context.Context, id primitive.ObjectID, status string) (*models.TechnicianProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	p.KycStatus = status
	return p, nil
}

func (f *fakeTechRepo) SetServiceLocation(ctx context.Context, userID primitive.ObjectID, latitude, longitude float64) (*models.TechnicianProfile, error) {
	p, _ := f.GetProfileByUserID(ctx, userID)
	if p == nil {
		return nil, nil
	}
	radius := float64(models.DefaultServiceRadiusKm)
	if p.ServiceLocation != nil {
		radius = p.ServiceLocation.ServiceRadius
	}
	p.ServiceLocation = &models.ServiceLocation{Latitude: latitude, Longitude: longitude, ServiceRadius: radius}
	return p, nil
}

func (f *fakeTechRepo) SetServiceRadius(ctx context.Context, userID primitive.ObjectID, radius float64) (*models.TechnicianProfile, error) {
	p, _ := f.GetProfileByUserID(ctx, userID)
	if p == nil || p.ServiceLocation == nil {
		return nil, nil
	}
	p.ServiceLocation.ServiceRadius = radius
	return p, nil
}

func (f *fakeTechRepo) FindApproved(_ context.Context, expertise string) ([]*models.TechnicianProfile, error) {
	out := []*models.TechnicianProfile{}
	for _, p := range f.profiles {
		if p.KycStatus != models.KycStatusApproved {
			continue
		}
		if expertise != "" && !contains(p.Expertise, expertise) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeTechRepo) SearchProfiles(_ context.Context, expertise, serviceArea string) ([]*models.TechnicianProfile, error) {
	out := []*models.TechnicianProfile{}
	for _, p := range f.profiles {
		if expertise != "" && !contains(p.Expertise, expertise) {
			continue
		}
		if serviceArea != "" && !contains(p.ServiceAreas, serviceArea) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeTechRepo) ListProfiles(_ context.Context) ([]*models.TechnicianProfile, error) {
	out := []*models.TechnicianProfile{}
	for _, p := range f.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeTechRepo) SetRating(_ context.Context, id primitive.ObjectID, avgRating float64, totalReviews int) error {
	if p, ok := f.profiles[id]; ok {
		p.AvgRating = avgRating
		p.TotalReviews = totalReviews
	}
	return nil
}

func (f *fakeTechRepo) PushPartOrder(_ context.Context, id primitive.ObjectID, order models.PartOrderSummary) error {
	if p, ok := f.profiles[id]; ok {
		p.PartsOrdered = append(p.PartsOrdered, order)
	}
	return nil
}

func (f *fakeTechRepo) SetPartOrderStatus(_ context.Context, buyerID, orderID primitive.ObjectID, status string) error {
	p, ok := f.profiles[buyerID]
	if !ok {
		return nil
	}
	for i := range p.PartsOrdered {
		if p.PartsOrdered[i].OrderID == orderID {
			p.PartsOrdered[i].Status = status
		}
	}
	return nil
}

func (f *fakeTechRepo) DeleteProfileByUserID(ctx context.Context, userID primitive.ObjectID) error {
	p, _ := f.GetProfileByUserID(ctx, userID)
	if p != nil {
		delete(f.profiles, p.ID)
	}
	return nil
}

func (f *fakeTechRepo) CountProfiles(_ context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

func (f *fakeTechRepo) CountProfilesByKycStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, p := range f.profiles {
		if p.KycStatus == status {
			n++
		}
	}
	return n, nil
}

// fakeBookingRepo hands out decoded copies the way the driver does, so a
// caller's read never aliases the stored document. afterGet, when set, runs
// between a read and the caller's next write to stage concurrent updates.
type fakeBookingRepo struct {
	bookings map[primitive.ObjectID]*models.Booking
	afterGet func()
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]*models.Booking{}}
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.ID = primitive.NewObjectID()
	stored := *booking
	f.bookings[booking.ID] = &stored
	return booking, nil
}

func (f *fakeBookingRepo) GetBookingByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	if f.afterGet != nil {
		f.afterGet()
	}
	return &cp, nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(_ context.Context, id primitive.ObjectID, version int64, status string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.Version != version {
		return nil, nil
	}
	b.Status = status
	b.Version++
	b.UpdatedAt = time.Now()
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) CancelBooking(_ context.Context, id primitive.ObjectID, version int64, cancelledBy primitive.ObjectID, reason string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.Version != version {
		return nil, nil
	}
	now := time.Now()
	b.Status = models.BookingCancelled
	b.Version++
	b.CancellationReason = reason
	b.CancelledBy = &cancelledBy
	b.CancelledAt = &now
	b.UpdatedAt = now
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) SetBookingReview(_ context.Context, bookingID, reviewID primitive.ObjectID) error {
	if b, ok := f.bookings[bookingID]; ok {
		b.ReviewID = &reviewID
	}
	return nil
}

func (f *fakeBookingRepo) ListBookingsByCustomer(_ context.Context, customerID primitive.ObjectID) ([]*models.Booking, error) {
	out := []*models.Booking{}
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListBookingsByTechnician(_ context.Context, technicianID primitive.ObjectID) ([]*models.Booking, error) {
	out := []*models.Booking{}
	for _, b := range f.bookings {
		if b.TechnicianID == technicianID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListBookings(_ context.Context) ([]*models.Booking, error) {
	out := []*models.Booking{}
	for _, b := range f.bookings {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBookingRepo) ListBookingsByStatus(_ context.Context, status string) ([]*models.Booking, error) {
	out := []*models.Booking{}
	for _, b := range f.bookings {
		if b.Status == status {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountBookings(_ context.Context) (int64, error) {
	return int64(len(f.bookings)), nil
}

func (f *fakeBookingRepo) CountBookingsByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeBookingRepo) CountBookingsCreatedBetween(_ context.Context, from, to time.Time) (int64, error) {
	var n int64
	for _, b := range f.bookings {
		if !b.CreatedAt.Before(from) && b.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

type fakeReviewRepo struct {
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[primitive.ObjectID]*models.Review{}}
}

func (f *fakeReviewRepo) CreateReview(_ context.Context, review *models.Review) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.BookingID == review.BookingID {
			return nil, apperr.Conflict("review already exists for this booking")
		}
	}
	review.ID = primitive.NewObjectID()
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeReviewRepo) GetReviewByBooking(_ context.Context, bookingID primitive.ObjectID) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) ListReviewsByTechnician(_ context.Context, technicianID primitive.ObjectID) ([]*models.Review, error) {
	out := []*models.Review{}
	for _, r := range f.reviews {
		if r.TechnicianID == technicianID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ListReviews(_ context.Context) ([]*models.Review, error) {
	out := []*models.Review{}
	for _, r := range f.reviews {
		out = append(out, r)
	}
	return out, nil
}

type fakeFlagRepo struct {
	flags map[primitive.ObjectID]*models.Flag
}

func newFakeFlagRepo() *fakeFlagRepo {
	return &fakeFlagRepo{flags: map[primitive.ObjectID]*models.Flag{}}
}

func (f *fakeFlagRepo) CreateFlag(_ context.Context, flag *models.Flag) (*models.Flag, error) {
	flag.ID = primitive.NewObjectID()
	f.flags[flag.ID] = flag
	return flag, nil
}

func (f *fakeFlagRepo) GetFlagByID(_ context.Context, id primitive.ObjectID) (*models.Flag, error) {
	return f.flags[id], nil
}

func (f *fakeFlagRepo) ListFlagsByRaiser(_ context.Context, userID primitive.ObjectID) ([]*models.Flag, error) {
	out := []*models.Flag{}
	for _, fl := range f.flags {
		if fl.RaisedBy == userID {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f *fakeFlagRepo) ListFlags(_ context.Context) ([]*models.Flag, error) {
	out := []*models.Flag{}
	for _, fl := range f.flags {
		out = append(out, fl)
	}
	return out, nil
}

func (f *fakeFlagRepo) ResolveFlag(_ context.Context, id primitive.ObjectID, status string, resolvedBy primitive.ObjectID) (*models.Flag, error) {
	fl, ok := f.flags[id]
	if !ok || fl.Status != models.FlagOpen {
		return nil, nil
	}
	now := time.Now()
	fl.Status = status
	fl.ResolvedBy = &resolvedBy
	fl.ResolvedAt = &now
	return fl, nil
}

func (f *fakeFlagRepo) CountFlagsByStatus(_ context.Context, status string) (int64, error) {
	var n int64
	for _, fl := range f.flags {
		if fl.Status == status {
			n++
		}
	}
	return n, nil
}

type fakePartRepo struct {
	parts  map[primitive.ObjectID]*models.Part
	orders map[primitive.ObjectID]*models.TrackingLog

	failTrackingLog bool
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{
		parts:  map[primitive.ObjectID]*models.Part{},
		orders: map[primitive.ObjectID]*models.TrackingLog{},
	}
}

func (f *fakePartRepo) CreatePart(_ context.Context, part *models.Part) (*models.Part, error) {
	part.ID = primitive.NewObjectID()
	f.parts[part.ID] = part
	return part, nil
}

func (f *fakePartRepo) UpdatePart(_ context.Context, id primitive.ObjectID, update map[string]interface{}) (*models.Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, nil
	}
	if v, ok := update["name"].(string); ok {
		p.Name = v
	}
	if v, ok := update["price"].(float64); ok {
		p.Price = v
	}
	return p, nil
}

func (f *fakePartRepo) DeletePart(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.parts[id]; !ok {
		return false, nil
	}
	delete(f.parts, id)
	return true, nil
}

func (f *fakePartRepo) GetPartByID(_ context.Context, id primitive.ObjectID) (*models.Part, error) {
	return f.parts[id], nil
}

func (f *fakePartRepo) ListPartsInStock(_ context.Context) ([]*models.Part, error) {
	out := []*models.Part{}
	for _, p := range f.parts {
		if p.Stock > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartRepo) SetStock(_ context.Context, id primitive.ObjectID, stock int) (*models.Part, error) {
	p, ok := f.parts[id]
	if !ok {
		return nil, nil
	}
	p.Stock = stock
	return p, nil
}

func (f *fakePartRepo) DecrementStock(_ context.Context, id primitive.ObjectID) (bool, error) {
	p, ok := f.parts[id]
	if !ok || p.Stock <= 0 {
		return false, nil
	}
	p.Stock--
	return true, nil
}

func (f *fakePartRepo) IncrementStock(_ context.Context, id primitive.ObjectID) error {
	if p, ok := f.parts[id]; ok {
		p.Stock++
	}
	return nil
}

func (f *fakePartRepo) CreateTrackingLog(_ context.Context, log *models.TrackingLog) (*models.TrackingLog, error) {
	if f.failTrackingLog {
		return nil, apperr.Internal("tracking log write failed", nil)
	}
	log.ID = primitive.NewObjectID()
	f.orders[log.ID] = log
	return log, nil
}

func (f *fakePartRepo) DeleteTrackingLog(_ context.Context, id primitive.ObjectID) error {
	delete(f.orders, id)
	return nil
}

func (f *fakePartRepo) ListOrdersByBuyer(_ context.Context, buyerID primitive.ObjectID) ([]*models.TrackingLog, error) {
	out := []*models.TrackingLog{}
	for _, o := range f.orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakePartRepo) ListOrders(_ context.Context) ([]*models.TrackingLog, error) {
	out := []*models.TrackingLog{}
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakePartRepo) SetOrderStatus(_ context.Context, id primitive.ObjectID, status string) (*models.TrackingLog, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	o.Status = status
	return o, nil
}

type fakeAdminRepo struct {
	actions []*models.AdminAction
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{}
}

func (f *fakeAdminRepo) LogAdminAction(_ context.Context, action *models.AdminAction) (*models.AdminAction, error) {
	action.ID = primitive.NewObjectID()
	f.actions = append(f.actions, action)
	return action, nil
}

func contains(set []string, want string) bool {
	for _, s := range set {
		if s == want {
			return true
		}
	}
	return false
}
