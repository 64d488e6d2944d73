package services

import (
	"context"
	"time"

	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/helpers"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	userRepo  models.UserRepo
	techRepo  models.TechnicianRepo
	jwtSecret []byte
}

func NewUserService(userRepo models.UserRepo, techRepo models.TechnicianRepo, jwtSecret []byte) *UserService {
	return &UserService{
		userRepo:  userRepo,
		techRepo:  techRepo,
		jwtSecret: jwtSecret,
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResult pairs a sanitized user with a freshly issued bearer token.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (us *UserService) RegisterCustomer(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	return us.register(ctx, input, models.RoleCustomer)
}

// RegisterTechnician creates the user and its technician profile in the same
// request; a failed profile insert rolls the user back so a technician never
// exists without a profile.
func (us *UserService) RegisterTechnician(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	result, err := us.register(ctx, input, models.RoleTechnician)
	if err != nil {
		return nil, err
	}

	profile := models.NewTechnicianProfile(result.User.ID)
	if _, err := us.techRepo.CreateProfile(ctx, profile); err != nil {
		_ = us.userRepo.DeleteUser(ctx, result.User.ID)
		return nil, apperr.Internal("failed to create technician profile", err)
	}

	return result, nil
}

func (us *UserService) register(ctx context.Context, input RegisterInput, role string) (*AuthResult, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, apperr.Validation("name, email, phone and password are required")
	}
	if !helpers.IsPasswordStrong(input.Password) {
		return nil, apperr.Validation("password must be at least 8 characters with upper, lower and numeric characters")
	}

	hashed, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	now := time.Now()
	user := &models.User{
		UserName:  input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  hashed,
		Role:      role,
		Status:    models.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := us.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := helpers.GenerateToken(us.jwtSecret, created.ID.Hex(), created.Role)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	return &AuthResult{Token: token, User: created}, nil
}

func (us *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, apperr.Validation("invalid email format")
	}
	if password == "" {
		return nil, apperr.Validation("password is required")
	}

	user, err := us.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal("login failed", err)
	}
	if user == nil || !helpers.CheckPassword(user.Password, password) {
		return nil, apperr.Authentication("invalid credentials")
	}

	token, err := helpers.GenerateToken(us.jwtSecret, user.ID.Hex(), user.Role)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (us *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := us.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

func (us *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, userName, email, phone string) (*models.User, error) {
	if userName == "" || email == "" || phone == "" {
		return nil, apperr.Validation("userName, email and phone are required")
	}
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, apperr.Validation("invalid email format")
	}

	user, err := us.userRepo.UpdateUserProfile(ctx, userID, userName, email, phone)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, err
		}
		return nil, apperr.Internal("failed to update profile", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// UpdateLocation stores the caller's geolocation; technicians also get their
// service location moved along with it.
func (us *UserService) UpdateLocation(ctx context.Context, userID primitive.ObjectID, role string, latitude, longitude float64, address string) (*models.User, error) {
	if !helpers.ValidCoordinates(latitude, longitude) {
		return nil, apperr.Validation("latitude and longitude are required")
	}

	location := &models.GeoLocation{
		Latitude:  latitude,
		Longitude: longitude,
		Address:   address,
	}

	user, err := us.userRepo.UpdateUserLocation(ctx, userID, location)
	if err != nil {
		return nil, apperr.Internal("failed to update location", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	if role == models.RoleTechnician {
		if _, err := us.techRepo.SetServiceLocation(ctx, userID, latitude, longitude); err != nil {
			return nil, apperr.Internal("failed to update service location", err)
		}
	}

	return user, nil
}
