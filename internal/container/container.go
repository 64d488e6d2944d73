package container

import (
	"log/slog"

	"github.com/repair-hero/server/internal/config"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Config        *config.Config
	MongoDBClient *mongo.Client

	UserService       *services.UserService
	TechnicianService *services.TechnicianService
	BookingService    *services.BookingService
	ReviewService     *services.ReviewService
	FlagService       *services.FlagService
	PartService       *services.PartService
	AdminService      *services.AdminService
}

// NewContainer creates a new dependency injection container
func NewContainer(logger *slog.Logger, cfg *config.Config, mongoDBClient *mongo.Client) *Container {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.DatabaseName)

	userService := services.NewUserService(repo, repo, []byte(cfg.JWTSecret))
	technicianService := services.NewTechnicianService(repo, repo)
	bookingService := services.NewBookingService(repo, repo, repo, repo)
	reviewService := services.NewReviewService(repo, repo, repo)
	flagService := services.NewFlagService(repo, repo, repo)
	partService := services.NewPartService(repo, repo)
	adminService := services.NewAdminService(repo, repo, repo, repo, repo)

	return &Container{
		Logger:            logger,
		Config:            cfg,
		MongoDBClient:     mongoDBClient,
		UserService:       userService,
		TechnicianService: technicianService,
		BookingService:    bookingService,
		ReviewService:     reviewService,
		FlagService:       flagService,
		PartService:       partService,
		AdminService:      adminService,
	}
}
