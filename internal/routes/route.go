package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/container"
	"github.com/repair-hero/server/internal/handlers"
	"github.com/repair-hero/server/internal/middleware"
	"github.com/repair-hero/server/internal/models"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(ct *container.Container) *gin.Engine {
	if ct.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{ct.Config.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(ct.Logger))
	r.Use(middleware.ErrorHandler(ct.Logger))
	r.Use(gin.Recovery())

	// Uploaded KYC documents are served from local disk.
	r.Static("/uploads", ct.Config.UploadDir)

	jwtSecret := []byte(ct.Config.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "repair-hero-api",
			})
		})

		// public routes
		api.POST("/auth/register/customer", handlers.RegisterCustomer(ct.UserService))
		api.POST("/auth/register/technician", handlers.RegisterTechnician(ct.UserService))
		api.POST("/auth/login", handlers.Login(ct.UserService))

		api.GET("/technicians/search", handlers.SearchTechnicians(ct.TechnicianService))
		api.GET("/technicians/:id/reviews", handlers.TechnicianReviews(ct.ReviewService))
		api.GET("/parts", handlers.ListParts(ct.PartService))
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(jwtSecret, ct.Logger))
	{
		protected.GET("/me", handlers.GetMe(ct.UserService))
		protected.PATCH("/me", handlers.UpdateMe(ct.UserService))
		protected.PATCH("/me/location", handlers.UpdateLocation(ct.UserService))

		protected.POST("/flags", handlers.CreateFlag(ct.FlagService))
		protected.GET("/flags", handlers.MyFlags(ct.FlagService))

		protected.POST("/bookings/:id/flag", handlers.FlagBooking(ct.FlagService))
		protected.PATCH("/bookings/:id/status", handlers.UpdateBookingStatus(ct.BookingService))
	}

	customer := protected.Group("/")
	customer.Use(middleware.RequireRole(models.RoleCustomer))
	{
		customer.GET("/technicians", handlers.NearbyTechnicians(ct.TechnicianService))
		customer.POST("/bookings", handlers.CreateBooking(ct.BookingService))
		customer.GET("/bookings", handlers.CustomerBookings(ct.BookingService))
		customer.POST("/reviews", handlers.CreateReview(ct.ReviewService))
	}

	technician := protected.Group("/technician")
	technician.Use(middleware.RequireRole(models.RoleTechnician))
	{
		technician.GET("/profile", handlers.MyTechnicianProfile(ct.TechnicianService))
		technician.PATCH("/profile", handlers.SaveTechnicianProfile(ct.TechnicianService))
		technician.PATCH("/profile/radius", handlers.UpdateServiceRadius(ct.TechnicianService))
		technician.POST("/kyc", handlers.UploadKycDocuments(ct.TechnicianService, ct.Config.UploadDir))
		technician.GET("/bookings", handlers.TechnicianBookings(ct.BookingService))
		technician.POST("/parts/:id/order", handlers.OrderPart(ct.PartService))
		technician.GET("/orders", handlers.MyPartOrders(ct.PartService))
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", handlers.AdminDashboard(ct.AdminService))

		admin.GET("/users", handlers.AdminListUsers(ct.AdminService))
		admin.PATCH("/users/:id/status", handlers.AdminSetUserStatus(ct.AdminService))
		admin.DELETE("/users/:id", handlers.AdminDeleteUser(ct.AdminService))

		admin.GET("/technicians", handlers.AdminListTechnicians(ct.TechnicianService))
		admin.PATCH("/technicians/:id/kyc", handlers.AdminDecideKyc(ct.AdminService))
		admin.GET("/technicians/:id/kyc", handlers.AdminKycImages(ct.AdminService))

		admin.GET("/bookings", handlers.AdminListBookings(ct.BookingService))
		admin.PATCH("/bookings/:id/cancel", handlers.AdminCancelBooking(ct.BookingService))

		admin.GET("/flags", handlers.AdminListFlags(ct.FlagService))
		admin.PATCH("/flags/:id", handlers.AdminResolveFlag(ct.FlagService))

		admin.GET("/reviews", handlers.AdminListReviews(ct.ReviewService))

		admin.POST("/parts", handlers.AdminCreatePart(ct.PartService))
		admin.PATCH("/parts/:id", handlers.AdminUpdatePart(ct.PartService))
		admin.DELETE("/parts/:id", handlers.AdminDeletePart(ct.PartService))
		admin.PATCH("/parts/:id/stock", handlers.AdminSetPartStock(ct.PartService))

		admin.GET("/orders", handlers.AdminListOrders(ct.PartService))
		admin.PATCH("/orders/:id/status", handlers.AdminSetOrderStatus(ct.PartService))

		admin.POST("/actions", handlers.AdminLogAction(ct.AdminService))
	}

	return r
}
