package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/middleware"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createBookingRequest struct {
	TechnicianID  string    `json:"technicianId"`
	ServiceType   string    `json:"serviceType"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	ScheduledDate time.Time `json:"scheduledDate"`
	ScheduledTime string    `json:"scheduledTime"`
	Latitude      *float64  `json:"latitude"`
	Longitude     *float64  `json:"longitude"`
}

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input createBookingRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		technicianID, err := primitive.ObjectIDFromHex(input.TechnicianID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid technician id"))
			return
		}

		booking, err := bs.Create(c.Request.Context(), customerID, services.CreateBookingInput{
			TechnicianID:  technicianID,
			ServiceType:   input.ServiceType,
			Description:   input.Description,
			Address:       input.Address,
			ScheduledDate: input.ScheduledDate,
			ScheduledTime: input.ScheduledTime,
			Latitude:      input.Latitude,
			Longitude:     input.Longitude,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "Booking created successfully"))
	}
}

func CustomerBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		bookings, err := bs.ListForCustomer(c.Request.Context(), customerID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, "Bookings retrieved successfully"))
	}
}

func UpdateBookingStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}
		claims := middleware.GetClaims(c)

		bookingID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking id"))
			return
		}

		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.UpdateStatus(c.Request.Context(), bookingID, caller, claims.Role, input.Status)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking status updated successfully"))
	}
}

// FlagBooking raises a dispute against the other party of a booking. The
// target is derived from the caller's role, never from the request body.
func FlagBooking(fs *services.FlagService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}
		claims := middleware.GetClaims(c)

		bookingID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking id"))
			return
		}

		var input struct {
			Reason      string `json:"reason"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if input.Reason == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("reason is required"))
			return
		}

		flag, err := fs.RaiseForBooking(c.Request.Context(), caller, claims.Role, bookingID, input.Reason, input.Description)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(flag, "Flag raised successfully"))
	}
}
