package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func CreateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input struct {
			BookingID string `json:"bookingId"`
			Rating    int    `json:"rating"`
			Comment   string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		bookingID, err := primitive.ObjectIDFromHex(input.BookingID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking id"))
			return
		}

		review, err := rs.Create(c.Request.Context(), customerID, bookingID, input.Rating, input.Comment)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(review, "Review submitted successfully"))
	}
}
