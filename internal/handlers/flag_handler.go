package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateFlag raises a standalone flag against another user, outside any
// booking context.
func CreateFlag(fs *services.FlagService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input struct {
			AgainstUser string `json:"againstUser"`
			Reason      string `json:"reason"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		againstUser, err := primitive.ObjectIDFromHex(input.AgainstUser)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid target user id"))
			return
		}

		flag, err := fs.Raise(c.Request.Context(), caller, againstUser, input.Reason, input.Description)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(flag, "Flag raised successfully"))
	}
}

func MyFlags(fs *services.FlagService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		flags, err := fs.MyFlags(c.Request.Context(), caller)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(flags, "Flags retrieved successfully"))
	}
}
