package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
)

func RegisterCustomer(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := u.RegisterCustomer(c.Request.Context(), input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(result, "Customer registered successfully"))
	}
}

func RegisterTechnician(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := u.RegisterTechnician(c.Request.Context(), input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(result, "Technician registered successfully"))
	}
}

func Login(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := u.Login(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, "Login successful"))
	}
}
