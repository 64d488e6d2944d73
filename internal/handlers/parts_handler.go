package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
)

func ListParts(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts, err := ps.ListAvailable(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(parts, "Parts retrieved successfully"))
	}
}

func OrderPart(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		partID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid part id"))
			return
		}

		order, err := ps.Order(c.Request.Context(), caller, partID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(order, "Part ordered successfully"))
	}
}

func MyPartOrders(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		orders, err := ps.MyOrders(c.Request.Context(), caller)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(orders, "Orders retrieved successfully"))
	}
}
