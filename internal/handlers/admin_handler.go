package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func AdminDashboard(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := as.Dashboard(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(stats, "Dashboard stats retrieved successfully"))
	}
}

func AdminListUsers(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := as.ListUsers(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(users, "Users retrieved successfully"))
	}
}

func AdminSetUserStatus(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		userID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id"))
			return
		}

		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		user, err := as.SetUserStatus(c.Request.Context(), adminID, userID, input.Status)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, "User status updated successfully"))
	}
}

func AdminDeleteUser(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		userID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user id"))
			return
		}

		if err := as.DeleteUser(c.Request.Context(), adminID, userID); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "User deleted successfully"))
	}
}

func AdminListTechnicians(ts *services.TechnicianService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listings, err := ts.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(listings, "Technicians retrieved successfully"))
	}
}

func AdminDecideKyc(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		profileID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid technician id"))
			return
		}

		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		profile, err := as.DecideKyc(c.Request.Context(), adminID, profileID, input.Status)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "KYC status updated successfully"))
	}
}

func AdminKycImages(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid technician id"))
			return
		}

		docs, status, err := as.KycImages(c.Request.Context(), profileID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"documents": docs,
			"kycStatus": status,
		}, "KYC documents retrieved successfully"))
	}
}

func AdminListBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := bs.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, "Bookings retrieved successfully"))
	}
}

func AdminCancelBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		bookingID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking id"))
			return
		}

		var input struct {
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.AdminCancel(c.Request.Context(), adminID, bookingID, input.Reason)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking, "Booking cancelled successfully"))
	}
}

func AdminListFlags(fs *services.FlagService) gin.HandlerFunc {
	return func(c *gin.Context) {
		flags, err := fs.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(flags, "Flags retrieved successfully"))
	}
}

func AdminResolveFlag(fs *services.FlagService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		flagID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid flag id"))
			return
		}

		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		flag, err := fs.Resolve(c.Request.Context(), adminID, flagID, input.Status)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(flag, "Flag resolved successfully"))
	}
}

func AdminListReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := rs.ListAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, "Reviews retrieved successfully"))
	}
}

func AdminCreatePart(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var part models.Part
		if err := c.ShouldBindJSON(&part); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := ps.CreatePart(c.Request.Context(), &part)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Part created successfully"))
	}
}

func AdminUpdatePart(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		partID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid part id"))
			return
		}

		var input map[string]interface{}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		part, err := ps.UpdatePart(c.Request.Context(), partID, input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(part, "Part updated successfully"))
	}
}

func AdminDeletePart(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		partID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid part id"))
			return
		}

		if err := ps.DeletePart(c.Request.Context(), partID); err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Part deleted successfully"))
	}
}

func AdminSetPartStock(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		partID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid part id"))
			return
		}

		var input struct {
			Stock *int `json:"stock"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if input.Stock == nil || *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("stock must be a non-negative integer"))
			return
		}

		part, err := ps.SetStock(c.Request.Context(), partID, *input.Stock)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(part, "Stock updated successfully"))
	}
}

func AdminListOrders(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ps.ListOrders(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(orders, "Orders retrieved successfully"))
	}
}

func AdminSetOrderStatus(ps *services.PartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid order id"))
			return
		}

		var input struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		order, err := ps.SetOrderStatus(c.Request.Context(), orderID, input.Status)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(order, "Order status updated successfully"))
	}
}

// AdminLogAction records a manual audit entry, for interventions performed
// outside the API.
func AdminLogAction(as *services.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input struct {
			Action      string `json:"action"`
			TargetType  string `json:"targetType"`
			TargetID    string `json:"targetId"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if input.Action == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("action is required"))
			return
		}

		targetID := primitive.NilObjectID
		if input.TargetID != "" {
			var err error
			targetID, err = primitive.ObjectIDFromHex(input.TargetID)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid target id"))
				return
			}
		}

		action, err := as.LogAction(c.Request.Context(), &models.AdminAction{
			AdminID:     adminID,
			Action:      input.Action,
			TargetType:  input.TargetType,
			TargetID:    targetID,
			Description: input.Description,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(action, "Action logged successfully"))
	}
}
