package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/helpers"
	"github.com/repair-hero/server/internal/models"
	"github.com/repair-hero/server/internal/services"
)

// NearbyTechnicians handles GET /technicians?lat=..&lon=..&radius=..&expertise=..
// Latitude and longitude are mandatory; radius falls back to the default
// search radius when absent.
func NearbyTechnicians(ts *services.TechnicianService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("lat must be a valid number"))
			return
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("lon must be a valid number"))
			return
		}

		radius := float64(services.DefaultSearchRadiusKm)
		if raw := c.Query("radius"); raw != "" {
			radius, err = strconv.ParseFloat(raw, 64)
			if err != nil || radius <= 0 {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("radius must be a positive number"))
				return
			}
		}

		results, err := ts.Nearby(c.Request.Context(), services.NearbyQuery{
			Latitude:  lat,
			Longitude: lon,
			Radius:    radius,
			Expertise: c.Query("expertise"),
		})
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(results, "Technicians retrieved successfully"))
	}
}

func SearchTechnicians(ts *services.TechnicianService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listings, err := ts.Search(c.Request.Context(), c.Query("expertise"), c.Query("serviceArea"))
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(listings, "Technicians retrieved successfully"))
	}
}

func MyTechnicianProfile(ts *services.TechnicianService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		profile, err := ts.MyProfile(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "Profile retrieved successfully"))
	}
}

func SaveTechnicianProfile(ts *services.TechnicianService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input services.ProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		profile, err := ts.SaveProfile(c.Request.Context(), id, input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "Profile updated successfully"))
	}
}

func UpdateServiceRadius(ts *services.TechnicianService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		var input struct {
			ServiceRadius float64 `json:"serviceRadius"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		profile, err := ts.SetServiceRadius(c.Request.Context(), id, input.ServiceRadius)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "Service radius updated successfully"))
	}
}

// UploadKycDocuments accepts a multipart form with idImage and photo files,
// stores both locally and records their paths on the technician profile.
func UploadKycDocuments(ts *services.TechnicianService, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		idImage, err := c.FormFile("idImage")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("idImage file is required"))
			return
		}
		photo, err := c.FormFile("photo")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("photo file is required"))
			return
		}

		idImagePath, err := helpers.SaveUploadedImage(c, idImage, uploadDir)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		photoPath, err := helpers.SaveUploadedImage(c, photo, uploadDir)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		profile, err := ts.SubmitKyc(c.Request.Context(), id, models.KycDocuments{
			IDImage: idImagePath,
			Photo:   photoPath,
		})
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(profile, "KYC documents submitted successfully"))
	}
}

func TechnicianReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		technicianID, ok := pathID(c, "id")
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid technician id"))
			return
		}

		reviews, err := rs.ListByTechnician(c.Request.Context(), technicianID)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, "Reviews retrieved successfully"))
	}
}

func TechnicianBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := callerID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		bookings, err := bs.ListForTechnician(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(bookings, "Bookings retrieved successfully"))
	}
}
