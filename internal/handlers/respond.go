package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/repair-hero/server/internal/apperr"
	"github.com/repair-hero/server/internal/middleware"
	"github.com/repair-hero/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// writeError maps a service error onto the taxonomy's HTTP status. Internal
// errors are pushed onto the gin error list for the logging middleware; the
// caller only ever sees the generic message.
func writeError(c *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		_ = c.Error(err)
	}
	c.JSON(apperr.HTTPStatus(err), models.ErrorResponse(apperr.Message(err)))
}

// callerID resolves the authenticated caller's user id from the claims.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID())
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
