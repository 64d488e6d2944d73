package routes

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/repair-hero/server/internal/config"
	"github.com/repair-hero/server/internal/container"
	"github.com/repair-hero/server/internal/helpers"
	"github.com/repair-hero/server/internal/models"
)

const testJWTSecret = "route-test-secret"

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		DatabaseName:  "repairhero_test",
		JWTSecret:     testJWTSecret,
		AllowedOrigin: "http://localhost:3000",
		UploadDir:     t.TempDir(),
		Environment:   "test",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// No database behind the router: these tests only exercise the
	// middleware chain up to request validation.
	ct := container.NewContainer(logger, cfg, nil)
	return SetupRoutes(ct)
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	token, err := helpers.GenerateToken([]byte(testJWTSecret), primitive.NewObjectID().Hex(), role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func TestNearbyTechniciansRequiresCustomer(t *testing.T) {
	r := testRouter(t)

	// Anonymous callers must be turned away before the handler runs.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/technicians?lat=28.60&lon=77.20", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}

	// Authenticated, but the wrong role.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/technicians?lat=28.60&lon=77.20", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.RoleTechnician))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("technician token: expected status %d, got %d", http.StatusForbidden, w.Code)
	}

	// A customer passes the gate and reaches the handler's own
	// validation (no lat/lon supplied here).
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/technicians", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, models.RoleCustomer))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("customer token without coordinates: expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
