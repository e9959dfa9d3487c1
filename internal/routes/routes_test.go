package routes

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Shaik-ahammad/jas01-new-dental/internal/config"
)

// The route table is set up without touching the database, so a nil
// connection is enough to assert the registered surface.
func TestSetupRoutesRegistersSurface(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, nil, &config.Config{}, zap.NewNop(), nil)

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		http.MethodGet + " /health",
		http.MethodPost + " /api/v1/auth/register",
		http.MethodPost + " /api/v1/auth/login",
		http.MethodPost + " /api/v1/patient/appointments",
		http.MethodPut + " /api/v1/patient/appointments/:id/reschedule",
		http.MethodDelete + " /api/v1/patient/appointments/:id",
		http.MethodGet + " /api/v1/patient/doctors/:id/slots",
		http.MethodPut + " /api/v1/doctor/schedule-config",
		http.MethodPatch + " /api/v1/doctor/appointments/:id/complete",
		http.MethodGet + " /api/v1/organization/staff",
		http.MethodPost + " /api/v1/organization/staff",
		http.MethodPut + " /api/v1/organization/staff/:id/assignments",
		http.MethodPatch + " /api/v1/admin/kyc/doctors/:id",
		http.MethodPatch + " /api/v1/admin/kyc/hospitals/:id",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %q not registered", route)
		}
	}

	// Reschedule moved to PUT; the PATCH spelling must not linger.
	if registered[http.MethodPatch+" /api/v1/patient/appointments/:id/reschedule"] {
		t.Error("reschedule still registered under PATCH")
	}
}
