package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayurveda-backend/internal/config"
	doctorHandler "ayurveda-backend/internal/domains/doctor/handler"
	reviewHandler "ayurveda-backend/internal/domains/review/handler"
	"ayurveda-backend/pkg/container"
	"ayurveda-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testContainer chỉ có config + JWT; handlers không có service nên
// request nào lọt qua auth sẽ panic và bị Recovery trả 500
func testContainer() *container.Container {
	return &container.Container{
		Config: &config.Config{
			App:    config.AppConfig{Version: "test"},
			HTTP:   config.HTTPConfig{AllowedOrigins: []string{"*"}},
			Review: config.ReviewConfig{SubmitRPS: 1, SubmitBurst: 1},
		},
		JWTManager:    jwt.NewManager("router-test-secret", time.Hour),
		DoctorHandler: doctorHandler.NewDoctorHandler(nil),
		ReviewHandler: reviewHandler.NewReviewHandler(nil),
	}
}

func bearer(t *testing.T, c *container.Container, doctorID int64, role string) string {
	t.Helper()
	token, err := c.JWTManager.GenerateAccessToken(doctorID, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func perform(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_DatabaseDownIs503(t *testing.T) {
	r := SetupRouter(testContainer())

	w := perform(r, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body["status"])
	services := body["services"].(map[string]interface{})
	assert.Equal(t, "disconnected", services["database"])
	assert.Equal(t, "disabled", services["redis"])
}

func TestMetricsEndpoint(t *testing.T) {
	r := SetupRouter(testContainer())

	w := perform(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestModerationRoutes_RequireToken(t *testing.T) {
	r := SetupRouter(testContainer())

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/reviews"},
		{http.MethodGet, "/api/v1/reviews/statistics"},
		{http.MethodGet, "/api/v1/reviews/1"},
		{http.MethodPatch, "/api/v1/reviews/1/status"},
		{http.MethodDelete, "/api/v1/reviews/1"},
		{http.MethodGet, "/api/v1/doctors/me"},
		{http.MethodPut, "/api/v1/doctors/me"},
		{http.MethodPost, "/api/v1/admin/doctors"},
		{http.MethodPatch, "/api/v1/admin/doctors/1/status"},
	} {
		w := perform(r, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAdminRoutes_RejectDoctorRole(t *testing.T) {
	c := testContainer()
	r := SetupRouter(c)
	auth := bearer(t, c, 7, jwt.RoleDoctor)

	w := perform(r, http.MethodPost, "/api/v1/admin/doctors", auth)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodPatch, "/api/v1/admin/doctors/1/status", auth)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDoctorSelfRoutes_RejectAdminRole(t *testing.T) {
	c := testContainer()
	r := SetupRouter(c)

	w := perform(r, http.MethodGet, "/api/v1/doctors/me", bearer(t, c, 0, jwt.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPublicSubmit_RateLimited(t *testing.T) {
	r := SetupRouter(testContainer())

	// burst 1: request đầu lọt qua limiter, request thứ hai bị chặn trước handler
	first := perform(r, http.MethodPost, "/api/v1/reviews/public", "")
	assert.NotEqual(t, http.StatusTooManyRequests, first.Code)

	second := perform(r, http.MethodPost, "/api/v1/reviews/public", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
