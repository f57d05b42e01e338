package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_pos_backend/internal/metrics"
	"restaurant_pos_backend/internal/models"
	"restaurant_pos_backend/internal/repositories"
	"restaurant_pos_backend/internal/services"
	"restaurant_pos_backend/internal/store"
	"restaurant_pos_backend/pkg/utils"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("router-test-secret", time.Hour)

	st := store.New()
	st.SetMenuItems(models.DefaultMenu())
	reg := prometheus.NewRegistry()
	m := metrics.NewPOSMetrics(reg)

	auth := services.NewAuthService(repositories.NewMemoryStaffRepository())
	require.NoError(t, auth.BootstrapManager(context.Background(), "manager", "manager-pass"))
	_, err := auth.CreateStaff(context.Background(), "hall", "hall-pass-1", models.RoleStaff)
	require.NoError(t, err)

	return New(Deps{
		Menu:           services.NewMenuService(st, nil),
		Tables:         services.NewTableService(st, nil),
		Orders:         services.NewOrderService(st, nil, m, nil),
		History:        services.NewOrderHistoryService(st, nil),
		Reservations:   services.NewReservationService(st, nil),
		Auth:           auth,
		Gatherer:       reg,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
}

func request(engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine, username, password string) string {
	t.Helper()
	w := request(engine, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestPingAndMetricsArePublic(t *testing.T) {
	engine := newEngine(t)

	assert.Equal(t, http.StatusOK, request(engine, http.MethodGet, "/ping", "", nil).Code)
	w := request(engine, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pos_orders_confirmed_total")
}

func TestAPIRequiresToken(t *testing.T) {
	engine := newEngine(t)

	assert.Equal(t, http.StatusUnauthorized, request(engine, http.MethodGet, "/api/v1/tables", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, request(engine, http.MethodGet, "/api/v1/tables", "garbage", nil).Code)
}

func TestWrongPasswordIsUnauthorized(t *testing.T) {
	engine := newEngine(t)

	w := request(engine, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{Username: "manager", Password: "nope"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStaffCanOrderButNotEditMenu(t *testing.T) {
	engine := newEngine(t)
	token := login(t, engine, "hall", "hall-pass-1")

	w := request(engine, http.MethodGet, "/api/v1/tables", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tables []models.Table
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tables))

	w = request(engine, http.MethodPost, "/api/v1/tables/1/pending-items", token, services.AddPendingItemRequest{ItemID: "mock-menu-1"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(engine, http.MethodPost, "/api/v1/menu-items/mock-menu-1/toggle-availability", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(engine, http.MethodGet, "/api/v1/menu-items/unavailable", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestManagerTogglesAvailability(t *testing.T) {
	engine := newEngine(t)
	token := login(t, engine, "manager", "manager-pass")

	w := request(engine, http.MethodPost, "/api/v1/menu-items/mock-menu-4/toggle-availability", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(engine, http.MethodGet, "/api/v1/menu-items/unavailable", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"item_ids":["mock-menu-4"]}`, w.Body.String())

	w = request(engine, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"Manager"`)
}
