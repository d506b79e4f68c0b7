package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderspot/connecthost-api/internal/config"
	"github.com/orderspot/connecthost-api/internal/db"
	"github.com/orderspot/connecthost-api/internal/domain"
	"github.com/orderspot/connecthost-api/internal/repository/dao"
	"github.com/orderspot/connecthost-api/internal/service"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		API: &config.APIConfig{
			Environment:        "test",
			Port:               "0",
			BaseURL:            "localhost",
			AllowedCORSDomains: []string{"http://localhost:3000"},
			JWTSigningKey:      "server-test-key",
			TokenTTL:           time.Hour,
		},
		Gin:        &config.GinConfig{Mode: gin.TestMode},
		Data:       &config.DataConfig{Backend: config.BackendMock},
		Production: &config.ProductionConfig{RefreshInterval: 30 * time.Second},
		Loyalty:    &config.LoyaltyConfig{PointsPerUnit: "1", Rounding: "floor"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	database, err := db.OpenSQLiteMemory("api_"+strings.ReplaceAll(t.Name(), "/", "_"), true)
	require.NoError(t, err)

	s, err := NewServer(testConfig(), database)
	require.NoError(t, err)
	return s
}

func call(s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	s.Router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, s *Server, email string) string {
	t.Helper()

	w := call(s, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": dao.SeedPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestServer_Infra(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusOK, call(s, http.MethodGet, "/", "", nil).Code)

	w := call(s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestLegacy_Status(t *testing.T) {
	s := newTestServer(t)

	w := call(s, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), "POST /api/auth/login")
	assert.Contains(t, string(env.Data), config.BackendMock)
}

func TestLegacy_Products(t *testing.T) {
	s := newTestServer(t)

	w := call(s, http.MethodPost, "/api/products", "", map[string]interface{}{"name": "Tea"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, price and category are required", decodeEnvelope(t, w).Error)

	w = call(s, http.MethodPost, "/api/products", "", map[string]interface{}{
		"name": "Tea", "price": 2.2, "category": "tea",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = call(s, http.MethodGet, "/api/products?category=tea", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Tea", products[0].Name)
	assert.True(t, products[0].InStock)
}

func TestLegacy_OrdersComputeTotal(t *testing.T) {
	s := newTestServer(t)

	w := call(s, http.MethodPost, "/api/orders", "", map[string]interface{}{"userId": 3, "items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decodeEnvelope(t, w).Success)

	w = call(s, http.MethodPost, "/api/orders", "", map[string]interface{}{
		"userId": 3,
		"total":  1,
		"items": []map[string]interface{}{
			{"name": "Espresso", "price": 2.5, "quantity": 2},
			{"name": "Croissant", "price": 1.8, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID    uint            `json:"id"`
		Total decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &created))
	assert.Equal(t, "6.80", created.Total.StringFixed(2))

	w = call(s, http.MethodGet, "/api/orders?userId=3&status=pending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, created.ID, orders[0].ID)

	assert.Equal(t, http.StatusBadRequest, call(s, http.MethodGet, "/api/orders?status=lost", "", nil).Code)
}

func TestLegacy_Users(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		body      map[string]interface{}
		wantCode  int
		wantError string
	}{
		{
			name:      "missing password",
			body:      map[string]interface{}{"email": "a@b.com"},
			wantCode:  http.StatusBadRequest,
			wantError: "Email and password are required",
		},
		{
			name:      "short password",
			body:      map[string]interface{}{"email": "a@b.com", "password": "12345"},
			wantCode:  http.StatusBadRequest,
			wantError: "Password must be at least 6 characters long",
		},
		{
			name:      "duplicate",
			body:      map[string]interface{}{"email": "guest@example.com", "password": "123456"},
			wantCode:  http.StatusConflict,
			wantError: "User already exists",
		},
		{
			name:     "created",
			body:     map[string]interface{}{"email": "a@b.com", "password": "123456", "name": "Ana"},
			wantCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(s, http.MethodPost, "/api/users", "", tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.wantError, env.Error)
			assert.NotContains(t, w.Body.String(), `"password"`)
		})
	}

	w := call(s, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestLegacy_Login(t *testing.T) {
	s := newTestServer(t)

	w := call(s, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "guest@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(s, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "guest@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(s, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "guest@example.com", "password": dao.SeedPassword})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeEnvelope(t, w).Success)
}

func TestV1_HostScopedRoutes(t *testing.T) {
	s := newTestServer(t)
	hostToken := login(t, s, "host@hotel-azur.local")
	guestToken := login(t, s, "guest@example.com")

	assert.Equal(t, http.StatusUnauthorized, call(s, http.MethodGet, "/api/v1/hosts/1/orders", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, call(s, http.MethodGet, "/api/v1/hosts/1/orders", guestToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, call(s, http.MethodGet, "/api/v1/hosts/2/orders", hostToken, nil).Code)

	w := call(s, http.MethodGet, "/api/v1/hosts/1/orders", hostToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []service.EnrichedOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "Hotel Azur", o.HostName)
	}

	w = call(s, http.MethodGet, "/api/v1/hosts/1/orders?status=completed", hostToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "Spa access", orders[0].ServiceName)

	// Admin-only.
	assert.Equal(t, http.StatusForbidden, call(s, http.MethodDelete, "/api/v1/hosts/1", hostToken, nil).Code)
}

func TestV1_OrderStatus(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "host@hotel-azur.local")

	tests := []struct {
		name     string
		body     map[string]interface{}
		wantCode int
	}{
		{name: "unknown status", body: map[string]interface{}{"status": "shipped"}, wantCode: http.StatusBadRequest},
		{name: "stale version", body: map[string]interface{}{"status": "ready", "version": 9}, wantCode: http.StatusConflict},
		{name: "ready", body: map[string]interface{}{"status": "ready", "version": 1}, wantCode: http.StatusOK},
		{name: "back to pending", body: map[string]interface{}{"status": "pending"}, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(s, http.MethodPost, "/api/v1/orders/2/status", token, tt.body)
			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}

	assert.Equal(t, http.StatusNotFound, call(s, http.MethodPost, "/api/v1/orders/404/status", token, map[string]string{"status": "ready"}).Code)
}

func TestV1_SettingsNeedAReservationType(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "host@hotel-azur.local")

	w := call(s, http.MethodPut, "/api/v1/hosts/1/settings", token, map[string]interface{}{
		"reservationSettings": map[string]bool{"enableRoomReservations": false, "enableTableReservations": false},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(s, http.MethodGet, "/api/v1/hosts/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var host domain.Host
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &host))
	assert.True(t, host.Reservation.EnableRoomReservations)
}

func TestV1_ClientSummary(t *testing.T) {
	s := newTestServer(t)
	guestToken := login(t, s, "guest@example.com")

	w := call(s, http.MethodGet, "/api/v1/users/3/summary", guestToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary domain.ClientSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 40, summary.TotalLoyaltyPoints)

	assert.Equal(t, http.StatusForbidden, call(s, http.MethodGet, "/api/v1/users/1/summary", guestToken, nil).Code)
}

func TestGuest_BrowseAndOrder(t *testing.T) {
	s := newTestServer(t)

	w := call(s, http.MethodGet, "/client/1/"+dao.SeedRoomRefID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var front service.Storefront
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &front))
	assert.Equal(t, "Room 101", front.Location.Name)
	assert.Len(t, front.Services, 2)

	assert.Equal(t, http.StatusNotFound, call(s, http.MethodGet, "/client/2/"+dao.SeedRoomRefID, "", nil).Code)

	// The shuttle needs a signed-in guest.
	path := "/client/1/" + dao.SeedRoomRefID + "/service/2"
	assert.Equal(t, http.StatusUnauthorized, call(s, http.MethodPost, path, "", map[string]string{}).Code)

	w = call(s, http.MethodPost, path, login(t, s, "guest@example.com"), map[string]string{"notes": "flight AF123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order domain.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, domain.OrderPending, order.Status)

	w = call(s, http.MethodPost, "/client/1/"+dao.SeedTableRefID+"/menu/1", "", map[string]interface{}{"quantity": 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, "37.00", order.PrixTotal.Decimal.StringFixed(2))
}

func TestGuest_CheckoutAndInvoice(t *testing.T) {
	s := newTestServer(t)

	w := call(s, http.MethodGet, "/checkout/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stay service.EnrichedReservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stay))
	assert.Equal(t, 3, stay.Nights)

	var outcome service.CheckoutOutcome
	w = call(s, http.MethodPost, "/checkout/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.False(t, outcome.AlreadyDone)

	w = call(s, http.MethodPost, "/checkout/1", "", map[string]string{"notes": "again"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
	assert.True(t, outcome.AlreadyDone)

	w = call(s, http.MethodGet, "/invoice/order/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var inv service.Invoice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &inv))
	assert.Equal(t, "ORD-000001", inv.Number)

	assert.Equal(t, http.StatusNotFound, call(s, http.MethodGet, "/invoice/reservation/404", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, call(s, http.MethodGet, "/invoice/order/abc", "", nil).Code)
}

func TestLoyaltyDefaults(t *testing.T) {
	got, err := LoyaltyDefaults(&config.LoyaltyConfig{PointsPerUnit: "0.5", Rounding: "ceil"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoundCeil, got.Rounding)
	assert.Equal(t, "0.5", got.PointsPerUnit.String())

	_, err = LoyaltyDefaults(&config.LoyaltyConfig{Rounding: "bankers"})
	assert.Error(t, err)

	_, err = LoyaltyDefaults(&config.LoyaltyConfig{PointsPerUnit: "-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
