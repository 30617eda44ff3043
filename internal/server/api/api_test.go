package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
	"github.com/dmitrijs2005/gophgarage/internal/server/auth"
	"github.com/dmitrijs2005/gophgarage/internal/server/config"
	"github.com/dmitrijs2005/gophgarage/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/gophgarage/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

type testContext struct {
	router *gin.Engine
}

func setup(t *testing.T) *testContext {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		S3Bucket:              "garage",
		S3Region:              "us-east-1",
		S3BaseEndpoint:        "http://127.0.0.1:9000",
	}
	store := memstore.New()
	h := NewHandler(
		services.NewUserService(store, cfg),
		services.NewGarageService(store),
		services.NewImageService(store, cfg),
		[]byte(cfg.SecretKey),
		logging.NewNop(),
	)
	return &testContext{router: h.NewRouter("/api")}
}

func (tc *testContext) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	return w
}

func (tc *testContext) signup(t *testing.T, name string) models.AuthResponse {
	t.Helper()
	w := tc.do(t, http.MethodPost, "/api/auth/register",
		models.Credentials{Username: name, Email: name + "@example.com", Password: "pw"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.AuthResponse](t, w)
}

func (tc *testContext) addVehicle(t *testing.T, token string, brand string) models.Vehicle {
	t.Helper()
	w := tc.do(t, http.MethodPost, "/api/vehicles",
		models.Vehicle{Brand: brand, Model: "M", Year: 2015, Plate: brand + "1"}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Vehicle](t, w)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	tc := setup(t)
	w := tc.do(t, http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	tc := setup(t)

	reg := tc.signup(t, "alice")
	assert.NotEmpty(t, reg.Token)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, "alice", reg.Username)

	w := tc.do(t, http.MethodPost, "/api/auth/register",
		models.Credentials{Username: "alice", Email: "other@example.com", Password: "pw"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, CodeConflict, decode[models.ErrorResponse](t, w).Code)

	w = tc.do(t, http.MethodPost, "/api/auth/register", models.Credentials{Username: "bob"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = tc.do(t, http.MethodPost, "/api/auth/login", models.Credentials{Username: "alice", Password: "pw"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reg.ID, decode[models.AuthResponse](t, w).ID)

	w = tc.do(t, http.MethodPost, "/api/auth/login", models.Credentials{Username: "alice", Password: "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	tc := setup(t)

	w := tc.do(t, http.MethodGet, "/api/vehicles", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/vehicles", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	tc.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	w = tc.do(t, http.MethodGet, "/api/vehicles", nil, "garbage")
	assert.Equal(t, http.StatusForbidden, w.Code)

	expired, err := auth.GenerateToken("u1", "alice", []byte(testSecret), -time.Minute)
	require.NoError(t, err)
	w = tc.do(t, http.MethodGet, "/api/vehicles", nil, expired)
	assert.Equal(t, http.StatusForbidden, w.Code)

	valid, err := auth.GenerateToken("u1", "alice", []byte(testSecret), time.Minute)
	require.NoError(t, err)
	w = tc.do(t, http.MethodGet, "/api/vehicles", nil, valid)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestVehicles_CRUDAndSearch(t *testing.T) {
	tc := setup(t)
	alice := tc.signup(t, "alice")

	v := tc.addVehicle(t, alice.Token, "Toyota")
	assert.Equal(t, alice.ID, v.UserID)
	tc.addVehicle(t, alice.Token, "Honda")

	w := tc.do(t, http.MethodGet, "/api/vehicles?q=toy", nil, alice.Token)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Vehicle](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, v.ID, list[0].ID)

	v.Plate = "CHANGED"
	w = tc.do(t, http.MethodPut, "/api/vehicles/"+v.ID.String(), v, alice.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CHANGED", decode[models.Vehicle](t, w).Plate)

	w = tc.do(t, http.MethodPost, "/api/vehicles", models.Vehicle{Brand: "x"}, alice.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = tc.do(t, http.MethodDelete, "/api/vehicles/"+v.ID.String(), nil, alice.Token)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = tc.do(t, http.MethodDelete, "/api/vehicles/"+v.ID.String(), nil, alice.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOtherUsersRecordsAreHidden(t *testing.T) {
	tc := setup(t)
	alice, bob := tc.signup(t, "alice"), tc.signup(t, "bob")
	v := tc.addVehicle(t, alice.Token, "Toyota")

	w := tc.do(t, http.MethodGet, "/api/vehicles", nil, bob.Token)
	assert.JSONEq(t, "[]", w.Body.String())

	w = tc.do(t, http.MethodPut, "/api/vehicles/"+v.ID.String(), v, bob.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = tc.do(t, http.MethodDelete, "/api/vehicles/"+v.ID.String(), nil, bob.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = tc.do(t, http.MethodPost, "/api/maintenances",
		models.Maintenance{VehicleID: v.ID, Type: models.OilChange, Date: time.Now()}, bob.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidVehicle, decode[models.ErrorResponse](t, w).Code)

	w = tc.do(t, http.MethodPost, "/api/reminders",
		models.Reminder{VehicleID: v.ID, MaintenanceType: "tires", DueDate: time.Now(), IsActive: true}, bob.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = tc.do(t, http.MethodPost, "/api/vehicles/"+v.ID.String()+"/image", nil, bob.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMaintenancesAndReminders_Ordering(t *testing.T) {
	tc := setup(t)
	alice := tc.signup(t, "alice")
	v := tc.addVehicle(t, alice.Token, "Toyota")
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		d := base.AddDate(0, i, 0)
		w := tc.do(t, http.MethodPost, "/api/maintenances",
			models.Maintenance{VehicleID: v.ID, Type: "tires", Date: d, Mileage: 40000 + i}, alice.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = tc.do(t, http.MethodPost, "/api/reminders",
			models.Reminder{VehicleID: v.ID, MaintenanceType: "tires", DueDate: d, IsActive: true}, alice.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := tc.do(t, http.MethodGet, "/api/maintenances?vehicleId="+v.ID.String(), nil, alice.Token)
	ms := decode[[]models.Maintenance](t, w)
	require.Len(t, ms, 3)
	assert.True(t, ms[0].Date.Equal(base.AddDate(0, 2, 0)))

	w = tc.do(t, http.MethodGet, "/api/reminders?vehicleId="+v.ID.String(), nil, alice.Token)
	rs := decode[[]models.Reminder](t, w)
	require.Len(t, rs, 3)
	assert.True(t, rs[0].DueDate.Equal(base))

	r := rs[0]
	r.IsActive = false
	w = tc.do(t, http.MethodPut, "/api/reminders/"+r.ID.String(), r, alice.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.Reminder](t, w).IsActive)

	w = tc.do(t, http.MethodDelete, "/api/maintenances/"+ms[0].ID.String(), nil, alice.Token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteVehicleCascades(t *testing.T) {
	tc := setup(t)
	alice := tc.signup(t, "alice")
	v := tc.addVehicle(t, alice.Token, "Toyota")

	w := tc.do(t, http.MethodPost, "/api/maintenances",
		models.Maintenance{VehicleID: v.ID, Type: models.OilChange, Date: time.Now()}, alice.Token)
	require.Equal(t, http.StatusCreated, w.Code)
	w = tc.do(t, http.MethodPost, "/api/reminders",
		models.Reminder{VehicleID: v.ID, MaintenanceType: models.OilChange, DueDate: time.Now(), IsActive: true}, alice.Token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = tc.do(t, http.MethodDelete, "/api/vehicles/"+v.ID.String(), nil, alice.Token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = tc.do(t, http.MethodGet, "/api/maintenances", nil, alice.Token)
	assert.JSONEq(t, "[]", w.Body.String())
	w = tc.do(t, http.MethodGet, "/api/reminders", nil, alice.Token)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestSyncEchoesCollection(t *testing.T) {
	tc := setup(t)
	alice := tc.signup(t, "alice")
	v := tc.addVehicle(t, alice.Token, "Toyota")

	w := tc.do(t, http.MethodPost, "/api/sync/vehicles", []models.Vehicle{{Brand: "ignored"}}, alice.Token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string][]models.Vehicle](t, w)
	require.Len(t, body["vehicles"], 1)
	assert.Equal(t, v.ID, body["vehicles"][0].ID)

	w = tc.do(t, http.MethodPost, "/api/sync/reminders", nil, alice.Token)
	assert.JSONEq(t, `{"reminders": []}`, w.Body.String())

	w = tc.do(t, http.MethodPost, "/api/sync/garages", nil, alice.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterDeviceAndImages(t *testing.T) {
	tc := setup(t)
	alice := tc.signup(t, "alice")
	v := tc.addVehicle(t, alice.Token, "Toyota")

	w := tc.do(t, http.MethodPost, "/api/notifications/register-device", models.DeviceRegistration{Token: "dev-1"}, alice.Token)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = tc.do(t, http.MethodPost, "/api/notifications/register-device", models.DeviceRegistration{}, alice.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = tc.do(t, http.MethodGet, "/api/vehicles/"+v.ID.String()+"/image", nil, alice.Token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBadJSON(t *testing.T) {
	tc := setup(t)
	alice := tc.signup(t, "alice")

	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+alice.Token)
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeBadRequest, decode[models.ErrorResponse](t, w).Code)
}
