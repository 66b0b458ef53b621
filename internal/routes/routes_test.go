package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const monday = "2026-10-19"

type api struct {
	t   *testing.T
	r   *gin.Engine
	fx  dbtest.Fixture
	cfg *config.Config
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := dbtest.New(t)
	fx := dbtest.Seed(t, gdb)

	cfg := &config.Config{JWTSecret: "test-secret", Timezone: "UTC", TokenTTLHours: 1}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:     gdb,
		Config: cfg,
		Log:    zerolog.New(io.Discard),
		Clock:  func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) },
	})

	return &api{t: t, r: r, fx: fx, cfg: cfg}
}

func (a *api) token(u models.User) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(a.cfg.JWTSecret))
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type slotsBody struct {
	Slots []struct {
		Time      string `json:"time"`
		Available bool   `json:"available"`
	} `json:"slots"`
}

func (a *api) available(hm string) bool {
	w := a.do(http.MethodGet,
		fmt.Sprintf("/api/barbers/%d/slots?date=%s&service_id=%d", a.fx.Barber.ID, monday, a.fx.Haircut.ID), "", nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	for _, s := range decode[slotsBody](a.t, w).Slots {
		if s.Time == hm {
			return s.Available
		}
	}
	return false
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	a := newAPI(t)
	customer := a.token(a.fx.Customer)
	barber := a.token(a.fx.BarberUser)

	require.True(t, a.available("10:00"))

	req := gin.H{"barber_id": a.fx.Barber.ID, "service_id": a.fx.Haircut.ID, "date": monday, "time": "10:00"}

	w := a.do(http.MethodPost, "/api/bookings", "", req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/bookings", barber, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/bookings", customer, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Booking](t, w)
	assert.Equal(t, "confirmed", created.Status)
	assert.Equal(t, 40.0, created.TotalPrice)

	assert.False(t, a.available("10:00"))

	w = a.do(http.MethodPost, "/api/bookings", customer, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_already_booked", decode[map[string]string](t, w)["error_code"])

	w = a.do(http.MethodGet, "/api/barber/bookings?date="+monday, barber, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	agenda := decode[struct {
		Total int `json:"total"`
	}](t, w)
	assert.Equal(t, 1, agenda.Total)

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/me/bookings/%d/cancel", created.ID), customer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "cancelled", decode[models.Booking](t, w).Status)

	assert.True(t, a.available("10:00"))
}

func TestBarberCannotCompleteForeignBooking(t *testing.T) {
	a := newAPI(t)
	customer := a.token(a.fx.Customer)

	w := a.do(http.MethodPost, "/api/bookings", customer,
		gin.H{"barber_id": a.fx.Barber.ID, "service_id": a.fx.Beard.ID, "date": monday, "time": "11:00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[models.Booking](t, w).ID

	// A barber login without a barber profile owns no bookings.
	stranger := models.User{ID: 999, Role: models.RoleBarber}
	w = a.do(http.MethodPatch, fmt.Sprintf("/api/barber/bookings/%d/status", id), a.token(stranger),
		gin.H{"status": "completed"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/barber/bookings/%d/status", id), a.token(a.fx.BarberUser),
		gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode[models.Booking](t, w).Status)

	w = a.do(http.MethodPatch, fmt.Sprintf("/api/barber/bookings/%d/status", id), a.token(a.fx.BarberUser),
		gin.H{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeOffClosesTheDay(t *testing.T) {
	a := newAPI(t)
	barber := a.token(a.fx.BarberUser)

	w := a.do(http.MethodPost, "/api/barber/time-off", barber,
		gin.H{"start_date": monday, "end_date": monday, "reason": "course"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	off := decode[models.TimeOff](t, w)

	w = a.do(http.MethodGet,
		fmt.Sprintf("/api/barbers/%d/slots?date=%s&duration=30", a.fx.Barber.ID, monday), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[slotsBody](t, w).Slots)

	w = a.do(http.MethodPost, "/api/bookings", a.token(a.fx.Customer),
		gin.H{"barber_id": a.fx.Barber.ID, "service_id": a.fx.Haircut.ID, "date": monday, "time": "10:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "barber_time_off", decode[map[string]string](t, w)["error_code"])

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/barber/time-off/%d", off.ID), barber, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, a.available("10:00"))
}

func TestPublicCatalogAndHealth(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[struct {
		Total int `json:"total"`
	}](t, w).Total)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/barbers/%d/slots?date=%s", a.fx.Barber.ID, monday), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/barbers/%d/slots?date=%s&duration=30", 999, monday), "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "barber_not_found", decode[map[string]string](t, w)["error_code"])
}

func TestRequestIDEchoed(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/health", "", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "3f0c6a58-8f43-4d36-9a6f-1b0c8f0b9a11")
	w = httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	assert.Equal(t, "3f0c6a58-8f43-4d36-9a6f-1b0c8f0b9a11", w.Header().Get("X-Request-ID"))
}
