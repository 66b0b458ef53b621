package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	k, ok := KindOf(ErrConflict("slot_already_booked"))
	require.True(t, ok)
	assert.Equal(t, KindConflict, k)

	wrapped := fmt.Errorf("create booking: %w", ErrNotFound("booking_not_found"))
	k, ok = KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, k)
	assert.True(t, IsBusiness(wrapped, "booking_not_found"))

	_, ok = KindOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestUnavailableKeepsBusinessErrors(t *testing.T) {
	conflict := ErrConflict("slot_already_booked")
	assert.Equal(t, conflict, Unavailable("insert booking", conflict))
	assert.Nil(t, Unavailable("noop", nil))

	cause := errors.New("connection refused")
	err := Unavailable("get working hours", cause)
	k, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindUnavailable, k)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "get working hours")
}

func TestStoreClassifiers(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))

	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated)))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))

	assert.False(t, IsUniqueViolation(errors.New("23505")))

	assert.True(t, IsRecordNotFound(gorm.ErrRecordNotFound))
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", ErrBusiness("service_not_found"), http.StatusBadRequest, "service_not_found"},
		{"conflict", ErrConflict("slot_already_booked"), http.StatusConflict, "slot_already_booked"},
		{"not found", ErrNotFound("booking_not_found"), http.StatusNotFound, "booking_not_found"},
		{"forbidden", ErrForbidden("not_booking_owner"), http.StatusForbidden, "not_booking_owner"},
		{"unavailable", Unavailable("list bookings", errors.New("timeout")), http.StatusServiceUnavailable, "store_unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}
