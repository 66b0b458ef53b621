package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type invalidations struct {
	mu    sync.Mutex
	dates []string
}

func (*invalidations) Get(context.Context, uint, string, int) ([]domain.Slot, int64, bool) {
	return nil, 0, false
}
func (*invalidations) Set(context.Context, uint, string, int, int64, []domain.Slot) {}
func (i *invalidations) Invalidate(_ context.Context, barberID uint, date string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.dates = append(i.dates, fmt.Sprintf("%d|%s", barberID, date))
}

func TestTimeOffInvalidatesEveryDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := dbtest.New(t)
	fx := dbtest.Seed(t, gdb)
	cache := &invalidations{}

	h := NewTimeOffHandler(infraRepo.NewScheduleGormRepository(gdb), cache, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, fx.BarberUser.ID)
		c.Set(middleware.ContextUserRole, models.RoleBarber)
		c.Set(middleware.ContextBarberID, fx.Barber.ID)
	})
	r.POST("/time-off", h.Create)
	r.DELETE("/time-off/:id", h.Delete)

	raw, _ := json.Marshal(gin.H{"start_date": "2026-10-30", "end_date": "2026-11-02"})
	req := httptest.NewRequest(http.MethodPost, "/time-off", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var off models.TimeOff
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &off))

	want := []string{}
	for _, d := range []string{"2026-10-30", "2026-10-31", "2026-11-01", "2026-11-02"} {
		want = append(want, fmt.Sprintf("%d|%s", fx.Barber.ID, d))
	}
	assert.Equal(t, want, cache.dates)

	cache.dates = nil
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/time-off/%d", off.ID), nil))
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.Equal(t, want, cache.dates)
}
