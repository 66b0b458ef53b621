package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

type TimeOffHandler struct {
	repo  *infraRepo.ScheduleGormRepository
	cache ucBooking.SlotCache // may be nil
	audit *audit.Dispatcher
}

func NewTimeOffHandler(
	repo *infraRepo.ScheduleGormRepository,
	cache ucBooking.SlotCache,
	audit *audit.Dispatcher,
) *TimeOffHandler {
	return &TimeOffHandler{repo: repo, cache: cache, audit: audit}
}

// invalidate drops cached slot lists for every date of the period.
func (h *TimeOffHandler) invalidate(ctx context.Context, t *models.TimeOff) {
	if h.cache == nil {
		return
	}
	from, err1 := wallclock.ParseDate(t.StartDate)
	to, err2 := wallclock.ParseDate(t.EndDate)
	if err1 != nil || err2 != nil {
		return
	}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		h.cache.Invalidate(ctx, t.BarberID, d.Format(wallclock.DateLayout))
	}
}

type CreateTimeOffRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"max=255"`
}

// List returns periods that have not ended before ?from (all when empty).
func (h *TimeOffHandler) List(c *gin.Context) {
	from := c.Query("from")
	if from != "" {
		if _, err := wallclock.ParseDate(from); err != nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_date"))
			return
		}
	}

	rows, err := h.repo.ListTimeOff(c.Request.Context(), c.GetUint(middleware.ContextBarberID), from)
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("list_time_off", err))
		return
	}
	httpresp.List(c, rows)
}

func (h *TimeOffHandler) Create(c *gin.Context) {
	var req CreateTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	_, errStart := wallclock.ParseDate(req.StartDate)
	_, errEnd := wallclock.ParseDate(req.EndDate)
	if errStart != nil || errEnd != nil || req.EndDate < req.StartDate {
		httperr.Respond(c, httperr.ErrBusiness("invalid_date"))
		return
	}

	t := &models.TimeOff{
		BarberID:  c.GetUint(middleware.ContextBarberID),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}
	if err := h.repo.CreateTimeOff(c.Request.Context(), t); err != nil {
		httperr.Respond(c, httperr.Unavailable("create_time_off", err))
		return
	}
	h.invalidate(c.Request.Context(), t)

	actor := middleware.Actor(c)
	h.audit.Dispatch(audit.Event{
		UserID:    &actor.UserID,
		Action:    "time_off_created",
		Entity:    "time_off",
		EntityID:  &t.ID,
		Metadata:  req,
		RequestID: audit.RequestID(c.Request.Context()),
	})

	httpresp.Created(c, t)
}

// Delete lets a barber remove their own periods; admins may remove any.
func (h *TimeOffHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid time off id.")
		return
	}

	ctx := c.Request.Context()
	actor := middleware.Actor(c)

	t, err := h.repo.GetTimeOff(ctx, id)
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("get_time_off", err))
		return
	}
	if !actor.IsAdmin() && (!actor.IsBarber() || t.BarberID != actor.BarberID) {
		httperr.Respond(c, httperr.ErrForbidden("not_time_off_owner"))
		return
	}

	if err := h.repo.DeleteTimeOff(ctx, id); err != nil {
		httperr.Respond(c, httperr.Unavailable("delete_time_off", err))
		return
	}
	h.invalidate(ctx, t)

	h.audit.Dispatch(audit.Event{
		UserID:    &actor.UserID,
		Action:    "time_off_deleted",
		Entity:    "time_off",
		EntityID:  &id,
		RequestID: audit.RequestID(ctx),
	})

	c.Status(http.StatusNoContent)
}
