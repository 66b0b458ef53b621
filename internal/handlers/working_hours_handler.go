package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

type WorkingHoursHandler struct {
	repo *infraRepo.ScheduleGormRepository
}

func NewWorkingHoursHandler(repo *infraRepo.ScheduleGormRepository) *WorkingHoursHandler {
	return &WorkingHoursHandler{repo: repo}
}

type WorkingDayConfig struct {
	DayOfWeek   *int   `json:"day_of_week" binding:"required,min=0,max=6"`
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.repo.ListWorkingHours(c.Request.Context(), c.GetUint(middleware.ContextBarberID))
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("list_working_hours", err))
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the weekly schedule. Days left out are closed.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	days := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if d.IsAvailable && !validWindow(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "invalid_working_hours", "start_time must be before end_time (HH:MM).")
			return
		}
		days = append(days, models.WorkingHours{
			DayOfWeek:   *d.DayOfWeek,
			IsAvailable: d.IsAvailable,
			StartTime:   d.StartTime,
			EndTime:     d.EndTime,
		})
	}

	if err := h.repo.ReplaceWorkingHours(c.Request.Context(), c.GetUint(middleware.ContextBarberID), days); err != nil {
		httperr.Respond(c, httperr.Unavailable("replace_working_hours", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validWindow(start, end string) bool {
	s, err := wallclock.ParseMinutes(start)
	if err != nil {
		return false
	}
	e, err := wallclock.ParseMinutes(end)
	if err != nil {
		return false
	}
	return s < e
}
