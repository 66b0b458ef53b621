package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC      *ucBooking.CreateBooking
	cancelUC      *ucBooking.CancelBooking
	transitionUC  *ucBooking.TransitionBooking
	overrideUC    *ucBooking.OverrideBookingStatus
	listByDateUC  *ucBooking.ListBookingsByDate
	listByMonthUC *ucBooking.ListBookingsByMonth
	listMineUC    *ucBooking.ListBookingsForUser
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	transitionUC *ucBooking.TransitionBooking,
	overrideUC *ucBooking.OverrideBookingStatus,
	listByDateUC *ucBooking.ListBookingsByDate,
	listByMonthUC *ucBooking.ListBookingsByMonth,
	listMineUC *ucBooking.ListBookingsForUser,
) *BookingHandler {
	return &BookingHandler{
		createUC:      createUC,
		cancelUC:      cancelUC,
		transitionUC:  transitionUC,
		overrideUC:    overrideUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		listMineUC:    listMineUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Time      string `json:"time" binding:"required"` // HH:MM
	Notes     string `json:"notes" binding:"max=255"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=255"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		UserID:    c.GetUint(middleware.ContextUserID),
		BarberID:  req.BarberID,
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	history, err := h.listMineUC.Execute(c.Request.Context(), c.GetUint(middleware.ContextUserID))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	switch c.Query("scope") {
	case "upcoming":
		httpresp.List(c, history.Upcoming)
	case "past":
		httpresp.List(c, history.Past)
	case "":
		httpresp.OK(c, history)
	default:
		httperr.BadRequest(c, "invalid_scope", "scope must be upcoming or past.")
	}
}

func (h *BookingHandler) CancelMine(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// BARBER AGENDA
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), c.GetUint(middleware.ContextBarberID), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "year and month are required.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), c.GetUint(middleware.ContextBarberID), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, to, ok := h.bindStatus(c)
	if !ok {
		return
	}

	b, err := h.transitionUC.Execute(c.Request.Context(), middleware.Actor(c), id, to.status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) OverrideStatus(c *gin.Context) {
	id, to, ok := h.bindStatus(c)
	if !ok {
		return
	}

	b, err := h.overrideUC.Execute(c.Request.Context(), middleware.Actor(c), id, to.status, to.reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}

type statusChange struct {
	status domain.Status
	reason string
}

func (h *BookingHandler) bindStatus(c *gin.Context) (uint, statusChange, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return 0, statusChange{}, false
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return 0, statusChange{}, false
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return 0, statusChange{}, false
	}

	return id, statusChange{status: to, reason: req.Reason}, true
}
