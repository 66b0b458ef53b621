package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	catalog *infraRepo.CatalogGormRepository
	slotsUC *ucBooking.GetSlots
}

func NewPublicHandler(
	catalog *infraRepo.CatalogGormRepository,
	slotsUC *ucBooking.GetSlots,
) *PublicHandler {
	return &PublicHandler{catalog: catalog, slotsUC: slotsUC}
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListActiveServices(c.Request.Context())
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("list_services", err))
		return
	}
	httpresp.List(c, services)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	barbers, err := h.catalog.ListActiveBarbers(c.Request.Context())
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("list_barbers", err))
		return
	}
	httpresp.List(c, barbers)
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

// Slots answers ?date=YYYY-MM-DD plus either service_id or duration
// (minutes).
func (h *PublicHandler) Slots(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date is required (YYYY-MM-DD).")
		return
	}

	var (
		slots []domain.Slot
		err   error
	)

	switch {
	case c.Query("service_id") != "":
		serviceID, perr := strconv.ParseUint(c.Query("service_id"), 10, 64)
		if perr != nil {
			httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
			return
		}
		slots, err = h.slotsUC.ExecuteForService(c.Request.Context(), barberID, date, uint(serviceID))

	case c.Query("duration") != "":
		duration, perr := strconv.Atoi(c.Query("duration"))
		if perr != nil {
			httperr.Respond(c, httperr.ErrBusiness("invalid_duration"))
			return
		}
		slots, err = h.slotsUC.Execute(c.Request.Context(), domain.AvailabilityInput{
			BarberID:        barberID,
			Date:            date,
			DurationMinutes: duration,
		})

	default:
		httperr.BadRequest(c, "missing_service", "service_id or duration is required.")
		return
	}

	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"barber_id": barberID,
		"date":      date,
		"slots":     slots,
	})
}
