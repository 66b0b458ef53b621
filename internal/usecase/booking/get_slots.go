package booking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

// SlotCache stores computed slot lists. Implementations swallow their own
// failures; a miss is always safe.
type SlotCache interface {
	Get(ctx context.Context, barberID uint, date string, duration int) ([]domain.Slot, int64, bool)
	Set(ctx context.Context, barberID uint, date string, duration int, version int64, slots []domain.Slot)
	Invalidate(ctx context.Context, barberID uint, date string)
}

type nopCache struct{}

func (nopCache) Get(context.Context, uint, string, int) ([]domain.Slot, int64, bool) {
	return nil, 0, false
}
func (nopCache) Set(context.Context, uint, string, int, int64, []domain.Slot) {}
func (nopCache) Invalidate(context.Context, uint, string)                    {}

func orNop(c SlotCache) SlotCache {
	if c == nil {
		return nopCache{}
	}
	return c
}

type GetSlots struct {
	repo  domain.Repository
	cache SlotCache
}

func NewGetSlots(repo domain.Repository, cache SlotCache) *GetSlots {
	return &GetSlots{repo: repo, cache: orNop(cache)}
}

// ExecuteForService resolves the duration from the service catalog.
func (uc *GetSlots) ExecuteForService(
	ctx context.Context,
	barberID uint,
	date string,
	serviceID uint,
) ([]domain.Slot, error) {

	svc, err := uc.repo.GetActiveService(ctx, serviceID)
	if err != nil {
		return nil, httperr.Unavailable("get_active_service", err)
	}
	if svc == nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	return uc.Execute(ctx, domain.AvailabilityInput{
		BarberID:        barberID,
		Date:            date,
		DurationMinutes: svc.DurationMinutes,
	})
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (_ []domain.Slot, err error) {

	ctx, span := startSpan(ctx, "booking.GetSlots", in.BarberID, in.Date)
	defer func() { endSpan(span, err) }()

	started := time.Now()
	defer func() { metrics.ObserveSlotQuery(time.Since(started).Seconds()) }()

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	weekday, err := wallclock.Weekday(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if in.DurationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	cached, version, hit := uc.cache.Get(ctx, in.BarberID, in.Date, in.DurationMinutes)
	metrics.IncSlotCache(hit)
	span.SetAttributes(attribute.Bool("slot_cache.hit", hit))
	if hit {
		return cached, nil
	}

	// --------------------------------------------------
	// Independent reads
	// --------------------------------------------------
	var (
		barber  *models.Barber
		wh      *models.WorkingHours
		timeOff []models.TimeOff
		booked  []domain.BookedInterval
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := uc.repo.GetBarber(gctx, in.BarberID)
		barber = b
		return httperr.Unavailable("get_barber", err)
	})
	g.Go(func() error {
		w, err := uc.repo.GetWorkingHours(gctx, in.BarberID, weekday)
		wh = w
		return httperr.Unavailable("get_working_hours", err)
	})
	g.Go(func() error {
		off, err := uc.repo.ListOverlappingTimeOff(gctx, in.BarberID, in.Date)
		timeOff = off
		return httperr.Unavailable("list_time_off", err)
	})
	g.Go(func() error {
		iv, err := uc.repo.ListActiveIntervals(gctx, in.BarberID, in.Date)
		booked = iv
		return httperr.Unavailable("list_active_intervals", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if barber == nil {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	// --------------------------------------------------
	// Compute
	// --------------------------------------------------
	slots := []domain.Slot{}

	window, open, err := domain.WorkingWindow(wh)
	if err != nil {
		return nil, httperr.Unavailable("get_working_hours", err)
	}

	if open && !domain.AnyCovers(timeOff, in.Date) {
		slots, err = domain.GenerateSlots(window, in.DurationMinutes, booked)
		if err != nil {
			return nil, httperr.Unavailable("list_active_intervals", err)
		}
	}

	uc.cache.Set(ctx, in.BarberID, in.Date, in.DurationMinutes, version, slots)
	return slots, nil
}
