package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_created_total",
			Help:      "Count of bookings committed.",
		},
	)

	bookingConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_conflict_total",
			Help:      "Count of booking attempts rejected because the slot was taken.",
		},
	)

	statusChange = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "booking_status_change_total",
			Help:      "Count of booking status changes by target status and path.",
		},
		[]string{"status", "path"},
	)

	slotQuery = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "salon",
			Name:      "slot_query_duration_seconds",
			Help:      "Time spent producing a slot list, cache hits included.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	slotCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon",
			Name:      "slot_cache_total",
			Help:      "Slot cache lookups by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflict, statusChange, slotQuery, slotCache)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingConflict() {
	bookingConflict.Inc()
}

// IncStatusChange records a transition; path is "cancel", "transition" or "override".
func IncStatusChange(status, path string) {
	statusChange.WithLabelValues(status, path).Inc()
}

func ObserveSlotQuery(seconds float64) {
	slotQuery.Observe(seconds)
}

func IncSlotCache(hit bool) {
	if hit {
		slotCache.WithLabelValues("hit").Inc()
		return
	}
	slotCache.WithLabelValues("miss").Inc()
}
