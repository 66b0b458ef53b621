package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/wallclock"

// SlotStepMinutes is the fixed spacing of offered start times, independent of
// the service duration.
const SlotStepMinutes = 15

type AvailabilityInput struct {
	BarberID        uint
	Date            string
	DurationMinutes int
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// BookedInterval is an active booking as seen by the slot generator.
type BookedInterval struct {
	BookingTime     string
	DurationMinutes int
}

// Window is a working window in minutes since midnight.
type Window struct {
	Start int
	End   int
}

// Overlaps is the half-open interval test: [aStart, aEnd) and [bStart, bEnd)
// conflict unless one ends at or before the other starts.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

type span struct{ start, end int }

// GenerateSlots emits every 15-minute start in w whose [start, start+duration)
// fits before w.End, marking those that intersect a booked interval as
// unavailable. The result is never nil.
func GenerateSlots(w Window, durationMinutes int, booked []BookedInterval) ([]Slot, error) {
	slots := []Slot{}
	if durationMinutes <= 0 {
		return slots, nil
	}

	busy := make([]span, 0, len(booked))
	for _, b := range booked {
		start, err := wallclock.ParseMinutes(b.BookingTime)
		if err != nil {
			return nil, err
		}
		busy = append(busy, span{start: start, end: start + b.DurationMinutes})
	}

	for cur := w.Start; cur+durationMinutes <= w.End; cur += SlotStepMinutes {
		end := cur + durationMinutes

		available := true
		for _, b := range busy {
			if Overlaps(cur, end, b.start, b.end) {
				available = false
				break
			}
		}

		slots = append(slots, Slot{
			Time:      wallclock.FormatMinutes(cur),
			Available: available,
		})
	}

	return slots, nil
}
