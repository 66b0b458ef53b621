package booking

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/wallclock"
)

// WorkingWindow converts a working-hours row into a Window. ok is false when
// the barber does not work that day: no row, flagged unavailable, or blank
// times.
func WorkingWindow(wh *models.WorkingHours) (w Window, ok bool, err error) {
	if wh == nil || !wh.IsAvailable || wh.StartTime == "" || wh.EndTime == "" {
		return Window{}, false, nil
	}

	start, err := wallclock.ParseMinutes(wh.StartTime)
	if err != nil {
		return Window{}, false, err
	}
	end, err := wallclock.ParseMinutes(wh.EndTime)
	if err != nil {
		return Window{}, false, err
	}

	return Window{Start: start, End: end}, true, nil
}

// Fits reports whether [start, start+duration] lies inside the window. The
// booking may end exactly at closing time.
func (w Window) Fits(start, durationMinutes int) bool {
	return start >= w.Start && start+durationMinutes <= w.End
}

// AnyCovers reports whether one of the time-off rows contains date.
func AnyCovers(timeOff []models.TimeOff, date string) bool {
	for _, t := range timeOff {
		if t.Covers(date) {
			return true
		}
	}
	return false
}
