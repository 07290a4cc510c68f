// Package window computes the billing time window for cost queries.
package window

import "time"

// Window is a half-open [Start, End) range of UTC calendar dates.
type Window struct {
	Start time.Time
	End   time.Time
}

// Compute returns the previous full UTC day relative to now: End is now
// truncated to UTC midnight, Start is one day earlier. Callers must
// recompute this for every collection so the window always tracks
// "yesterday" at query time.
func Compute(now time.Time) Window {
	utc := now.UTC()
	end := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return Window{
		Start: end.AddDate(0, 0, -1),
		End:   end,
	}
}

// StartDate returns Start formatted as expected by the Cost Explorer API.
func (w Window) StartDate() string {
	return w.Start.Format("2006-01-02")
}

// EndDate returns End formatted as expected by the Cost Explorer API.
func (w Window) EndDate() string {
	return w.End.Format("2006-01-02")
}
