package reconciliation

import "time"

const dayLayout = "2006-01-02"
const monthLayout = "2006-01"

// Window is the [Start, End) date range scoping "month" aggregations.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ResolveWindow derives the reporting window from the raw query inputs.
// Explicit dates win over month; a single-sided date yields a one-day
// window anchored on it; month must be YYYY-MM; with no valid input the
// window defaults to the current calendar month. Start inclusive, end
// exclusive throughout.
func ResolveWindow(month, dateFrom, dateTo string, now time.Time) Window {
	from, errFrom := time.Parse(dayLayout, dateFrom)
	to, errTo := time.Parse(dayLayout, dateTo)

	switch {
	case errFrom == nil && errTo == nil:
		return Window{Start: from, End: to.AddDate(0, 0, 1)}
	case errFrom == nil:
		return Window{Start: from, End: from.AddDate(0, 0, 1)}
	case errTo == nil:
		// dateTo stays inclusive even without a dateFrom, same as the
		// two-sided case; the inferred bound is the exclusive end one
		// day later, not a start one day earlier.
		return Window{Start: to, End: to.AddDate(0, 0, 1)}
	}

	if m, err := time.Parse(monthLayout, month); err == nil {
		return Window{Start: m, End: m.AddDate(0, 1, 0)}
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}
