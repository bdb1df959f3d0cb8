package progress

import (
	"strings"
	"time"
)

type TimeRange string

const (
	Range1W  TimeRange = "1W"
	Range1M  TimeRange = "1M"
	Range3M  TimeRange = "3M"
	Range6M  TimeRange = "6M"
	Range1Y  TimeRange = "1Y"
	RangeAll TimeRange = "ALL"
)

// ParseTimeRange is case-insensitive. Unknown or empty tokens mean ALL.
func ParseTimeRange(s string) TimeRange {
	switch tr := TimeRange(strings.ToUpper(strings.TrimSpace(s))); tr {
	case Range1W, Range1M, Range3M, Range6M, Range1Y:
		return tr
	default:
		return RangeAll
	}
}

// Since returns the lower bound of the range relative to now, or nil for ALL.
func (tr TimeRange) Since(now time.Time) *time.Time {
	var since time.Time
	switch tr {
	case Range1W:
		since = now.AddDate(0, 0, -7)
	case Range1M:
		since = now.AddDate(0, -1, 0)
	case Range3M:
		since = now.AddDate(0, -3, 0)
	case Range6M:
		since = now.AddDate(0, -6, 0)
	case Range1Y:
		since = now.AddDate(-1, 0, 0)
	default:
		return nil
	}
	return &since
}
