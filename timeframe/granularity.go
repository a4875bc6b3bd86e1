package timeframe

import "time"

// Granularity identifies the temporal resolution of a frame, using
// ISO 8601 duration names.
type Granularity string

// Supported granularities, from coarsest to finest.
const (
	P1Y   Granularity = "P1Y"   // 1 year
	P1M   Granularity = "P1M"   // 1 month
	P7D   Granularity = "P7D"   // 7 days
	P1D   Granularity = "P1D"   // 1 day
	PT1H  Granularity = "PT1H"  // 1 hour
	PT15M Granularity = "PT15M" // 15 minutes
	PT5M  Granularity = "PT5M"  // 5 minutes
	PT1M  Granularity = "PT1M"  // 1 minute
)

// Valid reports whether g is a supported granularity.
func (g Granularity) Valid() bool {
	switch g {
	case P1Y, P1M, P7D, P1D, PT1H, PT15M, PT5M, PT1M:
		return true
	}
	return false
}

// BucketStart returns the start of the period of granularity g that
// contains t. Weekly buckets start on Monday, monthly buckets on the
// first of the month, yearly buckets on January 1st. Sub-daily buckets
// truncate the timestamp.
func (g Granularity) BucketStart(t time.Time) time.Time {
	loc := t.Location()
	switch g {
	case P1Y:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, loc)
	case P1M:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	case P7D:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
		// Monday-anchored weeks.
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case P1D:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	case PT1H:
		return t.Truncate(time.Hour)
	case PT15M:
		return t.Truncate(15 * time.Minute)
	case PT5M:
		return t.Truncate(5 * time.Minute)
	case PT1M:
		return t.Truncate(time.Minute)
	}
	return t
}
