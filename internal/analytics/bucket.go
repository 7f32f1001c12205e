package analytics

import (
	"fmt"
	"time"
)

// Granularity selects the period length used for time-series bucketing.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// ParseGranularity normalizes the timeframe parameter. Both the current
// daily/weekly/monthly vocabulary and the legacy day/week/month aliases are
// accepted; anything else is a caller error.
func ParseGranularity(s string) (Granularity, error) {
	switch s {
	case "daily", "day", "":
		return GranularityDaily, nil
	case "weekly", "week":
		return GranularityWeekly, nil
	case "monthly", "month":
		return GranularityMonthly, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// WeekStart returns the Monday 00:00 of the week containing t, in t's
// location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// BucketKey maps a timestamp onto its canonical period key: 2006-01-02 for
// daily, 2006-01 for monthly, YYYY-Www (ISO week, Monday start) for weekly.
// Weekly alignment depends only on the timestamp, never on the requested
// range's start day.
func BucketKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityWeekly:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case GranularityMonthly:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// SeriesSkeleton returns one period key per period intersecting the
// half-open range [start, end), in chronological order. Callers fill the
// skeleton so that periods without records still render with zero values.
// An inverted range yields an empty slice.
func SeriesSkeleton(start, end time.Time, g Granularity) []string {
	keys := []string{}
	if !start.Before(end) {
		return keys
	}
	cursor := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	last := ""
	for cursor.Before(end) {
		if k := BucketKey(cursor, g); k != last {
			keys = append(keys, k)
			last = k
		}
		cursor = cursor.AddDate(0, 0, 1)
	}
	return keys
}

// DaysBetween counts whole calendar days from a to b, ignoring time of day.
func DaysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
