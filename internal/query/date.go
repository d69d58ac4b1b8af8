package query

import (
	"strconv"
	"strings"
	"time"
)

// DateRange is a half-open interval [Start, End) covering a whole year,
// month, or day depending on how specific the query value was.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// ParseDateRange interprets a query value like "2025", "2025/3" or
// "2025-03-15" as a date range. Components may be separated by "/" or
// "-". A value whose year is not numeric reports ok=false; month and
// day components that fail to parse are treated as absent. Out-of-range
// months and days normalize forward the way time.Date does.
func ParseDateRange(value string) (r DateRange, ok bool) {
	parts := strings.FieldsFunc(value, func(c rune) bool {
		return c == '/' || c == '-'
	})
	if len(parts) == 0 {
		return DateRange{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return DateRange{}, false
	}

	month, day := 0, 0
	if len(parts) > 1 {
		month, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		day, _ = strconv.Atoi(parts[2])
	}

	switch {
	case day > 0:
		r.Start = time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		r.End = r.Start.AddDate(0, 0, 1)
	case month > 0:
		r.Start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		r.End = r.Start.AddDate(0, 1, 0)
	default:
		r.Start = time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		r.End = r.Start.AddDate(1, 0, 0)
	}
	return r, true
}
