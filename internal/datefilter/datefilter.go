// Package datefilter narrows queries to a half-open date interval derived
// from a filter keyword or explicit bounds.
package datefilter

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Filter keywords accepted in the filter_type query parameter
const (
	FilterToday  = "today"
	FilterWeek   = "week"
	FilterMonth  = "month"
	FilterYear   = "year"
	FilterCustom = "custom"
)

// DateLayout is the accepted format for custom bounds
const DateLayout = "2006-01-02"

// ErrInvalidDateFormat is returned when custom bounds do not parse as
// YYYY-MM-DD.
var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

// Interval is a half-open date range [From, To). Either bound may be
// absent: week/month/year filters have no upper bound, and an interval
// with no bounds at all is a no-op.
type Interval struct {
	From    time.Time
	To      time.Time
	HasFrom bool
	HasTo   bool
}

// IsZero reports whether the interval carries no bounds
func (i Interval) IsZero() bool {
	return !i.HasFrom && !i.HasTo
}

// Range computes the interval for a filter keyword or explicit bounds,
// evaluated against now in its own location.
//
//   - today:  [start of current day, start of next day)
//   - week:   [most recent Monday on/before today, +inf) -- week-to-date
//   - month:  [first day of current month, +inf)
//   - year:   [January 1 of current year, +inf)
//   - custom: [startDate, endDate + 1 day) -- end date inclusive
//
// No keyword and no custom bounds, or an unrecognized keyword, yields a
// zero interval: the caller's record set passes through unchanged.
func Range(filterType, startDate, endDate string, now time.Time) (Interval, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch filterType {
	case FilterToday:
		return Interval{From: today, To: today.AddDate(0, 0, 1), HasFrom: true, HasTo: true}, nil

	case FilterWeek:
		// Monday-based: Sunday counts as six days after the last Monday
		offset := (int(now.Weekday()) + 6) % 7
		monday := today.AddDate(0, 0, -offset)
		return Interval{From: monday, HasFrom: true}, nil

	case FilterMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return Interval{From: first, HasFrom: true}, nil

	case FilterYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Interval{From: first, HasFrom: true}, nil

	case FilterCustom:
		return customRange(startDate, endDate, loc)
	}

	// Explicit bounds without a keyword behave like custom; anything else,
	// including unrecognized keywords, is a silent no-op.
	if filterType == "" && startDate != "" && endDate != "" {
		return customRange(startDate, endDate, loc)
	}

	return Interval{}, nil
}

func customRange(startDate, endDate string, loc *time.Location) (Interval, error) {
	start, err := time.ParseInLocation(DateLayout, startDate, loc)
	if err != nil {
		return Interval{}, ErrInvalidDateFormat
	}
	end, err := time.ParseInLocation(DateLayout, endDate, loc)
	if err != nil {
		return Interval{}, ErrInvalidDateFormat
	}
	return Interval{From: start, To: end.AddDate(0, 0, 1), HasFrom: true, HasTo: true}, nil
}

// Scope returns a GORM scope applying the interval as a closed-open test
// against the given column. The column name is supplied by the caller and
// must be a known identifier, never user input.
func Scope(filterType, startDate, endDate, column string, now time.Time) (func(*gorm.DB) *gorm.DB, error) {
	interval, err := Range(filterType, startDate, endDate, now)
	if err != nil {
		return nil, err
	}

	return func(db *gorm.DB) *gorm.DB {
		if interval.HasFrom {
			db = db.Where(column+" >= ?", interval.From)
		}
		if interval.HasTo {
			db = db.Where(column+" < ?", interval.To)
		}
		return db
	}, nil
}
