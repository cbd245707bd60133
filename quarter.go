package fiscal

import (
	"fmt"
	"time"
)

// Quarter is one quarter of a fiscal year. Construct quarters through
// Calendar.Quarter, Year.Q1 through Q4, or QuarterAt.
type Quarter struct {
	cal    Calendar
	year   int
	number int
}

// FiscalYear returns the label of the owning fiscal year.
func (q Quarter) FiscalYear() int {
	return q.year
}

// Number returns the quarter number, 1 through 4.
func (q Quarter) Number() int {
	return q.number
}

// Calendar returns the calendar the quarter is defined under.
func (q Quarter) Calendar() Calendar {
	return q.cal
}

// Year returns the owning fiscal year.
func (q Quarter) Year() Year {
	return Year{cal: q.cal, year: q.year}
}

// Start returns the quarter's first instant: 00:00:00 UTC on the start day
// of its first calendar month, with the day clamped to the month's length.
func (q Quarter) Start() time.Time {
	return q.cal.monthStart(q.year, q.cal.quarterStartMonth(q.number))
}

// End returns the quarter's last instant: 23:59:59 UTC on the last day of
// its third calendar month, leap-year Februaries included.
func (q Quarter) End() time.Time {
	return q.cal.monthEnd(q.year, q.cal.quarterEndMonth(q.number))
}

// Contains reports whether an instant falls within the quarter, boundaries
// included.
func (q Quarter) Contains(t time.Time) bool {
	return !t.Before(q.Start()) && !t.After(q.End())
}

// Months returns the quarter's three fiscal months in order.
func (q Quarter) Months() []Month {
	months := make([]Month, MonthsPerQuarter)
	for i := range months {
		months[i] = Month{cal: q.cal, year: q.year, number: (q.number-1)*MonthsPerQuarter + i + 1}
	}
	return months
}

// Previous returns the preceding quarter, rolling into the prior fiscal
// year from quarter 1. It errors when that year would precede MinYear.
func (q Quarter) Previous() (Quarter, error) {
	if q.number == 1 {
		return q.cal.Quarter(q.year-1, QuartersPerYear)
	}
	return q.cal.Quarter(q.year, q.number-1)
}

// Next returns the following quarter, rolling into the next fiscal year
// from quarter 4. It errors when that year would exceed MaxYear.
func (q Quarter) Next() (Quarter, error) {
	if q.number == QuartersPerYear {
		return q.cal.Quarter(q.year+1, 1)
	}
	return q.cal.Quarter(q.year, q.number+1)
}

// Compare orders quarters chronologically by fiscal year, then number.
func (q Quarter) Compare(o Quarter) int {
	if q.year != o.year {
		if q.year < o.year {
			return -1
		}
		return 1
	}
	switch {
	case q.number < o.number:
		return -1
	case q.number > o.number:
		return 1
	}
	return 0
}

// Equal reports whether two quarters carry the same fiscal year and number.
func (q Quarter) Equal(o Quarter) bool {
	return q.year == o.year && q.number == o.number
}

// Before reports whether q precedes o.
func (q Quarter) Before(o Quarter) bool { return q.Compare(o) < 0 }

// After reports whether q follows o.
func (q Quarter) After(o Quarter) bool { return q.Compare(o) > 0 }

// ISORange renders the quarter's span in ISO 8601 interval notation at date
// precision: "2016-10-01/2016-12-31".
func (q Quarter) ISORange() string {
	return isoRange(q.Start(), q.End())
}

func (q Quarter) String() string {
	return fmt.Sprintf("FY%d Q%d", q.year, q.number)
}
