package fiscal

import (
	"fmt"
	"time"
)

// Month is one month of a fiscal year, counted from the year's first
// calendar month: under the federal calendar, fiscal month 1 of FY2017 is
// October 2016 and fiscal month 12 is September 2017.
type Month struct {
	cal    Calendar
	year   int
	number int
}

// FiscalYear returns the label of the owning fiscal year.
func (m Month) FiscalYear() int {
	return m.year
}

// Number returns the fiscal month ordinal, 1 through 12.
func (m Month) Number() int {
	return m.number
}

// Calendar returns the calendar the month is defined under.
func (m Month) Calendar() Calendar {
	return m.cal
}

// CalendarMonth returns the calendar month this fiscal month covers.
func (m Month) CalendarMonth() time.Month {
	return time.Month((int(m.cal.StartMonth())-1+m.number-1)%MonthsPerYear + 1)
}

// CalendarYear returns the calendar year this fiscal month falls in.
func (m Month) CalendarYear() int {
	return m.cal.calendarYearFor(m.year, m.CalendarMonth())
}

// Quarter returns the quarter this fiscal month belongs to.
func (m Month) Quarter() Quarter {
	return Quarter{cal: m.cal, year: m.year, number: (m.number-1)/MonthsPerQuarter + 1}
}

// Year returns the owning fiscal year.
func (m Month) Year() Year {
	return Year{cal: m.cal, year: m.year}
}

// Start returns the month's first instant. For fiscal month 1 that is the
// calendar's start day (clamped to the month length); later months open on
// the same day-of-month rule.
func (m Month) Start() time.Time {
	return m.cal.monthStart(m.year, m.CalendarMonth())
}

// End returns the month's last instant, 23:59:59 UTC on its final day.
func (m Month) End() time.Time {
	return m.cal.monthEnd(m.year, m.CalendarMonth())
}

// Contains reports whether an instant falls within the month, boundaries
// included.
func (m Month) Contains(t time.Time) bool {
	return !t.Before(m.Start()) && !t.After(m.End())
}

// Previous returns the preceding fiscal month, rolling into the prior
// fiscal year from month 1. It errors when that year would precede MinYear.
func (m Month) Previous() (Month, error) {
	if m.number == 1 {
		return m.cal.Month(m.year-1, MonthsPerYear)
	}
	return m.cal.Month(m.year, m.number-1)
}

// Next returns the following fiscal month, rolling into the next fiscal
// year from month 12. It errors when that year would exceed MaxYear.
func (m Month) Next() (Month, error) {
	if m.number == MonthsPerYear {
		return m.cal.Month(m.year+1, 1)
	}
	return m.cal.Month(m.year, m.number+1)
}

// Compare orders months chronologically by fiscal year, then ordinal.
func (m Month) Compare(o Month) int {
	if m.year != o.year {
		if m.year < o.year {
			return -1
		}
		return 1
	}
	switch {
	case m.number < o.number:
		return -1
	case m.number > o.number:
		return 1
	}
	return 0
}

// Equal reports whether two months carry the same fiscal year and ordinal.
func (m Month) Equal(o Month) bool {
	return m.year == o.year && m.number == o.number
}

// ISORange renders the month's span in ISO 8601 interval notation at date
// precision.
func (m Month) ISORange() string {
	return isoRange(m.Start(), m.End())
}

func (m Month) String() string {
	return fmt.Sprintf("FY%d M%d", m.year, m.number)
}
