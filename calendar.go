// Package fiscal computes fiscal year, quarter and month boundaries for
// calendars that start on an arbitrary month and day.
//
// A Calendar describes the fiscal structure: its start month and day, and
// whether years are named after the calendar year in which they end or
// begin. The zero Calendar is the United States federal fiscal calendar
// (October 1 start, end-year naming), so FY2017 runs from 2016-10-01
// through 2017-09-30. All values are immutable and safe for concurrent use;
// all instants are UTC with second precision.
package fiscal

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MinYear and MaxYear bound fiscal year labels to four digits.
	MinYear = 1
	MaxYear = 9999

	MonthsPerYear    = 12
	QuartersPerYear  = 4
	MonthsPerQuarter = MonthsPerYear / QuartersPerYear
)

// YearNaming selects which calendar year a fiscal year is named after.
type YearNaming int

const (
	// EndYearNaming names a fiscal year after the calendar year in which it
	// ends. Under the U.S. federal calendar FY2017 runs October 2016
	// through September 2017.
	EndYearNaming YearNaming = iota

	// StartYearNaming names a fiscal year after the calendar year in which
	// it begins, as in e.g. an April-start UK-style year.
	StartYearNaming
)

func (n YearNaming) String() string {
	if n == StartYearNaming {
		return "start"
	}
	return "end"
}

// ParseYearNaming reads a naming convention from text. It accepts "end" and
// "start", plus "previous" and "same" as the conventional aliases for them.
func ParseYearNaming(s string) (YearNaming, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "end", "previous":
		return EndYearNaming, nil
	case "start", "same":
		return StartYearNaming, nil
	}
	return EndYearNaming, fmt.Errorf("unknown year naming %q (want \"end\" or \"start\")", s)
}

// Calendar defines a fiscal year structure: the calendar month and day the
// year starts on, and the year-naming convention. The zero value is the
// U.S. federal fiscal calendar. Two calendars built differently can denote
// the same structure; compare them with Equal, not ==.
type Calendar struct {
	startMonth time.Month
	startDay   int
	naming     YearNaming
}

// Federal is the United States federal fiscal calendar: years start on
// October 1 and are named after the calendar year in which they end.
var Federal = Calendar{}

// New returns a calendar whose fiscal years start on the given month and
// day. Start days that exceed a month's length (say 30 in a February) clamp
// to that month's last day wherever they are applied.
func New(startMonth time.Month, startDay int, naming YearNaming) (Calendar, error) {
	if startMonth < time.January || startMonth > time.December {
		return Calendar{}, fmt.Errorf("%w: start month %d", ErrInvalidMonth, int(startMonth))
	}
	if startDay < 1 || startDay > 31 {
		return Calendar{}, fmt.Errorf("%w: start day %d", ErrInvalidDay, startDay)
	}
	if naming != EndYearNaming && naming != StartYearNaming {
		return Calendar{}, fmt.Errorf("unknown year naming: %d", int(naming))
	}
	return Calendar{startMonth: startMonth, startDay: startDay, naming: naming}, nil
}

// StartMonth returns the calendar month fiscal years start in.
func (c Calendar) StartMonth() time.Month {
	if c.startMonth == 0 {
		return time.October
	}
	return c.startMonth
}

// StartDay returns the day of StartMonth fiscal years start on.
func (c Calendar) StartDay() int {
	if c.startDay == 0 {
		return 1
	}
	return c.startDay
}

// Naming returns the year-naming convention.
func (c Calendar) Naming() YearNaming {
	return c.naming
}

// Equal reports whether two calendars describe the same fiscal structure.
func (c Calendar) Equal(o Calendar) bool {
	return c.StartMonth() == o.StartMonth() && c.StartDay() == o.StartDay() && c.naming == o.naming
}

func (c Calendar) String() string {
	return fmt.Sprintf("%s %d, %s-year naming", c.StartMonth(), c.StartDay(), c.naming)
}

// Year returns the fiscal year with the given label.
func (c Calendar) Year(year int) (Year, error) {
	if err := checkYear(year); err != nil {
		return Year{}, err
	}
	return Year{cal: c, year: year}, nil
}

// ParseYear builds a fiscal year from a string of decimal digits.
func (c Calendar) ParseYear(s string) (Year, error) {
	year, err := parseDigits(s)
	if err != nil {
		return Year{}, err
	}
	return c.Year(year)
}

// Quarter returns quarter number 1 through 4 of the given fiscal year.
func (c Calendar) Quarter(year, quarter int) (Quarter, error) {
	if err := checkYear(year); err != nil {
		return Quarter{}, err
	}
	if err := checkQuarter(quarter); err != nil {
		return Quarter{}, err
	}
	return Quarter{cal: c, year: year, number: quarter}, nil
}

// ParseQuarter builds a fiscal quarter from digit strings.
func (c Calendar) ParseQuarter(year, quarter string) (Quarter, error) {
	y, err := parseDigits(year)
	if err != nil {
		return Quarter{}, err
	}
	q, err := parseDigits(quarter)
	if err != nil {
		return Quarter{}, err
	}
	return c.Quarter(y, q)
}

// Month returns fiscal month 1 through 12 of the given fiscal year; month 1
// is the year's first calendar month.
func (c Calendar) Month(year, month int) (Month, error) {
	if err := checkYear(year); err != nil {
		return Month{}, err
	}
	if err := checkMonth(month); err != nil {
		return Month{}, err
	}
	return Month{cal: c, year: year, number: month}, nil
}

// Date returns the calendar date year-month-day under this calendar.
func (c Calendar) Date(year, month, day int) (Date, error) {
	if err := checkYear(year); err != nil {
		return Date{}, err
	}
	if err := checkMonth(month); err != nil {
		return Date{}, err
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return Date{}, fmt.Errorf("%w: %d (%s %d has %d days)",
			ErrInvalidDay, day, time.Month(month), year, daysIn(year, time.Month(month)))
	}
	return Date{cal: c, Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}, nil
}

// ParseDate reads an ISO 8601 calendar date (YYYY-MM-DD).
func (c Calendar) ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return c.Date(t.Year(), int(t.Month()), t.Day())
}

// DateOf returns the calendar date of an instant, read in the instant's own
// location and carried forward as UTC.
func (c Calendar) DateOf(t time.Time) Date {
	return Date{cal: c, Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// YearAt returns the fiscal year containing an instant. Errors only when
// the containing year's label falls outside MinYear..MaxYear.
func (c Calendar) YearAt(t time.Time) (Year, error) {
	return c.Year(c.fiscalYearFor(t.Year(), t.Month()))
}

// QuarterAt returns the fiscal quarter containing an instant.
func (c Calendar) QuarterAt(t time.Time) (Quarter, error) {
	return c.Quarter(c.fiscalYearFor(t.Year(), t.Month()), c.quarterFor(t.Month()))
}

// MonthAt returns the fiscal month containing an instant.
func (c Calendar) MonthAt(t time.Time) (Month, error) {
	return c.Month(c.fiscalYearFor(t.Year(), t.Month()), c.monthFor(t.Month()))
}

// quarterStartMonth returns the first calendar month of quarter q, wrapping
// within the 12-month cycle.
func (c Calendar) quarterStartMonth(q int) time.Month {
	return time.Month((int(c.StartMonth())-1+(q-1)*MonthsPerQuarter)%MonthsPerYear + 1)
}

// quarterEndMonth returns the last calendar month of quarter q.
func (c Calendar) quarterEndMonth(q int) time.Month {
	return time.Month((int(c.StartMonth())-1+q*MonthsPerQuarter-1)%MonthsPerYear + 1)
}

// calendarYearFor resolves the calendar year a given month of fiscal year
// fy falls in. Months on or after the start month belong to the calendar
// year the fiscal year starts in; the rest spill into the following one.
func (c Calendar) calendarYearFor(fy int, m time.Month) int {
	startYear := fy
	if c.naming == EndYearNaming {
		startYear = fy - 1
	}
	if m >= c.StartMonth() {
		return startYear
	}
	return startYear + 1
}

// fiscalYearFor maps a calendar year and month to the label of the fiscal
// year containing them. The day of month never participates: the month
// holding the year boundary is attributed whole to the starting year.
func (c Calendar) fiscalYearFor(calYear int, m time.Month) int {
	if m >= c.StartMonth() {
		if c.naming == EndYearNaming {
			return calYear + 1
		}
		return calYear
	}
	if c.naming == EndYearNaming {
		return calYear
	}
	return calYear - 1
}

// quarterFor maps a calendar month to its quarter number within the fiscal
// year.
func (c Calendar) quarterFor(m time.Month) int {
	return c.monthOffset(m)/MonthsPerQuarter + 1
}

// monthFor maps a calendar month to its fiscal month ordinal.
func (c Calendar) monthFor(m time.Month) int {
	return c.monthOffset(m) + 1
}

// monthOffset counts months from the fiscal year start, 0 through 11.
func (c Calendar) monthOffset(m time.Month) int {
	off := int(m) - int(c.StartMonth())
	if off < 0 {
		off += MonthsPerYear
	}
	return off
}

// monthStart is the first instant of the fiscal period opening in calendar
// month m of fiscal year fy: the start day (clamped to the month's length)
// at 00:00:00 UTC.
func (c Calendar) monthStart(fy int, m time.Month) time.Time {
	y := c.calendarYearFor(fy, m)
	day := min(c.StartDay(), daysIn(y, m))
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// monthEnd is the last instant of calendar month m of fiscal year fy: the
// month's last day at 23:59:59 UTC. The start day plays no part here; a
// period always ends with its closing month.
func (c Calendar) monthEnd(fy int, m time.Month) time.Time {
	y := c.calendarYearFor(fy, m)
	return time.Date(y, m, daysIn(y, m), 23, 59, 59, 0, time.UTC)
}

// daysIn returns the length of a calendar month, leap years included.
func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
