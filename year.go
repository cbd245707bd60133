package fiscal

import (
	"cmp"
	"fmt"
	"time"
)

// Year is a single fiscal year under a Calendar. The zero Year is federal
// year 0 and is invalid; construct years through Calendar.Year, ParseYear
// or YearAt.
type Year struct {
	cal  Calendar
	year int
}

// Year returns the fiscal year label.
func (y Year) Year() int {
	return y.year
}

// Calendar returns the calendar the year is defined under.
func (y Year) Calendar() Calendar {
	return y.cal
}

// Start returns the year's first instant, 00:00:00 UTC on the start day of
// its first calendar month.
func (y Year) Start() time.Time {
	return y.Q1().Start()
}

// End returns the year's last instant, 23:59:59 UTC on the last day of its
// final calendar month.
func (y Year) End() time.Time {
	return y.Q4().End()
}

// Q1 returns the year's first quarter.
func (y Year) Q1() Quarter { return Quarter{cal: y.cal, year: y.year, number: 1} }

// Q2 returns the year's second quarter.
func (y Year) Q2() Quarter { return Quarter{cal: y.cal, year: y.year, number: 2} }

// Q3 returns the year's third quarter.
func (y Year) Q3() Quarter { return Quarter{cal: y.cal, year: y.year, number: 3} }

// Q4 returns the year's fourth quarter.
func (y Year) Q4() Quarter { return Quarter{cal: y.cal, year: y.year, number: 4} }

// Quarter returns quarter number q of the year.
func (y Year) Quarter(q int) (Quarter, error) {
	return y.cal.Quarter(y.year, q)
}

// Quarters returns the year's four quarters in order.
func (y Year) Quarters() []Quarter {
	return []Quarter{y.Q1(), y.Q2(), y.Q3(), y.Q4()}
}

// Months returns the year's twelve fiscal months in order.
func (y Year) Months() []Month {
	months := make([]Month, MonthsPerYear)
	for i := range months {
		months[i] = Month{cal: y.cal, year: y.year, number: i + 1}
	}
	return months
}

// Contains reports whether an instant falls within the year, boundaries
// included.
func (y Year) Contains(t time.Time) bool {
	return !t.Before(y.Start()) && !t.After(y.End())
}

// Previous returns the preceding fiscal year; it errors at MinYear.
func (y Year) Previous() (Year, error) {
	return y.cal.Year(y.year - 1)
}

// Next returns the following fiscal year; it errors at MaxYear.
func (y Year) Next() (Year, error) {
	return y.cal.Year(y.year + 1)
}

// Compare orders two years by label: -1 if y is earlier than o, 0 if equal,
// +1 if later.
func (y Year) Compare(o Year) int {
	return cmp.Compare(y.year, o.year)
}

// Equal reports whether two years carry the same label.
func (y Year) Equal(o Year) bool { return y.year == o.year }

// Before reports whether y precedes o.
func (y Year) Before(o Year) bool { return y.year < o.year }

// After reports whether y follows o.
func (y Year) After(o Year) bool { return y.year > o.year }

// ISORange renders the year's span in ISO 8601 interval notation,
// start/end at date precision: "2016-10-01/2017-09-30".
func (y Year) ISORange() string {
	return isoRange(y.Start(), y.End())
}

func (y Year) String() string {
	return fmt.Sprintf("FY%d", y.year)
}

func isoRange(start, end time.Time) string {
	return start.Format(time.DateOnly) + "/" + end.Format(time.DateOnly)
}
