package fiscal

import (
	"time"
)

// Date is a calendar date interpreted under a fiscal Calendar. It embeds
// the date's midnight-UTC time.Time, so the usual calendar accessors and
// comparisons come from time.Time; the methods here derive the fiscal view.
// Construct dates through Calendar.Date, ParseDate or DateOf.
type Date struct {
	time.Time
	cal Calendar
}

// Calendar returns the calendar the date is interpreted under.
func (d Date) Calendar() Calendar {
	return d.cal
}

// FiscalYear returns the label of the fiscal year containing the date.
// The label is plain arithmetic over the calendar year, so a date at the
// very top of the representable range can name the year past MaxYear.
func (d Date) FiscalYear() int {
	return d.cal.fiscalYearFor(d.Time.Year(), d.Time.Month())
}

// Quarter returns the number of the fiscal quarter containing the date,
// 1 through 4.
func (d Date) Quarter() int {
	return d.cal.quarterFor(d.Time.Month())
}

// FiscalMonth returns the ordinal of the date's month within its fiscal
// year, 1 through 12.
func (d Date) FiscalMonth() int {
	return d.cal.monthFor(d.Time.Month())
}

// FiscalDay returns the 1-based ordinal of the date within its fiscal
// year, counted from the year's start instant. With a start day above 1
// the leading days of the start month are attributed to the year that
// opens later that month, and their ordinals run zero and below.
func (d Date) FiscalDay() int {
	start := d.cal.monthStart(d.FiscalYear(), d.cal.StartMonth())
	return int(d.Time.Sub(start)/(24*time.Hour)) + 1
}

// PrevQuarter returns the number of the quarter before the date's, wrapping
// from 1 back to 4.
func (d Date) PrevQuarter() int {
	q := d.Quarter() - 1
	if q == 0 {
		q = QuartersPerYear
	}
	return q
}

// NextQuarter returns the number of the quarter after the date's, wrapping
// from 4 forward to 1.
func (d Date) NextQuarter() int {
	q := d.Quarter() + 1
	if q > QuartersPerYear {
		q = 1
	}
	return q
}

// PrevQuarterFiscalYear returns the fiscal year owning the previous
// quarter: one less than the date's when the date sits in quarter 1.
func (d Date) PrevQuarterFiscalYear() int {
	fy := d.FiscalYear()
	if d.Quarter() == 1 {
		fy--
	}
	return fy
}

// NextQuarterFiscalYear returns the fiscal year owning the next quarter:
// one more than the date's when the date sits in quarter 4.
func (d Date) NextQuarterFiscalYear() int {
	fy := d.FiscalYear()
	if d.Quarter() == QuartersPerYear {
		fy++
	}
	return fy
}

// IsQuarterStart reports whether the date is the first day of the given
// quarter of its own fiscal year. Quarters outside 1..4 report false.
func (d Date) IsQuarterStart(quarter int) bool {
	q, err := d.cal.Quarter(d.FiscalYear(), quarter)
	if err != nil {
		return false
	}
	return d.Time.Equal(q.Start())
}

// IsQuarterEnd reports whether the date is the last day of the given
// quarter of its own fiscal year. Quarters outside 1..4 report false.
func (d Date) IsQuarterEnd(quarter int) bool {
	q, err := d.cal.Quarter(d.FiscalYear(), quarter)
	if err != nil {
		return false
	}
	ey, em, ed := q.End().Date()
	y, m, day := d.Time.Date()
	return y == ey && m == em && day == ed
}

// IsQ1Start reports whether the date opens quarter 1 of its fiscal year.
func (d Date) IsQ1Start() bool { return d.IsQuarterStart(1) }

// IsQ2Start reports whether the date opens quarter 2 of its fiscal year.
func (d Date) IsQ2Start() bool { return d.IsQuarterStart(2) }

// IsQ3Start reports whether the date opens quarter 3 of its fiscal year.
func (d Date) IsQ3Start() bool { return d.IsQuarterStart(3) }

// IsQ4Start reports whether the date opens quarter 4 of its fiscal year.
func (d Date) IsQ4Start() bool { return d.IsQuarterStart(4) }

// IsQ1End reports whether the date closes quarter 1 of its fiscal year.
func (d Date) IsQ1End() bool { return d.IsQuarterEnd(1) }

// IsQ2End reports whether the date closes quarter 2 of its fiscal year.
func (d Date) IsQ2End() bool { return d.IsQuarterEnd(2) }

// IsQ3End reports whether the date closes quarter 3 of its fiscal year.
func (d Date) IsQ3End() bool { return d.IsQuarterEnd(3) }

// IsQ4End reports whether the date closes quarter 4 of its fiscal year.
func (d Date) IsQ4End() bool { return d.IsQuarterEnd(4) }

func (d Date) String() string {
	return d.Time.Format(time.DateOnly)
}
