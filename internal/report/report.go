// Package report assembles fiscal-period reports from core values.
// The HTTP handlers and the CLI both render these structs, so every
// surface presents identical facts.
package report

import (
	"fmt"
	"time"

	"fiscal"
)

// CalendarInfo describes the effective fiscal calendar.
type CalendarInfo struct {
	StartMonth       string `json:"start_month"`
	StartMonthNumber int    `json:"start_month_number"`
	StartDay         int    `json:"start_day"`
	YearNaming       string `json:"year_naming"`
}

// QuarterSummary is the span of a single fiscal quarter.
type QuarterSummary struct {
	Quarter  int    `json:"quarter"`
	Label    string `json:"label"`
	Start    string `json:"start"`
	End      string `json:"end"`
	ISORange string `json:"iso_range"`
}

// QuarterRef names an adjacent quarter without computing its span.
type QuarterRef struct {
	FiscalYear int `json:"fiscal_year"`
	Quarter    int `json:"quarter"`
}

// YearReport describes one fiscal year and its four quarters.
type YearReport struct {
	Calendar   CalendarInfo     `json:"calendar"`
	FiscalYear int              `json:"fiscal_year"`
	Label      string           `json:"label"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	ISORange   string           `json:"iso_range"`
	Quarters   []QuarterSummary `json:"quarters"`
}

// QuarterReport describes one fiscal quarter with navigation references.
// Previous/Next are nil at the representable-year range edges.
type QuarterReport struct {
	Calendar   CalendarInfo `json:"calendar"`
	FiscalYear int          `json:"fiscal_year"`
	Quarter    int          `json:"quarter"`
	Label      string       `json:"label"`
	Start      string       `json:"start"`
	End        string       `json:"end"`
	ISORange   string       `json:"iso_range"`
	Previous   *QuarterRef  `json:"previous,omitempty"`
	Next       *QuarterRef  `json:"next,omitempty"`
}

// BoundaryFlags are the eight quarter-boundary predicates for a date.
type BoundaryFlags struct {
	Q1Start bool `json:"q1_start"`
	Q1End   bool `json:"q1_end"`
	Q2Start bool `json:"q2_start"`
	Q2End   bool `json:"q2_end"`
	Q3Start bool `json:"q3_start"`
	Q3End   bool `json:"q3_end"`
	Q4Start bool `json:"q4_start"`
	Q4End   bool `json:"q4_end"`
}

// DateReport classifies one calendar date against a fiscal calendar.
type DateReport struct {
	Calendar        CalendarInfo   `json:"calendar"`
	Date            string         `json:"date"`
	FiscalYear      int            `json:"fiscal_year"`
	Quarter         int            `json:"quarter"`
	FiscalMonth     int            `json:"fiscal_month"`
	FiscalDay       int            `json:"fiscal_day"`
	QuarterSpan     QuarterSummary `json:"quarter_span"`
	PreviousQuarter QuarterRef     `json:"previous_quarter"`
	NextQuarter     QuarterRef     `json:"next_quarter"`
	Boundaries      BoundaryFlags  `json:"boundaries"`
}

// CurrentReport classifies the fiscal periods containing an instant.
type CurrentReport struct {
	At string `json:"at"`
	DateReport
}

// BuildCalendar describes cal.
func BuildCalendar(cal fiscal.Calendar) CalendarInfo {
	return CalendarInfo{
		StartMonth:       cal.StartMonth().String(),
		StartMonthNumber: int(cal.StartMonth()),
		StartDay:         cal.StartDay(),
		YearNaming:       cal.Naming().String(),
	}
}

// BuildYear assembles the report for a fiscal year.
func BuildYear(y fiscal.Year) YearReport {
	quarters := make([]QuarterSummary, 0, fiscal.QuartersPerYear)
	for _, q := range y.Quarters() {
		quarters = append(quarters, summarize(q))
	}
	return YearReport{
		Calendar:   BuildCalendar(y.Calendar()),
		FiscalYear: y.Year(),
		Label:      y.String(),
		Start:      y.Start().Format(time.RFC3339),
		End:        y.End().Format(time.RFC3339),
		ISORange:   y.ISORange(),
		Quarters:   quarters,
	}
}

// BuildQuarter assembles the report for a fiscal quarter.
func BuildQuarter(q fiscal.Quarter) QuarterReport {
	r := QuarterReport{
		Calendar:   BuildCalendar(q.Calendar()),
		FiscalYear: q.FiscalYear(),
		Quarter:    q.Number(),
		Label:      q.String(),
		Start:      q.Start().Format(time.RFC3339),
		End:        q.End().Format(time.RFC3339),
		ISORange:   q.ISORange(),
	}
	if prev, err := q.Previous(); err == nil {
		r.Previous = &QuarterRef{FiscalYear: prev.FiscalYear(), Quarter: prev.Number()}
	}
	if next, err := q.Next(); err == nil {
		r.Next = &QuarterRef{FiscalYear: next.FiscalYear(), Quarter: next.Number()}
	}
	return r
}

// BuildDate classifies a calendar date. It fails only when the date's
// fiscal year falls outside the representable range.
func BuildDate(d fiscal.Date) (DateReport, error) {
	cal := d.Calendar()
	q, err := cal.Quarter(d.FiscalYear(), d.Quarter())
	if err != nil {
		return DateReport{}, fmt.Errorf("classify %s: %w", d, err)
	}
	return DateReport{
		Calendar:    BuildCalendar(cal),
		Date:        d.String(),
		FiscalYear:  d.FiscalYear(),
		Quarter:     d.Quarter(),
		FiscalMonth: d.FiscalMonth(),
		FiscalDay:   d.FiscalDay(),
		QuarterSpan: summarize(q),
		PreviousQuarter: QuarterRef{
			FiscalYear: d.PrevQuarterFiscalYear(),
			Quarter:    d.PrevQuarter(),
		},
		NextQuarter: QuarterRef{
			FiscalYear: d.NextQuarterFiscalYear(),
			Quarter:    d.NextQuarter(),
		},
		Boundaries: BoundaryFlags{
			Q1Start: d.IsQ1Start(),
			Q1End:   d.IsQ1End(),
			Q2Start: d.IsQ2Start(),
			Q2End:   d.IsQ2End(),
			Q3Start: d.IsQ3Start(),
			Q3End:   d.IsQ3End(),
			Q4Start: d.IsQ4Start(),
			Q4End:   d.IsQ4End(),
		},
	}, nil
}

// BuildCurrent classifies the instant's containing fiscal periods.
func BuildCurrent(cal fiscal.Calendar, at time.Time) (CurrentReport, error) {
	dr, err := BuildDate(cal.DateOf(at))
	if err != nil {
		return CurrentReport{}, err
	}
	return CurrentReport{
		At:         at.UTC().Format(time.RFC3339),
		DateReport: dr,
	}, nil
}

func summarize(q fiscal.Quarter) QuarterSummary {
	return QuarterSummary{
		Quarter:  q.Number(),
		Label:    q.String(),
		Start:    q.Start().Format(time.RFC3339),
		End:      q.End().Format(time.RFC3339),
		ISORange: q.ISORange(),
	}
}
