// Command fiscal answers fiscal-calendar queries from the command line:
// which fiscal year and quarter a date falls in, and where a fiscal year
// or quarter starts and ends. Calendar defaults come from the environment
// (FISCAL_START_MONTH, FISCAL_START_DAY, FISCAL_YEAR_NAMING) and can be
// overridden per invocation.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"fiscal"
	"fiscal/internal/cli"
	"fiscal/internal/config"
	"fiscal/internal/report"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()

	var (
		date       = flag.String("date", "", "classify a calendar date (YYYY-MM-DD)")
		year       = flag.String("year", "", "report a fiscal year (1-9999)")
		quarter    = flag.String("quarter", "", "report a quarter of -year (1-4)")
		startMonth = flag.Int("start-month", cfg.FiscalStartMonth, "fiscal year start month (1-12)")
		startDay   = flag.Int("start-day", cfg.FiscalStartDay, "fiscal year start day (1-31)")
		yearNaming = flag.String("year-naming", cfg.FiscalYearNaming, "year naming convention: end or start")
	)
	flag.Parse()

	naming, err := fiscal.ParseYearNaming(*yearNaming)
	if err != nil {
		fatal(err)
	}
	cal, err := fiscal.New(time.Month(*startMonth), *startDay, naming)
	if err != nil {
		fatal(err)
	}

	switch {
	case *date != "" && (*year != "" || *quarter != ""):
		fatal(fmt.Errorf("use either -date or -year/-quarter, not both"))
	case *quarter != "" && *year == "":
		fatal(fmt.Errorf("-quarter requires -year"))
	case *date != "":
		d, err := cal.ParseDate(*date)
		if err != nil {
			fatal(err)
		}
		r, err := report.BuildDate(d)
		if err != nil {
			fatal(err)
		}
		renderDate(os.Stdout, r)
	case *quarter != "":
		q, err := cal.ParseQuarter(*year, *quarter)
		if err != nil {
			fatal(err)
		}
		renderQuarter(os.Stdout, report.BuildQuarter(q))
	case *year != "":
		y, err := cal.ParseYear(*year)
		if err != nil {
			fatal(err)
		}
		renderYear(os.Stdout, report.BuildYear(y))
	default:
		r, err := report.BuildCurrent(cal, time.Now())
		if err != nil {
			fatal(err)
		}
		renderCurrent(os.Stdout, r)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fiscal:", err)
	os.Exit(1)
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
}

func renderCalendar(tw *tabwriter.Writer, c report.CalendarInfo) {
	fmt.Fprintf(tw, "calendar\t%s %d, %s-year naming\n", c.StartMonth, c.StartDay, c.YearNaming)
}

func renderYear(w io.Writer, r report.YearReport) {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "fiscal year\t%s\n", r.Label)
	renderCalendar(tw, r.Calendar)
	fmt.Fprintf(tw, "start\t%s\n", r.Start)
	fmt.Fprintf(tw, "end\t%s\n", r.End)
	fmt.Fprintf(tw, "iso range\t%s\n", r.ISORange)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "quarter\tstart\tend")
	for _, q := range r.Quarters {
		fmt.Fprintf(tw, "Q%d\t%s\t%s\n", q.Quarter, q.Start, q.End)
	}
	tw.Flush()
}

func renderQuarter(w io.Writer, r report.QuarterReport) {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "quarter\t%s\n", r.Label)
	renderCalendar(tw, r.Calendar)
	fmt.Fprintf(tw, "start\t%s\n", r.Start)
	fmt.Fprintf(tw, "end\t%s\n", r.End)
	fmt.Fprintf(tw, "iso range\t%s\n", r.ISORange)
	if r.Previous != nil {
		fmt.Fprintf(tw, "previous\tFY%d Q%d\n", r.Previous.FiscalYear, r.Previous.Quarter)
	}
	if r.Next != nil {
		fmt.Fprintf(tw, "next\tFY%d Q%d\n", r.Next.FiscalYear, r.Next.Quarter)
	}
	tw.Flush()
}

func renderDate(w io.Writer, r report.DateReport) {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "date\t%s\n", r.Date)
	renderCalendar(tw, r.Calendar)
	fmt.Fprintf(tw, "fiscal year\tFY%d\n", r.FiscalYear)
	fmt.Fprintf(tw, "quarter\tQ%d (%s)\n", r.Quarter, r.QuarterSpan.ISORange)
	fmt.Fprintf(tw, "fiscal month\t%d\n", r.FiscalMonth)
	fmt.Fprintf(tw, "fiscal day\t%d\n", r.FiscalDay)
	fmt.Fprintf(tw, "previous quarter\tFY%d Q%d\n", r.PreviousQuarter.FiscalYear, r.PreviousQuarter.Quarter)
	fmt.Fprintf(tw, "next quarter\tFY%d Q%d\n", r.NextQuarter.FiscalYear, r.NextQuarter.Quarter)
	fmt.Fprintf(tw, "boundaries\t%s\n", boundaryList(r.Boundaries))
	tw.Flush()
}

func renderCurrent(w io.Writer, r report.CurrentReport) {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "now\t%s\n", r.At)
	tw.Flush()
	renderDate(w, r.DateReport)
}

func boundaryList(b report.BoundaryFlags) string {
	var parts []string
	flags := []struct {
		set  bool
		name string
	}{
		{b.Q1Start, "Q1 start"},
		{b.Q1End, "Q1 end"},
		{b.Q2Start, "Q2 start"},
		{b.Q2End, "Q2 end"},
		{b.Q3Start, "Q3 start"},
		{b.Q3End, "Q3 end"},
		{b.Q4Start, "Q4 start"},
		{b.Q4End, "Q4 end"},
	}
	for _, f := range flags {
		if f.set {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}
