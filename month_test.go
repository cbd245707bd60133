package fiscal

import (
	"errors"
	"testing"
	"time"
)

func TestMonth_FederalMapping(t *testing.T) {
	tests := []struct {
		name         string
		number       int
		wantCalMonth time.Month
		wantCalYear  int
		wantQuarter  int
	}{
		{"first is October", 1, time.October, 2016, 1},
		{"third is December", 3, time.December, 2016, 1},
		{"fourth opens Q2", 4, time.January, 2017, 2},
		{"seventh opens Q3", 7, time.April, 2017, 3},
		{"twelfth is September", 12, time.September, 2017, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Federal.Month(2017, tt.number)
			if err != nil {
				t.Fatalf("Month(2017, %d) error = %v", tt.number, err)
			}
			if m.CalendarMonth() != tt.wantCalMonth {
				t.Errorf("CalendarMonth() = %v, want %v", m.CalendarMonth(), tt.wantCalMonth)
			}
			if m.CalendarYear() != tt.wantCalYear {
				t.Errorf("CalendarYear() = %d, want %d", m.CalendarYear(), tt.wantCalYear)
			}
			if m.Quarter().Number() != tt.wantQuarter {
				t.Errorf("Quarter().Number() = %d, want %d", m.Quarter().Number(), tt.wantQuarter)
			}
		})
	}
}

func TestMonth_Boundaries(t *testing.T) {
	m, err := Federal.Month(2017, 5) // February 2017
	if err != nil {
		t.Fatalf("Month(2017, 5) error = %v", err)
	}

	wantStart := time.Date(2017, 2, 1, 0, 0, 0, 0, time.UTC)
	if !m.Start().Equal(wantStart) {
		t.Errorf("Start() = %v, want %v", m.Start(), wantStart)
	}
	wantEnd := time.Date(2017, 2, 28, 23, 59, 59, 0, time.UTC)
	if !m.End().Equal(wantEnd) {
		t.Errorf("End() = %v, want %v", m.End(), wantEnd)
	}

	leap, err := Federal.Month(2016, 5) // February 2016
	if err != nil {
		t.Fatalf("Month(2016, 5) error = %v", err)
	}
	wantLeapEnd := time.Date(2016, 2, 29, 23, 59, 59, 0, time.UTC)
	if !leap.End().Equal(wantLeapEnd) {
		t.Errorf("End() = %v, want %v", leap.End(), wantLeapEnd)
	}
}

func TestMonth_Contains(t *testing.T) {
	m, _ := Federal.Month(2017, 1) // October 2016

	if !m.Contains(time.Date(2016, 10, 15, 12, 0, 0, 0, time.UTC)) {
		t.Error("October month should contain October 15")
	}
	if m.Contains(time.Date(2016, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("October month should not contain November 1")
	}
}

func TestMonth_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		number   int
		wantPrev string
		wantNext string
	}{
		{"middle of year", 6, "FY2017 M5", "FY2017 M7"},
		{"first month rolls back a year", 1, "FY2016 M12", "FY2017 M2"},
		{"twelfth month rolls into next year", 12, "FY2017 M11", "FY2018 M1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Federal.Month(2017, tt.number)
			if err != nil {
				t.Fatalf("Month(2017, %d) error = %v", tt.number, err)
			}

			prev, err := m.Previous()
			if err != nil {
				t.Fatalf("Previous() error = %v", err)
			}
			if prev.String() != tt.wantPrev {
				t.Errorf("Previous() = %s, want %s", prev, tt.wantPrev)
			}

			next, err := m.Next()
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			if next.String() != tt.wantNext {
				t.Errorf("Next() = %s, want %s", next, tt.wantNext)
			}
		})
	}

	first, _ := Federal.Month(MinYear, 1)
	if _, err := first.Previous(); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("Previous() at the bottom of the range error = %v, want ErrInvalidYear", err)
	}
	last, _ := Federal.Month(MaxYear, 12)
	if _, err := last.Next(); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("Next() at the top of the range error = %v, want ErrInvalidYear", err)
	}
}

func TestMonth_Ordering(t *testing.T) {
	m5, _ := Federal.Month(2017, 5)
	m6, _ := Federal.Month(2017, 6)
	nextYear, _ := Federal.Month(2018, 1)

	if got := m5.Compare(m6); got != -1 {
		t.Errorf("M5.Compare(M6) = %d, want -1", got)
	}
	if got := m6.Compare(nextYear); got != -1 {
		t.Errorf("FY2017 M6.Compare(FY2018 M1) = %d, want -1", got)
	}
	if got := nextYear.Compare(m5); got != 1 {
		t.Errorf("FY2018 M1.Compare(FY2017 M5) = %d, want 1", got)
	}

	m5again, _ := Federal.Month(2017, 5)
	if !m5.Equal(m5again) {
		t.Error("same month should compare equal")
	}
}

func TestMonth_ISORange(t *testing.T) {
	m, _ := Federal.Month(2017, 1)
	if got := m.ISORange(); got != "2016-10-01/2016-10-31" {
		t.Errorf("ISORange() = %q, want %q", got, "2016-10-01/2016-10-31")
	}
}
