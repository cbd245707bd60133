package fiscal

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidYear    = errors.New("year out of range")
	ErrInvalidQuarter = errors.New("quarter out of range")
	ErrInvalidMonth   = errors.New("month out of range")
	ErrInvalidDay     = errors.New("day out of range")
	ErrNotDigits      = errors.New("not a digit string")
)

// parseDigits converts a string of decimal digits to an int. Anything other
// than pure digits is an ErrNotDigits; range checking is the caller's job.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrNotDigits)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: %q", ErrNotDigits, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// All digits but wider than an int: larger than any valid range,
		// so let the caller's range check reject it.
		return MaxYear + 1, nil
	}
	return n, nil
}

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d (valid years are %d through %d)", ErrInvalidYear, year, MinYear, MaxYear)
	}
	return nil
}

func checkQuarter(quarter int) error {
	if quarter < 1 || quarter > QuartersPerYear {
		return fmt.Errorf("%w: %d (valid quarters are 1 through %d)", ErrInvalidQuarter, quarter, QuartersPerYear)
	}
	return nil
}

func checkMonth(month int) error {
	if month < 1 || month > MonthsPerYear {
		return fmt.Errorf("%w: %d (valid months are 1 through %d)", ErrInvalidMonth, month, MonthsPerYear)
	}
	return nil
}
