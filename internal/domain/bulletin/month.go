// internal/domain/bulletin/month.go
package bulletin

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthTable is an ordered list of month names. The position of a name plus one
// is its calendar month number.
type MonthTable [12]string

// English is the month table used for bulletin labels ("March 2024").
var English = MonthTable{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Index returns the zero-based position of name, or -1 if the table does not hold it.
// The lookup is case and spelling exact.
func (t MonthTable) Index(name string) int {
	for i, n := range t {
		if n == name {
			return i
		}
	}
	return -1
}

// Month is a resolved bulletin month.
type Month struct {
	Year  int
	Month time.Month
}

// Date returns the first day of the month at midnight UTC.
func (m Month) Date() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether m sorts strictly before o.
func (m Month) Before(o Month) bool {
	if m.Year != o.Year {
		return m.Year < o.Year
	}
	return m.Month < o.Month
}

func (m Month) String() string {
	if m.Month < time.January || m.Month > time.December {
		return fmt.Sprintf("Month(%d) %d", int(m.Month), m.Year)
	}
	return fmt.Sprintf("%s %d", English[m.Month-1], m.Year)
}

// Parse resolves a "MonthName Year" label. The label is split on its first space.
func (t MonthTable) Parse(label string) (Month, error) {
	name, yearStr, found := strings.Cut(strings.TrimSpace(label), " ")
	if !found {
		return Month{}, fmt.Errorf("%w: %q has no year", ErrInvalidMonthLabel, label)
	}

	idx := t.Index(name)
	if idx < 0 {
		return Month{}, fmt.Errorf("%w: unknown month name %q in %q", ErrInvalidMonthLabel, name, label)
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return Month{}, fmt.Errorf("%w: year in %q: %v", ErrInvalidMonthLabel, label, err)
	}
	if year <= 0 {
		return Month{}, fmt.Errorf("%w: year in %q must be positive", ErrInvalidMonthLabel, label)
	}

	return Month{Year: year, Month: time.Month(idx + 1)}, nil
}

// ParseMonth resolves label against the English month table.
func ParseMonth(label string) (Month, error) {
	return English.Parse(label)
}
