// internal/domain/bulletin/date_field.go
package bulletin

import (
	"database/sql"
	"fmt"
	"time"
)

// Raw date codes used by the bulletin dataset.
const (
	CodeCurrent     = "C"
	CodeUnavailable = "U"
)

// DateKind tells which variant a DateField holds.
type DateKind int

const (
	// DateCurrent means the cutoff has caught up with the bulletin month itself.
	DateCurrent DateKind = iota
	// DateUnavailable means the track is closed and has no date at all.
	DateUnavailable
	// DateExplicit carries a concrete cutoff date.
	DateExplicit
)

func (k DateKind) String() string {
	switch k {
	case DateCurrent:
		return "current"
	case DateUnavailable:
		return "unavailable"
	case DateExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("DateKind(%d)", int(k))
	}
}

// DateField is a parsed raw date field. Date is only meaningful for DateExplicit.
type DateField struct {
	Kind DateKind
	Date time.Time
}

// explicitLayouts are tried in order; date-times are reduced to their calendar date.
var explicitLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDateField decodes a raw field. An empty field means the same as "C".
func ParseDateField(raw string) (DateField, error) {
	switch raw {
	case CodeUnavailable:
		return DateField{Kind: DateUnavailable}, nil
	case CodeCurrent, "":
		return DateField{Kind: DateCurrent}, nil
	}

	for _, layout := range explicitLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateField{Kind: DateExplicit, Date: calendarDate(t)}, nil
		}
	}
	return DateField{}, fmt.Errorf("%w: %q", ErrInvalidDateString, raw)
}

// Resolve turns the field into a date for the bulletin month it belongs to.
// Unavailable resolves to null, never to the reference date.
func (f DateField) Resolve(owner Month) sql.NullTime {
	switch f.Kind {
	case DateUnavailable:
		return sql.NullTime{}
	case DateExplicit:
		return sql.NullTime{Time: f.Date, Valid: true}
	default:
		return sql.NullTime{Time: owner.Date(), Valid: true}
	}
}

// ResolveField parses raw and resolves it against the month named by label.
// The label is only consulted for the current/empty case.
func ResolveField(raw, label string) (sql.NullTime, error) {
	field, err := ParseDateField(raw)
	if err != nil {
		return sql.NullTime{}, err
	}
	if field.Kind != DateCurrent {
		return field.Resolve(Month{}), nil
	}
	owner, err := ParseMonth(label)
	if err != nil {
		return sql.NullTime{}, err
	}
	return field.Resolve(owner), nil
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

