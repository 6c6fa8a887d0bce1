package chart

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"visa_bulletin_chart/internal/domain/bulletin"
)

const displayFormat = "Jan 2, 2006"

// FormatDate renders a date the way tooltips show it ("Mar 1, 2024"). Null is empty.
func FormatDate(d sql.NullTime) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(displayFormat)
}

// FinalActionLabel describes the final action point, including the gap when there is one.
func FinalActionLabel(p bulletin.Point) string {
	var b strings.Builder
	b.WriteString("Final Action: ")
	b.WriteString(FormatDate(p.FinalActionDate))
	if p.Gap.Days.Valid {
		fmt.Fprintf(&b, " (Gap: %d days", p.Gap.Days.Int64)
		if p.Gap.Label != "" {
			fmt.Fprintf(&b, ", ~%s", p.Gap.Label)
		}
		b.WriteString(")")
	}
	return b.String()
}

func FilingLabel(p bulletin.Point) string {
	return "Dates for Filing: " + FormatDate(p.FilingDate)
}

func ReferenceLabel(p bulletin.Point) string {
	return "Reference: " + FormatDate(sql.NullTime{Time: p.ReferenceDate, Valid: true})
}

// Tooltip returns the three labels for the point at idx, in the order the chart lists its tracks.
func Tooltip(s bulletin.Series, idx int) ([]string, error) {
	if idx < 0 || idx >= s.Len() {
		return nil, fmt.Errorf("point index %d out of range [0,%d)", idx, s.Len())
	}
	p := s.Points[idx]
	return []string{ReferenceLabel(p), FinalActionLabel(p), FilingLabel(p)}, nil
}

// AxisBounds parses the configured axis and marker dates ("2006-01-02"); empty values stay zero.
func AxisBounds(min, max, marker string) (Options, error) {
	var opts Options
	var err error
	if opts.AxisMin, err = parseOptional(min); err != nil {
		return Options{}, fmt.Errorf("axis min: %w", err)
	}
	if opts.AxisMax, err = parseOptional(max); err != nil {
		return Options{}, fmt.Errorf("axis max: %w", err)
	}
	if opts.Marker, err = parseOptional(marker); err != nil {
		return Options{}, fmt.Errorf("marker: %w", err)
	}
	return opts, nil
}

func parseOptional(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
