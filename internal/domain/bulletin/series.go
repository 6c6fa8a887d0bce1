// internal/domain/bulletin/series.go
package bulletin

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

const (
	daysPerYear  = 365
	daysPerMonth = 30.44 // average month length
)

// GapMetric is the lag between the final action cutoff and the bulletin month.
type GapMetric struct {
	Days  sql.NullInt64
	Label string // "1 year, 6 months"; empty when there is no gap
}

// Point is one entry of the plotted series.
type Point struct {
	NormalizedRecord
	Gap GapMetric
}

// Series is the chronologically ordered output of BuildSeries.
type Series struct {
	Points []Point
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Points) }

// Labels returns the month labels in series order.
func (s Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Month
	}
	return out
}

// ReferenceDates returns the diagonal values, index-aligned with the points.
func (s Series) ReferenceDates() []time.Time {
	out := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.ReferenceDate
	}
	return out
}

// FinalActionDates returns the final action track, index-aligned with the points.
func (s Series) FinalActionDates() []sql.NullTime {
	out := make([]sql.NullTime, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.FinalActionDate
	}
	return out
}

// FilingDates returns the dates-for-filing track, index-aligned with the points.
func (s Series) FilingDates() []sql.NullTime {
	out := make([]sql.NullTime, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.FilingDate
	}
	return out
}

// Latest returns the most recent bulletin. ok is false for an empty series.
func (s Series) Latest() (p Point, ok bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// SortRecords returns a copy of records ordered by (year, month). The sort is stable.
// A record whose month cannot be resolved fails the whole sort.
func SortRecords(records []Record) ([]Record, error) {
	type keyed struct {
		month  Month
		record Record
	}

	items := make([]keyed, len(records))
	for i, r := range records {
		m, err := ParseMonth(r.Month)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items[i] = keyed{month: m, record: r}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].month.Before(items[j].month)
	})

	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it.record
	}
	return out, nil
}

// BuildSeries orders the records and derives the gap for each one.
// Either every record is normalized or an error is returned and no series is produced.
func BuildSeries(records []Record) (Series, error) {
	ordered, err := SortRecords(records)
	if err != nil {
		return Series{}, err
	}

	points := make([]Point, 0, len(ordered))
	for _, r := range ordered {
		n, err := Normalize(r)
		if err != nil {
			return Series{}, err
		}
		days := GapDays(n.FinalActionDate, sql.NullTime{Time: n.ReferenceDate, Valid: true})
		points = append(points, Point{
			NormalizedRecord: n,
			Gap:              GapMetric{Days: days, Label: ApproximateLabel(days)},
		})
	}
	return Series{Points: points}, nil
}

// GapDays returns the absolute whole-day distance between a and b, rounded so
// that a daylight saving hour cannot change the count. Null if either is null.
func GapDays(a, b sql.NullTime) sql.NullInt64 {
	if !a.Valid || !b.Valid {
		return sql.NullInt64{}
	}
	// Unix seconds, not Time.Sub: a Duration saturates after about 292 years.
	days := math.Round(float64(a.Time.Unix()-b.Time.Unix()) / 86400)
	return sql.NullInt64{Int64: int64(math.Abs(days)), Valid: true}
}

// ApproximateLabel renders a day count as whole years and months.
// A positive gap shorter than a month is reported as "0 months".
func ApproximateLabel(days sql.NullInt64) string {
	if !days.Valid || days.Int64 == 0 {
		return ""
	}
	years := days.Int64 / daysPerYear
	months := int64(math.Floor(float64(days.Int64%daysPerYear) / daysPerMonth))

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if len(parts) == 0 {
		return "0 months"
	}
	return strings.Join(parts, ", ")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
