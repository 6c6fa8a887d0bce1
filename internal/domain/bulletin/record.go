// internal/domain/bulletin/record.go
package bulletin

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Record is one bulletin as supplied by the dataset. It is never modified.
type Record struct {
	Month          string // "March 2024"
	FinalAction    string // explicit date, "C", "U" or empty
	DatesForFiling string
}

// NormalizedRecord holds the resolved dates of a single bulletin.
type NormalizedRecord struct {
	Month           string
	ReferenceDate   time.Time
	FinalActionDate sql.NullTime // null when the track is unavailable
	FilingDate      sql.NullTime
}

// Source supplies bulletin records. Implementations own the data; callers only read it.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Normalize resolves the month and both date fields of r.
func Normalize(r Record) (NormalizedRecord, error) {
	month, err := ParseMonth(r.Month)
	if err != nil {
		return NormalizedRecord{}, err
	}

	finalAction, err := ParseDateField(r.FinalAction)
	if err != nil {
		return NormalizedRecord{}, fmt.Errorf("final action for %s: %w", r.Month, err)
	}
	filing, err := ParseDateField(r.DatesForFiling)
	if err != nil {
		return NormalizedRecord{}, fmt.Errorf("dates for filing for %s: %w", r.Month, err)
	}

	return NormalizedRecord{
		Month:           r.Month,
		ReferenceDate:   month.Date(),
		FinalActionDate: finalAction.Resolve(month),
		FilingDate:      filing.Resolve(month),
	}, nil
}
