package bulletin

import "errors"

var (
	// ErrInvalidMonthLabel is returned when a "Month Year" label cannot be resolved.
	ErrInvalidMonthLabel = errors.New("invalid month label")
	// ErrInvalidDateString is returned when an explicit date field cannot be parsed.
	ErrInvalidDateString = errors.New("invalid date string")
)
