package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"visa_bulletin_chart/internal/domain/bulletin"
)

// ConvertBulletinDate rewrites the bulletin table format (01FEB16 or 01FEB2023) as
// YYYY-MM-DD. Codes, empty values and anything it does not recognize come back unchanged.
func ConvertBulletinDate(raw string) string {
	if raw == "" || raw == bulletin.CodeCurrent || raw == bulletin.CodeUnavailable {
		return raw
	}

	var year string
	switch len(raw) {
	case 7:
		year = "20" + raw[5:]
	case 9:
		year = raw[5:]
	default:
		return raw
	}
	day, abbr := raw[:2], raw[2:5]

	month := 0
	for i, name := range bulletin.English {
		if strings.EqualFold(name[:3], abbr) {
			month = i + 1
			break
		}
	}
	if month == 0 || !digits(day) || !digits(year) {
		return raw
	}
	return fmt.Sprintf("%s-%02d-%s", year, month, day)
}

func digits(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil && !strings.ContainsAny(s, "+-")
}
