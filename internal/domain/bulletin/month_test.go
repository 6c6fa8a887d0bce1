package bulletin

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthTable_Parse(t *testing.T) {
	t.Run("Should round trip every month and year", func(t *testing.T) {
		for _, year := range []int{1999, 2022, 2024, 2031} {
			for i, name := range English {
				label := fmt.Sprintf("%s %d", name, year)
				m, err := ParseMonth(label)
				require.NoError(t, err, label)
				d := m.Date()
				assert.Equal(t, year, d.Year())
				assert.Equal(t, time.Month(i+1), d.Month())
				assert.Equal(t, 1, d.Day())
				assert.Equal(t, label, m.String())
			}
		}
	})

	t.Run("Should resolve to midnight UTC", func(t *testing.T) {
		m, err := ParseMonth("March 2024")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), m.Date())
	})

	t.Run("Should reject malformed labels", func(t *testing.T) {
		for _, label := range []string{"Smarch 2024", "march 2024", "Mar 2024", "March", "", "March twenty", "March 0", "March -5", "March 2024 extra"} {
			_, err := ParseMonth(label)
			assert.ErrorIs(t, err, ErrInvalidMonthLabel, label)
		}
	})

	t.Run("Should use an injected table", func(t *testing.T) {
		table := English
		table[0] = "Janvier"
		m, err := table.Parse("Janvier 2023")
		require.NoError(t, err)
		assert.Equal(t, time.January, m.Month)
		assert.Equal(t, -1, table.Index("January"))
	})
}

func TestMonth_Before(t *testing.T) {
	jan := Month{Year: 2023, Month: time.January}
	feb := Month{Year: 2023, Month: time.February}
	dec := Month{Year: 2022, Month: time.December}

	assert.True(t, jan.Before(feb))
	assert.False(t, feb.Before(jan))
	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(jan))
}

func TestMonth_String(t *testing.T) {
	assert.Equal(t, "March 2024", Month{Year: 2024, Month: time.March}.String())
	assert.Equal(t, "Month(0) 0", Month{}.String())
	assert.Equal(t, "Month(13) 2024", Month{Year: 2024, Month: 13}.String())
}
