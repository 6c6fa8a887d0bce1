package chart

import (
	"database/sql"
	"testing"
	"time"

	"visa_bulletin_chart/internal/domain/bulletin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTooltip(t *testing.T) {
	s := sampleSeries(t)

	t.Run("Should describe a lagging bulletin", func(t *testing.T) {
		lines, err := Tooltip(s, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Reference: Jan 1, 2022",
			"Final Action: Jun 15, 2020 (Gap: 565 days, ~1 year, 6 months)",
			"Dates for Filing: Jan 1, 2021",
		}, lines)
	})

	t.Run("Should describe a current bulletin with an unavailable filing date", func(t *testing.T) {
		lines, err := Tooltip(s, 2)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Reference: Mar 1, 2024",
			"Final Action: Mar 1, 2024 (Gap: 0 days)",
			"Dates for Filing: ",
		}, lines)
	})

	t.Run("Should reject out of range indexes", func(t *testing.T) {
		_, err := Tooltip(s, 3)
		assert.Error(t, err)
		_, err = Tooltip(s, -1)
		assert.Error(t, err)
	})
}

func TestFinalActionLabel_Unavailable(t *testing.T) {
	p := bulletin.Point{NormalizedRecord: bulletin.NormalizedRecord{ReferenceDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)}}
	assert.Equal(t, "Final Action: ", FinalActionLabel(p))
	assert.Equal(t, "", FormatDate(sql.NullTime{}))
}

func TestAxisBounds(t *testing.T) {
	opts, err := AxisBounds("2021-10-01", "", "2025-01-13")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.October, 1, 0, 0, 0, 0, time.UTC), opts.AxisMin)
	assert.True(t, opts.AxisMax.IsZero())
	assert.Equal(t, "01/13/2025", opts.Marker.Format(markerFormat))

	_, err = AxisBounds("not-a-date", "", "")
	assert.Error(t, err)
}
