package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"visa_bulletin_chart/internal/domain/bulletin"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []bulletin.Record
	err     error
}

func (f fakeSource) Load(context.Context) ([]bulletin.Record, error) {
	return f.records, f.err
}

type fakeRenderer struct {
	got bulletin.Series
	err error
}

func (f *fakeRenderer) Render(_ context.Context, s bulletin.Series, w io.Writer) error {
	f.got = s
	if f.err != nil {
		return f.err
	}
	_, err := w.Write([]byte("png"))
	return err
}

func fakeTooltip(s bulletin.Series, idx int) ([]string, error) {
	p := s.Points[idx]
	return []string{"gap " + p.Gap.Label}, nil
}

func newTestLogger() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	return logrus.NewEntry(l), hook
}

var sampleRecords = []bulletin.Record{
	{Month: "March 2024", FinalAction: "C", DatesForFiling: "U"},
	{Month: "January 2022", FinalAction: "2020-06-15", DatesForFiling: "2021-01-01"},
}

func TestChartService_Series(t *testing.T) {
	t.Run("Should build an ordered series", func(t *testing.T) {
		log, _ := newTestLogger()
		svc := NewChartService(fakeSource{records: sampleRecords}, &fakeRenderer{}, fakeTooltip, log)
		s, err := svc.Series(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"January 2022", "March 2024"}, s.Labels())
	})

	t.Run("Should surface normalization errors", func(t *testing.T) {
		log, _ := newTestLogger()
		svc := NewChartService(fakeSource{records: []bulletin.Record{{Month: "Smarch 2024"}}}, &fakeRenderer{}, fakeTooltip, log)
		_, err := svc.Series(context.Background())
		assert.ErrorIs(t, err, bulletin.ErrInvalidMonthLabel)
	})

	t.Run("Should surface load errors", func(t *testing.T) {
		log, _ := newTestLogger()
		boom := errors.New("boom")
		svc := NewChartService(fakeSource{err: boom}, &fakeRenderer{}, fakeTooltip, log)
		_, err := svc.Series(context.Background())
		assert.ErrorIs(t, err, boom)
	})
}

func TestChartService_SeriesOrEmpty(t *testing.T) {
	t.Run("Should degrade to an empty series and log", func(t *testing.T) {
		log, hook := newTestLogger()
		records := append([]bulletin.Record{{Month: "January 2024", FinalAction: "bad"}}, sampleRecords...)
		svc := NewChartService(fakeSource{records: records}, &fakeRenderer{}, fakeTooltip, log)

		s := svc.SeriesOrEmpty(context.Background())
		assert.Equal(t, 0, s.Len())
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	})
}

func TestChartService_RenderPNG(t *testing.T) {
	t.Run("Should pass the series to the renderer", func(t *testing.T) {
		log, _ := newTestLogger()
		r := &fakeRenderer{}
		svc := NewChartService(fakeSource{records: sampleRecords}, r, fakeTooltip, log)

		var buf bytes.Buffer
		require.NoError(t, svc.RenderPNG(context.Background(), &buf))
		assert.Equal(t, "png", buf.String())
		assert.Equal(t, 2, r.got.Len())
	})

	t.Run("Should render an empty chart when the dataset is broken", func(t *testing.T) {
		log, _ := newTestLogger()
		r := &fakeRenderer{}
		svc := NewChartService(fakeSource{records: []bulletin.Record{{Month: "Smarch 2024"}}}, r, fakeTooltip, log)

		var buf bytes.Buffer
		require.NoError(t, svc.RenderPNG(context.Background(), &buf))
		assert.Equal(t, 0, r.got.Len())
	})

	t.Run("Should return renderer errors", func(t *testing.T) {
		log, _ := newTestLogger()
		boom := errors.New("boom")
		svc := NewChartService(fakeSource{records: sampleRecords}, &fakeRenderer{err: boom}, fakeTooltip, log)
		assert.ErrorIs(t, svc.RenderPNG(context.Background(), io.Discard), boom)
	})
}

func TestChartService_LatestSummary(t *testing.T) {
	t.Run("Should describe the most recent bulletin", func(t *testing.T) {
		log, _ := newTestLogger()
		svc := NewChartService(fakeSource{records: sampleRecords}, &fakeRenderer{}, fakeTooltip, log)
		got, err := svc.LatestSummary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "March 2024\ngap ", got)
	})

	t.Run("Should report an empty dataset", func(t *testing.T) {
		log, _ := newTestLogger()
		svc := NewChartService(fakeSource{}, &fakeRenderer{}, fakeTooltip, log)
		_, err := svc.LatestSummary(context.Background())
		assert.ErrorIs(t, err, ErrNoBulletins)
	})
}
