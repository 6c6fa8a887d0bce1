package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"visa_bulletin_chart/internal/domain/bulletin"

	"github.com/sirupsen/logrus"
)

// Application-level errors for the chart service
var ErrNoBulletins = errors.New("dataset holds no bulletins")

// Renderer draws a series. The chart infrastructure implements it.
type Renderer interface {
	Render(ctx context.Context, s bulletin.Series, w io.Writer) error
}

// TooltipFunc returns the display lines for the point at idx.
type TooltipFunc func(s bulletin.Series, idx int) ([]string, error)

type ChartService struct {
	source   bulletin.Source
	renderer Renderer
	tooltip  TooltipFunc
	logger   *logrus.Entry
}

func NewChartService(source bulletin.Source, renderer Renderer, tooltip TooltipFunc, logger *logrus.Entry) *ChartService {
	return &ChartService{
		source:   source,
		renderer: renderer,
		tooltip:  tooltip,
		logger:   logger,
	}
}

// Series loads the dataset and builds the ordered series. Any bad record fails the call.
func (s *ChartService) Series(ctx context.Context) (bulletin.Series, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		return bulletin.Series{}, fmt.Errorf("failed to load bulletins: %w", err)
	}

	series, err := bulletin.BuildSeries(records)
	if err != nil {
		return bulletin.Series{}, fmt.Errorf("failed to build series from %d bulletins: %w", len(records), err)
	}
	s.logger.WithField("points", series.Len()).Debug("Series built")
	return series, nil
}

// SeriesOrEmpty is Series for callers that would rather draw an empty chart than fail.
// The failure is logged; no record is ever dropped on its own.
func (s *ChartService) SeriesOrEmpty(ctx context.Context) bulletin.Series {
	series, err := s.Series(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Could not build bulletin series, falling back to an empty chart")
		return bulletin.Series{}
	}
	return series
}

// RenderPNG builds the series and writes the chart to w.
func (s *ChartService) RenderPNG(ctx context.Context, w io.Writer) error {
	series := s.SeriesOrEmpty(ctx)
	if err := s.renderer.Render(ctx, series, w); err != nil {
		s.logger.WithError(err).Error("Failed to render chart")
		return err
	}
	s.logger.WithField("points", series.Len()).Info("Chart rendered")
	return nil
}

// LatestSummary describes the most recent bulletin using the tooltip lines.
func (s *ChartService) LatestSummary(ctx context.Context) (string, error) {
	series, err := s.Series(ctx)
	if err != nil {
		return "", err
	}
	latest, ok := series.Latest()
	if !ok {
		return "", ErrNoBulletins
	}

	lines, err := s.tooltip(series, series.Len()-1)
	if err != nil {
		return "", err
	}
	return latest.Month + "\n" + strings.Join(lines, "\n"), nil
}
