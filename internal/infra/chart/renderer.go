// internal/infra/chart/renderer.go
package chart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"visa_bulletin_chart/internal/domain/bulletin"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	tickStepMonths = 3
	tickFormat     = "Jan 2006"
	markerFormat   = "01/02/2006"
)

var (
	colorDiagonal    = drawing.Color{R: 0x88, G: 0x88, B: 0x88, A: 255}
	colorFinalAction = drawing.Color{R: 0x4C, G: 0xAF, B: 0x50, A: 255}
	colorFiling      = drawing.Color{R: 0x21, G: 0x96, B: 0xF3, A: 255}
	colorGrid        = drawing.Color{R: 180, G: 180, B: 180, A: 46}
	colorMarker      = drawing.Color{R: 128, G: 128, B: 128, A: 255}
)

// ErrNothingToRender is returned when neither the options nor the series give an axis range.
var ErrNothingToRender = errors.New("nothing to render")

// Options controls the chart layout. Zero AxisMin/AxisMax derive the range from the data;
// a zero Marker disables the horizontal marker line.
type Options struct {
	Title   string
	Width   int
	Height  int
	AxisMin time.Time
	AxisMax time.Time
	Marker  time.Time
}

// Renderer draws a bulletin series as a PNG: the Y = X reference diagonal and the
// final action and dates-for-filing tracks on time axes.
type Renderer struct {
	opts Options
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render writes the PNG for s to w.
func (r *Renderer) Render(ctx context.Context, s bulletin.Series, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	min, max, ok := r.axisRange(s)
	if !ok {
		return ErrNothingToRender
	}

	axisRange := &gochart.ContinuousRange{Min: gochart.TimeToFloat64(min), Max: gochart.TimeToFloat64(max)}
	ticks := monthTicks(min, max, tickStepMonths)

	series := []gochart.Series{
		gochart.TimeSeries{
			Name:    "Y = X",
			XValues: []time.Time{min, max},
			YValues: []float64{gochart.TimeToFloat64(min), gochart.TimeToFloat64(max)},
			Style:   gochart.Style{StrokeColor: colorDiagonal, StrokeWidth: 2},
		},
	}
	refs := s.ReferenceDates()
	if ts, ok := track("Final Action Date", refs, s.FinalActionDates(), colorFinalAction); ok {
		series = append(series, ts)
	}
	if ts, ok := track("Dates for Filing", refs, s.FilingDates(), colorFiling); ok {
		series = append(series, ts)
	}
	if !r.opts.Marker.IsZero() {
		y := gochart.TimeToFloat64(r.opts.Marker)
		series = append(series,
			gochart.TimeSeries{
				Name:    "Marker",
				XValues: []time.Time{min, max},
				YValues: []float64{y, y},
				Style:   gochart.Style{StrokeColor: colorMarker, StrokeWidth: 2, StrokeDashArray: []float64{6, 6}},
			},
			gochart.AnnotationSeries{
				Annotations: []gochart.Value2{{
					XValue: gochart.TimeToFloat64(min),
					YValue: y,
					Label:  r.opts.Marker.Format(markerFormat),
				}},
			},
		)
	}

	ch := gochart.Chart{
		Title:      r.opts.Title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Range:          axisRange,
			Ticks:          ticks,
			GridMajorStyle: gochart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: axisRange.Min, Max: axisRange.Max},
			Ticks:          ticks,
			GridMajorStyle: gochart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
		},
		Series: series,
	}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// axisRange returns the configured bounds, filling unset ends from the data.
func (r *Renderer) axisRange(s bulletin.Series) (min, max time.Time, ok bool) {
	min, max = r.opts.AxisMin, r.opts.AxisMax
	if min.IsZero() || max.IsZero() {
		dataMin, dataMax, found := dataRange(s)
		if !found {
			return time.Time{}, time.Time{}, false
		}
		if min.IsZero() {
			min = dataMin.AddDate(0, -1, 0)
		}
		if max.IsZero() {
			max = dataMax.AddDate(0, 1, 0)
		}
	}
	if !max.After(min) {
		return time.Time{}, time.Time{}, false
	}
	return min, max, true
}

func dataRange(s bulletin.Series) (min, max time.Time, ok bool) {
	visit := func(t time.Time) {
		if !ok || t.Before(min) {
			min = t
		}
		if !ok || t.After(max) {
			max = t
		}
		ok = true
	}
	for _, p := range s.Points {
		visit(p.ReferenceDate)
		if p.FinalActionDate.Valid {
			visit(p.FinalActionDate.Time)
		}
		if p.FilingDate.Valid {
			visit(p.FilingDate.Time)
		}
	}
	return min, max, ok
}

// track plots the non-null dates of one track against their bulletin month.
// Unavailable months are left out rather than drawn on the diagonal.
func track(name string, refs []time.Time, dates []sql.NullTime, color drawing.Color) (gochart.TimeSeries, bool) {
	var xs []time.Time
	var ys []float64
	for i, d := range dates {
		if !d.Valid {
			continue
		}
		xs = append(xs, refs[i])
		ys = append(ys, gochart.TimeToFloat64(d.Time))
	}
	if len(xs) == 0 {
		return gochart.TimeSeries{}, false
	}
	if len(xs) == 1 {
		// go-chart needs at least two X values per series
		xs = append(xs, xs[0].Add(time.Second))
		ys = append(ys, ys[0])
	}
	return gochart.TimeSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
			DotColor:    color,
			DotWidth:    4,
		},
	}, true
}

// monthTicks returns a tick every step months from the first month start at or after min.
func monthTicks(min, max time.Time, step int) []gochart.Tick {
	start := time.Date(min.Year(), min.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start.Before(min) {
		start = start.AddDate(0, 1, 0)
	}
	var ticks []gochart.Tick
	for t := start; !t.After(max); t = t.AddDate(0, step, 0) {
		ticks = append(ticks, gochart.Tick{Value: gochart.TimeToFloat64(t), Label: t.Format(tickFormat)})
	}
	return ticks
}
