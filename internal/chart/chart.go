// Package chart renders the visible rows of a dataset as a line chart
// with a log-compressed value axis.
package chart

import (
	"fmt"
	"io"
	"os"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/paceview/paceview/internal/dataset"
	"github.com/paceview/paceview/internal/scale"
)

// Options controls chart rendering.
type Options struct {
	Width  int
	Height int
	Format string // png or svg
	Title  string
}

// DefaultOptions returns the standard chart dimensions.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 576, Format: "png", Title: "AI progress multipliers"}
}

// RenderFile renders the dataset chart to a file.
func RenderFile(d *dataset.Dataset, path string, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := Render(d, f, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Render draws one line per header over the visible rows, with values
// mapped through the forward transform so large multipliers stay on
// screen. Hidden rows are excluded.
func Render(d *dataset.Dataset, w io.Writer, opts Options) error {
	rows := d.Visible()
	if len(rows) == 0 {
		return fmt.Errorf("no visible rows to chart")
	}
	if len(d.Headers) == 0 {
		return fmt.Errorf("no headers to chart")
	}

	series := buildSeries(d.Headers, rows)
	maxRaw := maxValue(rows)

	renderer := chart.PNG
	if opts.Format == "svg" {
		renderer = chart.SVG
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(dataset.DateLayout),
		},
		YAxis: chart.YAxis{
			Name:  "Multiplier",
			Range: &chart.ContinuousRange{Min: 0, Max: scale.Forward(maxRaw) * 1.05},
			Ticks: yTicks(maxRaw),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(renderer, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// buildSeries converts the rows into one time series per header, in
// declaration order so legend and colors stay stable.
func buildSeries(headers []string, rows []dataset.Row) []chart.Series {
	series := make([]chart.Series, 0, len(headers))
	for i, header := range headers {
		times := make([]time.Time, 0, len(rows))
		ys := make([]float64, 0, len(rows))
		for _, row := range rows {
			v, ok := row.Values[header]
			if !ok {
				continue
			}
			times = append(times, row.Date.Time)
			ys = append(ys, scale.Forward(v))
		}
		if len(times) == 0 {
			continue
		}
		// go-chart needs at least two points per series.
		if len(times) == 1 {
			times = append(times, times[0].AddDate(0, 0, 1))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{
			Name:    header,
			XValues: times,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2.0,
			},
		})
	}
	return series
}

// yTicks builds axis ticks at the anchor multipliers, labelled through
// the inverse transform.
func yTicks(maxRaw float64) []chart.Tick {
	values := scale.TickValues(maxRaw)
	ticks := make([]chart.Tick, 0, len(values))
	for _, v := range values {
		x := scale.Forward(v)
		ticks = append(ticks, chart.Tick{Value: x, Label: scale.FormatTick(x)})
	}
	return ticks
}

func maxValue(rows []dataset.Row) float64 {
	max := 1.0
	for _, row := range rows {
		for _, v := range row.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}
