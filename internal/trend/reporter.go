// Package trend renders the assessment log as a mood-over-time chart.
package trend

import (
	"fmt"
	"html"
	"io"
	"log/slog"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spacesedan/echomind/internal/models"
)

const (
	Title         = "Mood Trend Over Time"
	EmptyMessage  = "Not enough data to show mood trends yet."
	tooltipJS     = `function (p) { return p.value[0] + '<br/>' + p.seriesName + ': ' + p.value[1] + '%'; }`
	defaultWidth  = "900px"
	defaultHeight = "450px"
)

type Reporter struct {
	Width  string
	Height string
}

func NewReporter() *Reporter {
	return &Reporter{Width: defaultWidth, Height: defaultHeight}
}

// Point is one plotted entry.
type Point struct {
	Timestamp string
	Score     float64
}

// Series groups the history by label in models.Labels order, sorted by time.
// Labels without entries are omitted.
func Series(entries []models.LogEntry) map[models.Label][]Point {
	sorted := make([]models.LogEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	series := make(map[models.Label][]Point)
	for _, e := range sorted {
		series[e.SentimentLabel] = append(series[e.SentimentLabel], Point{
			Timestamp: e.Timestamp.Format(models.TimestampLayout),
			Score:     e.SentimentScore,
		})
	}
	return series
}

// Render writes a standalone HTML page. An empty history produces a short
// page holding EmptyMessage instead of a chart.
func (r *Reporter) Render(w io.Writer, entries []models.LogEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintf(w,
			"<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head>\n<body><p>%s</p></body></html>\n",
			html.EscapeString(Title), html.EscapeString(EmptyMessage))
		return err
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: Title,
			Width:     r.Width,
			Height:    r.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: Title}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts(tooltipJS),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date", Type: "time"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Sentiment Score (%)", Type: "value", Min: 0, Max: 100}),
	)

	series := Series(entries)
	for _, label := range models.Labels {
		points, ok := series[label]
		if !ok {
			continue
		}
		data := make([]opts.LineData, 0, len(points))
		for _, p := range points {
			data = append(data, opts.LineData{Value: []interface{}{p.Timestamp, p.Score}})
		}
		line.AddSeries(string(label), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	}

	slog.Debug("[TrendReporter] Rendering chart", slog.Int("entries", len(entries)), slog.Int("series", len(series)))
	return line.Render(w)
}
