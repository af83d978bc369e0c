// ABOUTME: BMI history line chart rendering with go-chart.
// ABOUTME: Produces PNG bytes or a decoded image for a person's ordered history.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	"github.com/harperreed/bmi/internal/models"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Chart canvas size in pixels (8x5 at 100 dpi).
const (
	Width  = 800
	Height = 500
)

// ErrNoPoints is returned when asked to draw an empty history.
var ErrNoPoints = errors.New("no history points to chart")

var (
	lineColor = drawing.ColorFromHex("2e7d32")
	// non-zero so go-chart does not swap in its default series colour
	noStroke = drawing.Color{R: 255, G: 255, B: 255, A: 0}
)

// Title is the heading drawn above a person's chart.
func Title(name string) string {
	return fmt.Sprintf("BMI History for %s", name)
}

// Build assembles the chart definition without rendering it.
func Build(name string, points []models.HistoryPoint) (gochart.Chart, error) {
	if len(points) == 0 {
		return gochart.Chart{}, ErrNoPoints
	}

	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.RecordedAt
		ys[i] = p.BMI
	}

	style := gochart.Style{
		StrokeColor: lineColor,
		StrokeWidth: 2,
		DotColor:    lineColor,
		DotWidth:    4,
	}

	// go-chart rejects a zero-width x range, so when every value shares one
	// instant the axis gets a minute either side and only the dots are drawn.
	var xRange gochart.Range
	if xs[0].Equal(xs[len(xs)-1]) {
		mid := float64(gochart.TimeToFloat64(xs[0]))
		pad := float64(time.Minute)
		xRange = &gochart.ContinuousRange{Min: mid - pad, Max: mid + pad}
		style.StrokeColor = noStroke
		style.DotWidth = 6
	}

	grid := gochart.Style{StrokeColor: gochart.ColorAlternateGray, StrokeWidth: 1}

	return gochart.Chart{
		Title:      Title(name),
		Width:      Width,
		Height:     Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 24, Left: 16, Right: 24, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           "Date",
			Range:          xRange,
			ValueFormatter: gochart.TimeValueFormatterWithFormat(dateLayout(xs)),
			TickStyle:      gochart.Style{TextRotationDegrees: 45},
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:           "BMI",
			Range:          yRange(ys),
			GridMajorStyle: grid,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: "BMI", XValues: xs, YValues: ys, Style: style},
		},
	}, nil
}

// Render writes the chart as PNG to w.
func Render(w io.Writer, name string, points []models.HistoryPoint) error {
	ch, err := Build(name, points)
	if err != nil {
		return err
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// RenderImage renders the chart and decodes it for on-screen display.
func RenderImage(name string, points []models.HistoryPoint) (image.Image, error) {
	var buf bytes.Buffer
	if err := Render(&buf, name, points); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

// yRange pads the data by one BMI unit on each side, on whole numbers.
func yRange(ys []float64) *gochart.ContinuousRange {
	lo, hi := ys[0], ys[0]
	for _, v := range ys[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return &gochart.ContinuousRange{Min: math.Floor(lo) - 1, Max: math.Ceil(hi) + 1}
}

// dateLayout picks tick labels from the span of the series.
func dateLayout(xs []time.Time) string {
	span := xs[len(xs)-1].Sub(xs[0])
	if span < 48*time.Hour {
		return "01-02 15:04"
	}
	return "2006-01-02"
}
