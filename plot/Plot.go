// Package plot renders training results as self-contained HTML charts
package plot

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Series is a named sequence of values indexed by training episode
type Series struct {
	Name   string
	Values []float64
}

// LearningCurves renders one line per series of the return earned in
// every training episode
func LearningCurves(filename string, series ...Series) error {
	line := newLine("Return per episode", "")
	line.SetXAxis(episodeLabels(longest(series)))
	for _, s := range series {
		line.AddSeries(s.Name, lineData(s.Values))
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := write(filename, page); err != nil {
		return fmt.Errorf("learningCurves: %v", err)
	}
	return nil
}

// SuccessCurves renders one line per series of a rolling success rate
// over training episodes. The window is only reported in the chart
// subtitle; the series are expected to hold already-smoothed rates.
func SuccessCurves(filename string, window int, series ...Series) error {
	subtitle := fmt.Sprintf("Rolling window of %d episodes", window)
	line := newLine("Success rate", subtitle)
	line.SetXAxis(episodeLabels(longest(series)))
	for _, s := range series {
		line.AddSeries(s.Name, lineData(s.Values))
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := write(filename, page); err != nil {
		return fmt.Errorf("successCurves: %v", err)
	}
	return nil
}

// newLine returns a line chart with the package's shared styling
func newLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)
	return line
}

// lineData converts values into chart points
func lineData(values []float64) []opts.LineData {
	items := make([]opts.LineData, len(values))
	for i, value := range values {
		items[i] = opts.LineData{Value: value}
	}
	return items
}

// episodeLabels returns the x axis labels for n episodes
func episodeLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}
	return labels
}

// longest returns the length of the longest series
func longest(series []Series) int {
	n := 0
	for _, s := range series {
		if len(s.Values) > n {
			n = len(s.Values)
		}
	}
	return n
}

// write renders a page of charts to filename
func write(filename string, page *components.Page) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create %v: %v", filename, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("could not render %v: %v", filename, err)
	}
	return nil
}
