package plot

import (
	"fmt"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
)

// ValueHeatMap renders the value of the greedy action in every cell of
// a grid. Obstacle cells are drawn as missing data. States are indexed
// row major, matching the one-hot observations of a GridWorld.
func ValueHeatMap(filename, title string, world *gridworld.GridWorld,
	table *qtable.Table) error {
	rows, cols := world.Dims()

	blocked := make(map[gridworld.Cell]bool)
	for _, cell := range world.Obstacles() {
		blocked[cell] = true
	}

	// The chart's y axis grows upward, so rows are flipped to draw
	// row 0 at the top
	data := make([]opts.HeatMapData, 0, rows*cols)
	var values []float64
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			y := rows - 1 - r
			if blocked[gridworld.Cell{Row: r, Col: c}] {
				data = append(data, opts.HeatMapData{
					Value: [3]interface{}{c, y, "-"},
				})
				continue
			}

			_, value := table.BestAction(r*cols + c)
			values = append(values, value)
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{c, y, value},
			})
		}
	}

	// A flat table still needs a non-empty colour range
	min, max := floats.Min(values), floats.Max(values)
	if min == max {
		max = min + 1
	}

	colLabels := make([]string, cols)
	for c := range colLabels {
		colLabels[c] = strconv.Itoa(c)
	}
	rowLabels := make([]string, rows)
	for y := range rowLabels {
		rowLabels[y] = strconv.Itoa(rows - 1 - y)
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Theme: "shine"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rowLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: float32(min),
			Max: float32(max),
		}),
	)
	hm.SetXAxis(colLabels)
	hm.AddSeries("state values", data)

	page := components.NewPage()
	page.AddCharts(hm)
	if err := write(filename, page); err != nil {
		return fmt.Errorf("valueHeatMap: %v", err)
	}
	return nil
}
