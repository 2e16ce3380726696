package plot

import (
	"fmt"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/samuelfneumann/gotutor/metrics"
)

// SummaryCurve is a named sequence of run summaries over a shared set
// of teacher accuracies, one summary per accuracy
type SummaryCurve struct {
	Name      string
	Summaries []metrics.Summary
}

// TeacherComparison renders a page comparing guided runs against an
// unadvised baseline: the average return, success rate, and learning
// speed of each curve, plotted against teacher accuracy. The baseline,
// when given, is drawn as a constant line across all accuracies.
func TeacherComparison(filename string, accuracies []float64,
	curves []SummaryCurve, baseline *metrics.Summary) error {
	if len(accuracies) == 0 {
		return fmt.Errorf("teacherComparison: no accuracies to plot over")
	}
	for _, curve := range curves {
		if len(curve.Summaries) != len(accuracies) {
			return fmt.Errorf("teacherComparison: curve %q has %d summaries "+
				"for %d accuracies", curve.Name, len(curve.Summaries),
				len(accuracies))
		}
	}

	x := make([]string, len(accuracies))
	for i, accuracy := range accuracies {
		x[i] = strconv.FormatFloat(accuracy, 'g', -1, 64)
	}

	measures := []struct {
		title string
		value func(metrics.Summary) float64
	}{
		{"Average return", func(s metrics.Summary) float64 {
			return s.AvgReturn
		}},
		{"Success rate", func(s metrics.Summary) float64 {
			return s.SuccessRate
		}},
		{"Learning speed", func(s metrics.Summary) float64 {
			return s.LearningSpeed
		}},
	}

	page := components.NewPage()
	for _, measure := range measures {
		line := newLine(measure.title, "By teacher accuracy")
		line.SetXAxis(x)

		for _, curve := range curves {
			values := make([]float64, len(curve.Summaries))
			for i, summary := range curve.Summaries {
				values[i] = measure.value(summary)
			}
			line.AddSeries(curve.Name, lineData(values))
		}

		if baseline != nil {
			constant := make([]float64, len(x))
			for i := range constant {
				constant[i] = measure.value(*baseline)
			}
			line.AddSeries("baseline", lineData(constant))
		}

		page.AddCharts(line)
	}

	if err := write(filename, page); err != nil {
		return fmt.Errorf("teacherComparison: %v", err)
	}
	return nil
}
