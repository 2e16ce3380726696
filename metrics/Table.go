package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// Header returns the column names of the rows written by WriteTable
func Header() []string {
	return []string{"name", "avg_return", "success_rate", "avg_steps",
		"avg_advice", "learning_speed"}
}

// Row returns the Summary formatted as CSV fields
func (s Summary) Row(name string) []string {
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return []string{name, format(s.AvgReturn), format(s.SuccessRate),
		format(s.AvgSteps), format(s.AvgAdvice), format(s.LearningSpeed)}
}

// WriteTable writes one named Summary per row as CSV, with names[i]
// labelling summaries[i]
func WriteTable(w io.Writer, names []string, summaries []Summary) error {
	if len(names) != len(summaries) {
		return fmt.Errorf("writeTable: %d names for %d summaries",
			len(names), len(summaries))
	}

	out := csv.NewWriter(w)
	if err := out.Write(Header()); err != nil {
		return fmt.Errorf("writeTable: %v", err)
	}
	for i, s := range summaries {
		if err := out.Write(s.Row(names[i])); err != nil {
			return fmt.Errorf("writeTable: %v", err)
		}
	}

	out.Flush()
	return out.Error()
}
