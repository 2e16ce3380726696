package plot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/gotutor/agent/tabular/qtable"
	"github.com/samuelfneumann/gotutor/environment/gridworld"
	"github.com/samuelfneumann/gotutor/metrics"
)

// contains fails the test if the rendered file does not mention every
// wanted string
func contains(t *testing.T, filename string, wants ...string) {
	t.Helper()

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("could not read %v: %v", filename, err)
	}

	html := string(data)
	for _, want := range wants {
		if !strings.Contains(html, want) {
			t.Errorf("%v does not mention %q", filename, want)
		}
	}
}

func TestLearningCurves(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.html")

	err := LearningCurves(filename,
		Series{Name: "guided", Values: []float64{-10, -5, 7}},
		Series{Name: "unadvised", Values: []float64{-30, -20, -10}},
	)
	if err != nil {
		t.Fatalf("could not render: %v", err)
	}

	contains(t, filename, "guided", "unadvised", "Return per episode")
}

func TestSuccessCurves(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "success.html")

	err := SuccessCurves(filename, 30,
		Series{Name: "guided", Values: []float64{0, 0.5, 1, 1}},
	)
	if err != nil {
		t.Fatalf("could not render: %v", err)
	}

	contains(t, filename, "guided", "Success rate", "30")
}

func TestTeacherComparison(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "comparison.html")

	curves := []SummaryCurve{{
		Name: "avail 0.5",
		Summaries: []metrics.Summary{
			{AvgReturn: -10, SuccessRate: 0.5, LearningSpeed: 80},
			{AvgReturn: 5, SuccessRate: 1, LearningSpeed: 20},
		},
	}}
	baseline := &metrics.Summary{
		AvgReturn:     -20,
		SuccessRate:   0.4,
		LearningSpeed: -1,
	}

	err := TeacherComparison(filename, []float64{0.5, 1}, curves, baseline)
	if err != nil {
		t.Fatalf("could not render: %v", err)
	}

	contains(t, filename, "avail 0.5", "baseline", "Average return",
		"Success rate", "Learning speed")
}

func TestTeacherComparisonRejectsMismatch(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "comparison.html")

	curves := []SummaryCurve{{
		Name:      "avail 1",
		Summaries: make([]metrics.Summary, 3),
	}}
	if err := TeacherComparison(filename, []float64{0.5, 1}, curves,
		nil); err == nil {
		t.Error("expected an error for mismatched curve lengths")
	}

	if err := TeacherComparison(filename, nil, nil, nil); err == nil {
		t.Error("expected an error with no accuracies")
	}
}

func TestValueHeatMap(t *testing.T) {
	config := gridworld.Config{
		Rows:       3,
		Cols:       3,
		Obstacles:  []gridworld.Cell{{Row: 1, Col: 1}},
		Goal:       gridworld.Cell{Row: 2, Col: 2},
		Start:      gridworld.Cell{Row: 0, Col: 0},
		StepReward: -1,
		GoalReward: 10,
		Discount:   0.95,
	}
	world, _, err := config.Create(1)
	if err != nil {
		t.Fatalf("could not create environment: %v", err)
	}

	table, err := qtable.New(gridworld.NumActions, 9)
	if err != nil {
		t.Fatalf("could not create table: %v", err)
	}
	table.Set(0, gridworld.Down, 2.5)

	filename := filepath.Join(t.TempDir(), "values.html")
	if err := ValueHeatMap(filename, "State values", world,
		table); err != nil {
		t.Fatalf("could not render: %v", err)
	}

	contains(t, filename, "State values", "2.5")
}
