package metrics

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tolerance float64 = 1e-10

// episodesFrom builds an episode list with the argument success flags
func episodesFrom(successes ...bool) []Episode {
	episodes := make([]Episode, len(successes))
	for i, s := range successes {
		episodes[i] = Episode{Number: i, Success: s}
	}
	return episodes
}

func TestRollingSuccess(t *testing.T) {
	episodes := episodesFrom(true, false, true, true, true, false)

	// Partial prefixes 1/1 and 1/2, then full windows: (t f t),
	// (f t t), (t t t), (t t f)
	rolling := RollingSuccess(episodes, 3)
	expected := []float64{1.0, 0.5, 2.0 / 3.0, 2.0 / 3.0, 1.0, 2.0 / 3.0}

	if len(rolling) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(rolling))
	}
	for i := range expected {
		if !scalar.EqualWithinAbs(rolling[i], expected[i], tolerance) {
			t.Errorf("episode %d: expected %v, got %v", i, expected[i],
				rolling[i])
		}
	}
}

func TestLearningSpeed(t *testing.T) {
	// The first full window of successes ends at episode 4
	episodes := episodesFrom(true, true, false, true, true, true, true)
	if got := LearningSpeed(episodes, 3, 1.0); got != 5 {
		t.Errorf("expected learning speed 5, got %d", got)
	}

	// A partial window must not qualify, even when every early episode
	// succeeds
	early := episodesFrom(true, true, false, false, false)
	if got := LearningSpeed(early, 3, 1.0); got != -1 {
		t.Errorf("expected learning speed -1, got %d", got)
	}

	// A lower target qualifies earlier
	if got := LearningSpeed(episodes, 3, 2.0/3.0); got != 2 {
		t.Errorf("expected learning speed 2, got %d", got)
	}
}

func TestSummarize(t *testing.T) {
	episodes := []Episode{
		{Number: 0, Return: -10, Steps: 10, Success: false, Advice: 2},
		{Number: 1, Return: 14, Steps: 6, Success: true, Advice: 4},
		{Number: 2, Return: 16, Steps: 4, Success: true, Advice: 0},
	}

	s := Summarize(episodes, 2, 1.0)
	if !scalar.EqualWithinAbs(s.AvgReturn, 20.0/3.0, tolerance) {
		t.Errorf("expected average return %v, got %v", 20.0/3.0, s.AvgReturn)
	}
	if !scalar.EqualWithinAbs(s.SuccessRate, 2.0/3.0, tolerance) {
		t.Errorf("expected success rate %v, got %v", 2.0/3.0, s.SuccessRate)
	}
	if !scalar.EqualWithinAbs(s.AvgSteps, 20.0/3.0, tolerance) {
		t.Errorf("expected average steps %v, got %v", 20.0/3.0, s.AvgSteps)
	}
	if !scalar.EqualWithinAbs(s.AvgAdvice, 2.0, tolerance) {
		t.Errorf("expected average advice 2, got %v", s.AvgAdvice)
	}
	if s.LearningSpeed != 2.0 {
		t.Errorf("expected learning speed 2, got %v", s.LearningSpeed)
	}

	empty := Summarize(nil, 2, 1.0)
	if empty.LearningSpeed != -1 {
		t.Errorf("expected learning speed -1 for empty run, got %v",
			empty.LearningSpeed)
	}
}

func TestSmoothed(t *testing.T) {
	xs := []float64{2, 4, 6, 8}
	smoothed := Smoothed(xs, 2)
	expected := []float64{2, 3, 5, 7}

	for i := range expected {
		if !scalar.EqualWithinAbs(smoothed[i], expected[i], tolerance) {
			t.Errorf("index %d: expected %v, got %v", i, expected[i],
				smoothed[i])
		}
	}
}

func TestExtractors(t *testing.T) {
	episodes := []Episode{
		{Number: 0, Return: -1, Steps: 3, Success: false, Advice: 1},
		{Number: 1, Return: 5, Steps: 2, Success: true, Advice: 0},
	}

	if got := Returns(episodes); got[0] != -1 || got[1] != 5 {
		t.Errorf("unexpected returns %v", got)
	}
	if got := Steps(episodes); got[0] != 3 || got[1] != 2 {
		t.Errorf("unexpected steps %v", got)
	}
	if got := Advice(episodes); got[0] != 1 || got[1] != 0 {
		t.Errorf("unexpected advice %v", got)
	}
	if got := Successes(episodes); got[0] || !got[1] {
		t.Errorf("unexpected successes %v", got)
	}
}

func TestWriteTable(t *testing.T) {
	summaries := []Summary{
		{AvgReturn: 1.5, SuccessRate: 0.5, AvgSteps: 12, AvgAdvice: 3,
			LearningSpeed: 40},
		{AvgReturn: -2, SuccessRate: 0, AvgSteps: 100, AvgAdvice: 0,
			LearningSpeed: -1},
	}

	var b strings.Builder
	err := WriteTable(&b, []string{"guided", "baseline"}, summaries)
	if err != nil {
		t.Fatalf("could not write table: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != strings.Join(Header(), ",") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "guided,1.5,0.5,12,3,40" {
		t.Errorf("unexpected row %q", lines[1])
	}
	if lines[2] != "baseline,-2,0,100,0,-1" {
		t.Errorf("unexpected row %q", lines[2])
	}

	if err := WriteTable(&b, []string{"one"}, summaries); err == nil {
		t.Error("expected error for mismatched names and summaries")
	}
}
