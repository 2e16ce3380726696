package teacher

import "fmt"

// Config describes how a Teacher behaves.
//
// Availability is the probability that the teacher intervenes on any
// single training step. Accuracy is the probability that an
// intervention advises the optimal action; otherwise the intervention
// advises an action drawn uniformly at random from the non-optimal
// actions.
type Config struct {
	Availability float64
	Accuracy     float64
}

// Validate returns an error describing the first problem found with
// the Config, or nil if the Config describes a legal Teacher
func (c Config) Validate() error {
	if c.Availability < 0 || c.Availability > 1 {
		return fmt.Errorf("availability must be in [0, 1], got %v",
			c.Availability)
	}
	if c.Accuracy < 0 || c.Accuracy > 1 {
		return fmt.Errorf("accuracy must be in [0, 1], got %v", c.Accuracy)
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("Teacher | Availability: %v  |  Accuracy: %v",
		c.Availability, c.Accuracy)
}
