package agent

import (
	"github.com/samuelfneumann/gotutor/environment"
	"golang.org/x/exp/rand"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes. The
	// argument source provides all randomness the agent's policy will
	// consume, so that runs sharing a source are reproducible.
	CreateAgent(env environment.Environment, source rand.Source) (Agent,
		error)

	// ValidAgent returns whether the argument agent is valid for the
	// Config
	ValidAgent(Agent) bool

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent that the config describes
	Type() Type
}

// Type represents a type of agent that a Config can describe
type Type string

const (
	EGreedyQLearning Type = "EGreedyQLearning-Tabular"
	EGreedySarsa     Type = "EGreedySarsa-Tabular"
)
