package explain

import (
	"errors"
	"fmt"

	"github.com/drakos74/som-explain/internal/som"
)

var ErrOptions = errors.New("invalid search options")

// Objective defines the additional criterion the search optimises for,
// next to the classification error.
type Objective string

const (
	// Occupancy keeps growing the map while the occupancy is above the threshold.
	Occupancy Objective = "occupancy"
	// None only looks at the classification error.
	None Objective = "none"
)

// Options are the parameters of the map size search.
type Options struct {
	Width               int              `json:"width"`
	Objective           Objective        `json:"objective"`
	OccupancyThreshold  float64          `json:"occupancy_threshold"`
	MaxIterations       int              `json:"max_iterations"`
	Step                int              `json:"step"`
	SOMIterations       int              `json:"som_iterations"`
	ClassErrorThreshold float64          `json:"class_error_threshold"`
	Sigma               float64          `json:"sigma"`
	LearningRate        float64          `json:"learning_rate"`
	Neighborhood        som.Neighborhood `json:"neighborhood"`
	Init                som.Init         `json:"init"`
	Seed                int64            `json:"seed"`
	Verbose             bool             `json:"verbose"`
	// ForceGrowth always grows the initial map at least once
	// and leaves it out of the history.
	ForceGrowth         bool             `json:"force_growth"`
}

// DefaultOptions returns the default search parameters.
func DefaultOptions() Options {
	return Options{
		Width:               20,
		Objective:           Occupancy,
		OccupancyThreshold:  0.05,
		MaxIterations:       100,
		Step:                10,
		SOMIterations:       10000,
		ClassErrorThreshold: 0.1,
		Sigma:               1.5,
		LearningRate:        0.5,
		Neighborhood:        som.Gaussian,
		Init:                som.PCA,
	}
}

func (o Options) validate() error {
	if o.Width < 2 {
		return fmt.Errorf("width %d must be at least 2: %w", o.Width, ErrOptions)
	}
	if o.Step <= 0 {
		return fmt.Errorf("step %d: %w", o.Step, ErrOptions)
	}
	if o.SOMIterations <= 0 {
		return fmt.Errorf("som iterations %d: %w", o.SOMIterations, ErrOptions)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("max iterations %d: %w", o.MaxIterations, ErrOptions)
	}
	switch o.Objective {
	case Occupancy, None:
	default:
		return fmt.Errorf("objective '%s': %w", o.Objective, ErrOptions)
	}
	return nil
}

// config returns the map config for the given width.
// The height is always half the width.
func (o Options) config(width int) som.Config {
	return som.Config{
		Width:        width,
		Height:       width / 2,
		Sigma:        o.Sigma,
		LearningRate: o.LearningRate,
		Neighborhood: o.Neighborhood,
		Seed:         o.Seed,
	}
}
