package som

import (
	"fmt"
	"math/rand"

	"github.com/drakos74/go-ex-machina/xmath"
)

// Snapshot is the serialisable state of a trained map.
type Snapshot struct {
	Config  Config      `json:"config"`
	Dim     int         `json:"dim"`
	Weights [][]float64 `json:"weights"`
}

// Snapshot captures the current weights of the map.
func (m *Map) Snapshot() Snapshot {
	weights := make([][]float64, len(m.weights))
	for i, w := range m.weights {
		weights[i] = w.Copy()
	}
	return Snapshot{
		Config:  m.cfg,
		Dim:     m.dim,
		Weights: weights,
	}
}

// FromSnapshot restores a map from the given snapshot.
func FromSnapshot(s Snapshot) (*Map, error) {
	if err := s.Config.validate(); err != nil {
		return nil, err
	}
	if len(s.Weights) != s.Config.Width*s.Config.Height {
		return nil, fmt.Errorf("%d weights for a [%d,%d] map: %w", len(s.Weights), s.Config.Width, s.Config.Height, ErrDimension)
	}
	weights := make([]xmath.Vector, len(s.Weights))
	for i, w := range s.Weights {
		if len(w) != s.Dim {
			return nil, fmt.Errorf("node %d has %d weights instead of %d: %w", i, len(w), s.Dim, ErrDimension)
		}
		weights[i] = xmath.Vector(w).Copy()
	}
	return &Map{
		cfg:     s.Config,
		dim:     s.Dim,
		weights: weights,
		rnd:     rand.New(rand.NewSource(s.Config.Seed)),
	}, nil
}
