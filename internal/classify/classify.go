package classify

import (
	"errors"
	"fmt"
	"sort"

	"github.com/drakos74/som-explain/internal/data"
	"github.com/drakos74/som-explain/internal/som"
)

var (
	ErrNoOccupants = errors.New("map has no occupants")
	ErrNoTarget    = errors.New("label has no target")
)

// Classifier assigns to a vector the target of the majority label of its winning cell.
type Classifier struct {
	occupants som.Occupants
	key       data.LabelKey
	fallback  string
}

// New creates a classifier from the cell occupants of a trained map.
// Every occupant label must be present in the key.
func New(occupants som.Occupants, key data.LabelKey) (*Classifier, error) {
	if len(occupants) == 0 {
		return nil, ErrNoOccupants
	}
	total := occupants.Total()
	for l := range total {
		if _, ok := key[l]; !ok {
			return nil, fmt.Errorf("'%s': %w", l, ErrNoTarget)
		}
	}
	return &Classifier{
		occupants: occupants,
		key:       key,
		fallback:  majority(total),
	}, nil
}

// Default is the global majority label, used for cells that were never occupied.
func (c *Classifier) Default() string {
	return c.fallback
}

// Label returns the majority label of the given cell.
func (c *Classifier) Label(cell som.Cell) string {
	if labels, ok := c.occupants[cell]; ok && len(labels) > 0 {
		return majority(labels)
	}
	return c.fallback
}

// Classify returns the target of the majority label in the winning cell of x.
func (c *Classifier) Classify(m *som.Map, x []float64) (int, error) {
	cell, err := m.Winner(x)
	if err != nil {
		return 0, fmt.Errorf("could not find winner: %w", err)
	}
	return c.key[c.Label(cell)], nil
}

// ClassifyAll classifies each of the given vectors.
func (c *Classifier) ClassifyAll(m *som.Map, xx [][]float64) ([]int, error) {
	result := make([]int, len(xx))
	for i, x := range xx {
		y, err := c.Classify(m, x)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		result[i] = y
	}
	return result, nil
}

// Error is the fraction of predictions that do not match the actual targets.
func Error(predicted, actual []int) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("%d predictions for %d targets: %w", len(predicted), len(actual), data.ErrMismatch)
	}
	if len(actual) == 0 {
		return 0, data.ErrEmpty
	}
	var wrong int
	for i, p := range predicted {
		if p != actual[i] {
			wrong++
		}
	}
	return float64(wrong) / float64(len(actual)), nil
}

// majority returns the most common label, breaking ties by label order.
func majority(counts map[string]int) string {
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	var best string
	max := -1
	for _, l := range labels {
		if counts[l] > max {
			max = counts[l]
			best = l
		}
	}
	return best
}
