package classify

import (
	"testing"

	"github.com/drakos74/som-explain/internal/data"
	"github.com/drakos74/som-explain/internal/som"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMap(t *testing.T) *som.Map {
	m, err := som.FromSnapshot(som.Snapshot{
		Config:  som.DefaultConfig(4, 1),
		Dim:     1,
		Weights: [][]float64{{0}, {1}, {2}, {3}},
	})
	require.NoError(t, err)
	return m
}

func TestClassifier_Classify(t *testing.T) {
	m := newMap(t)
	occupants, err := m.LabelsMap(
		[][]float64{{0}, {0.1}, {0.2}, {1}, {1.1}, {2.9}, {0}},
		[]string{"x", "x", "y", "y", "z", "x", "x"},
	)
	require.NoError(t, err)

	key := data.LabelKey{"x": 1, "y": 0, "z": 1}
	c, err := New(occupants, key)
	require.NoError(t, err)
	assert.Equal(t, "x", c.Default())

	type test struct {
		x      []float64
		label  string
		target int
	}

	tests := map[string]test{
		"majority": {
			x:      []float64{0},
			label:  "x",
			target: 1,
		},
		"tie-breaks-by-label": {
			x:      []float64{1},
			label:  "y",
			target: 0,
		},
		"single": {
			x:      []float64{3.1},
			label:  "x",
			target: 1,
		},
		"empty-cell-falls-back": {
			x:      []float64{2},
			label:  "x",
			target: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cell, err := m.Winner(tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.label, c.Label(cell))
			y, err := c.Classify(m, tt.x)
			require.NoError(t, err)
			assert.Equal(t, tt.target, y)
		})
	}

	yy, err := c.ClassifyAll(m, [][]float64{{0}, {1}, {2}})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 1}, yy)

	_, err = c.ClassifyAll(m, [][]float64{{0, 1}})
	assert.ErrorIs(t, err, som.ErrDimension)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(som.Occupants{}, data.LabelKey{})
	assert.ErrorIs(t, err, ErrNoOccupants)

	occupants := som.Occupants{som.Cell{}: {"a": 1}}
	_, err = New(occupants, data.LabelKey{"b": 1})
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestError(t *testing.T) {
	e, err := Error([]int{1, 1, 0, 0}, []int{1, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.5, e)

	_, err = Error([]int{1}, []int{1, 0})
	assert.ErrorIs(t, err, data.ErrMismatch)

	_, err = Error(nil, nil)
	assert.ErrorIs(t, err, data.ErrEmpty)
}

func TestEvaluate(t *testing.T) {
	ev, err := Evaluate([]int{1, 1, 0, 0}, []int{1, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, ev.Accuracy, 1e-9)
	assert.Equal(t, 1, ev.Matrix["1"]["1"])
	assert.Equal(t, 1, ev.Matrix["0"]["1"])
	assert.Equal(t, 2, ev.Matrix["0"]["0"])
	assert.NotEmpty(t, ev.Summary)
}
