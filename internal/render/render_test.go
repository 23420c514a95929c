package render

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/som-explain/internal/data"
	"github.com/drakos74/som-explain/internal/som"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMap(t *testing.T) (*som.Map, som.Occupants) {
	m, err := som.FromSnapshot(som.Snapshot{
		Config:  som.DefaultConfig(3, 2),
		Dim:     1,
		Weights: [][]float64{{0}, {1}, {2}, {3}, {4}, {5}},
	})
	require.NoError(t, err)
	occupants, err := m.LabelsMap([][]float64{{0}, {0.1}, {4.9}}, []string{"b", "a", "c"})
	require.NoError(t, err)
	return m, occupants
}

func TestAnnotations(t *testing.T) {
	_, occupants := newMap(t)
	key := data.LabelKey{"a": 1, "b": 0, "c": 1}

	xyLabels, colors := annotations(occupants, key)
	assert.Equal(t, []string{"a: 0, 0", "b: 0, 0", "c: 2, 1"}, xyLabels.Labels)
	assert.Equal(t, []color.Color{Positive, Negative, Positive}, colors)

	// two labels are stacked within the cell
	assert.InDelta(t, 0.1, xyLabels.XYs[0].X, 1e-9)
	assert.InDelta(t, 0.15, xyLabels.XYs[0].Y, 1e-9)
	assert.InDelta(t, 0.65, xyLabels.XYs[1].Y, 1e-9)
	assert.InDelta(t, 1.65, xyLabels.XYs[2].Y, 1e-9)
}

func TestGrid(t *testing.T) {
	g := grid{um: [][]float64{{0, 1}, {0.5, 0.2}, {0.3, 0.4}}}
	c, r := g.Dims()
	assert.Equal(t, 3, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 0.2, g.Z(1, 1))
	assert.Equal(t, 2.5, g.X(2))
	assert.Equal(t, 0.5, g.Y(0))
}

func TestHeatMap(t *testing.T) {
	m, occupants := newMap(t)
	key := data.LabelKey{"a": 1, "b": 0, "c": 1}

	path := filepath.Join(t.TempDir(), "map.png")
	require.NoError(t, HeatMap(m, occupants, key, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	var buf bytes.Buffer
	require.NoError(t, WriteHeatMap(&buf, m, occupants, key, "svg"))
	assert.Contains(t, buf.String(), "<svg")

	assert.Equal(t, "png", Format("map"))
	assert.Equal(t, "svg", Format("out/map.SVG"))
}

func TestSaveHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.png")
	err := SaveHistory(path, "search",
		Series{Name: "q_error", Values: []float64{0.5, 0.4, 0.3}},
		Series{Name: "c_error", Values: []float64{0.3, 0.2, 0.05}},
	)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
