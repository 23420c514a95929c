package som

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(weights ...float64) *Map {
	w := make([][]float64, len(weights))
	for i, v := range weights {
		w[i] = []float64{v}
	}
	cfg := DefaultConfig(len(weights), 1)
	m, err := FromSnapshot(Snapshot{Config: cfg, Dim: 1, Weights: w})
	if err != nil {
		panic(err.Error())
	}
	return m
}

func clusters(n int, seed int64) ([][]float64, []string) {
	rnd := rand.New(rand.NewSource(seed))
	data := make([][]float64, 0, 2*n)
	labels := make([]string, 0, 2*n)
	for i := 0; i < n; i++ {
		data = append(data, []float64{-5 + rnd.Float64(), -5 + rnd.Float64(), rnd.Float64()})
		labels = append(labels, "a")
		data = append(data, []float64{5 + rnd.Float64(), 5 + rnd.Float64(), rnd.Float64()})
		labels = append(labels, "b")
	}
	return data, labels
}

func TestNew(t *testing.T) {

	type test struct {
		cfg Config
		dim int
		err error
	}

	tests := map[string]test{
		"default": {
			cfg: DefaultConfig(4, 2),
			dim: 3,
		},
		"no-width": {
			cfg: DefaultConfig(0, 2),
			dim: 3,
			err: ErrConfig,
		},
		"no-dim": {
			cfg: DefaultConfig(4, 2),
			err: ErrConfig,
		},
		"no-sigma": {
			cfg: Config{Width: 2, Height: 2, LearningRate: 0.5, Neighborhood: Gaussian},
			dim: 1,
			err: ErrConfig,
		},
		"unknown-neighborhood": {
			cfg: Config{Width: 2, Height: 2, Sigma: 1, LearningRate: 0.5, Neighborhood: "mexican-hat"},
			dim: 1,
			err: ErrConfig,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := New(tt.cfg, tt.dim)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Width*tt.cfg.Height, m.Size())
			assert.Equal(t, tt.dim, m.Dim())
		})
	}
}

func TestMap_Winner(t *testing.T) {
	m := line(0, 1, 2)

	c, err := m.Winner([]float64{1.2})
	require.NoError(t, err)
	assert.Equal(t, Cell{X: 1, Y: 0}, c)

	c, err = m.Winner([]float64{10})
	require.NoError(t, err)
	assert.Equal(t, Cell{X: 2, Y: 0}, c)

	_, err = m.Winner([]float64{1, 2})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestMap_QuantizationError(t *testing.T) {
	m := line(0, 1, 2)

	qe, err := m.QuantizationError([][]float64{{0.5}, {2}, {3}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, qe, 1e-9)

	_, err = m.QuantizationError(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestMap_TopographicError(t *testing.T) {

	type test struct {
		m   *Map
		x   [][]float64
		err float64
	}

	tests := map[string]test{
		"adjacent": {
			m:   line(0, 1, 2),
			x:   [][]float64{{0.1}, {1.9}},
			err: 0,
		},
		"far": {
			m:   line(0, 5, 1),
			x:   [][]float64{{0.4}},
			err: 1,
		},
		"mixed": {
			m:   line(0, 5, 1),
			x:   [][]float64{{0.4}, {4}},
			err: 0.5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			te, err := tt.m.TopographicError(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.err, te, 1e-9)
		})
	}

	_, err := line(1).TopographicError([][]float64{{1}})
	assert.ErrorIs(t, err, ErrSingleNode)
}

func TestMap_DistanceMap(t *testing.T) {
	m := line(0, 1, 3)
	um := m.DistanceMap()
	require.Len(t, um, 3)
	require.Len(t, um[0], 1)
	// sums of neighbour distances are 1, 3, 2
	assert.InDelta(t, 1.0/3.0, um[0][0], 1e-9)
	assert.InDelta(t, 1.0, um[1][0], 1e-9)
	assert.InDelta(t, 2.0/3.0, um[2][0], 1e-9)
}

func TestMap_LabelsMap(t *testing.T) {
	m := line(0, 1, 2, 3)

	occupants, err := m.LabelsMap([][]float64{{0}, {0.1}, {2.9}, {3.2}, {0.2}}, []string{"a", "a", "b", "c", "d"})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 2, "d": 1}, occupants[Cell{X: 0}])
	assert.Equal(t, map[string]int{"b": 1, "c": 1}, occupants[Cell{X: 3}])
	assert.Equal(t, []Cell{{X: 0}, {X: 3}}, occupants.Cells())
	assert.Equal(t, []string{"b", "c"}, occupants.Labels(Cell{X: 3}))
	assert.Equal(t, map[string]int{"a": 2, "b": 1, "c": 1, "d": 1}, occupants.Total())
	assert.InDelta(t, 0.5, m.Occupancy(occupants), 1e-9)

	_, err = m.LabelsMap([][]float64{{0}}, []string{"a", "b"})
	assert.ErrorIs(t, err, ErrDimension)
}

func TestMap_TrainRandom(t *testing.T) {
	data, labels := clusters(50, 1)

	cfg := DefaultConfig(10, 5)
	cfg.Seed = 42
	m, err := New(cfg, 3)
	require.NoError(t, err)

	before, err := m.QuantizationError(data)
	require.NoError(t, err)

	require.NoError(t, m.Initialise(PCA, data))
	require.NoError(t, m.TrainRandom(data, 2000))

	after, err := m.QuantizationError(data)
	require.NoError(t, err)
	assert.Less(t, after, before)
	assert.Less(t, after, 1.0)

	occupants, err := m.LabelsMap(data, labels)
	require.NoError(t, err)
	for _, c := range occupants.Cells() {
		// no cell should mix the two clusters
		assert.Len(t, occupants[c], 1, "cell %v", c)
	}

	assert.Error(t, m.TrainRandom(data, 0))
	assert.ErrorIs(t, m.TrainRandom([][]float64{{1}}, 10), ErrDimension)
}

func TestMap_TrainBubble(t *testing.T) {
	data, _ := clusters(20, 2)

	cfg := DefaultConfig(6, 3)
	cfg.Neighborhood = Bubble
	m, err := New(cfg, 3)
	require.NoError(t, err)
	require.NoError(t, m.Initialise(Random, data))
	require.NoError(t, m.TrainBatch(data, 500))

	a, err := m.Winner(data[0])
	require.NoError(t, err)
	b, err := m.Winner(data[1])
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestMap_InitPCA(t *testing.T) {
	data, _ := clusters(30, 3)

	m, err := New(DefaultConfig(5, 3), 3)
	require.NoError(t, err)
	require.NoError(t, m.InitPCA(data))

	// the grid is symmetric around the origin of the principal plane
	first := m.Weights(Cell{X: 0, Y: 0})
	last := m.Weights(Cell{X: 4, Y: 2})
	for k := range first {
		assert.InDelta(t, 0, first[k]+last[k], 1e-9)
	}
	centre := m.Weights(Cell{X: 2, Y: 1})
	for k := range centre {
		assert.InDelta(t, 0, centre[k], 1e-9)
	}

	single, err := New(DefaultConfig(2, 2), 1)
	require.NoError(t, err)
	assert.ErrorIs(t, single.InitPCA([][]float64{{1}, {2}}), ErrDimension)
	// falls back to random samples
	assert.NoError(t, single.Initialise(PCA, [][]float64{{1}, {2}}))
	assert.Error(t, single.Initialise("unknown", [][]float64{{1}, {2}}))
}

func TestDecay(t *testing.T) {
	assert.Equal(t, 1.0, decay(1, 0, 100))
	assert.Equal(t, 0.5, decay(1, 50, 100))
	assert.Equal(t, []float64{-1, 0, 1}, linspace(-1, 1, 3))
	assert.Equal(t, []float64{-1}, linspace(-1, 1, 1))
}

func TestSnapshot(t *testing.T) {
	data, _ := clusters(10, 4)
	m, err := New(DefaultConfig(4, 2), 3)
	require.NoError(t, err)
	require.NoError(t, m.TrainRandom(data, 100))

	restored, err := FromSnapshot(m.Snapshot())
	require.NoError(t, err)
	for _, x := range data {
		c1, _ := m.Winner(x)
		c2, _ := restored.Winner(x)
		assert.Equal(t, c1, c2)
	}

	s := m.Snapshot()
	s.Weights = s.Weights[1:]
	_, err = FromSnapshot(s)
	assert.ErrorIs(t, err, ErrDimension)
}
