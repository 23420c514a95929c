package som

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/drakos74/go-ex-machina/xmath"
)

// Cell is the position of a node on the map grid.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string {
	return fmt.Sprintf("%d, %d", c.X, c.Y)
}

// Map is a rectangular self organizing map.
type Map struct {
	cfg     Config
	dim     int
	weights []xmath.Vector
	rnd     *rand.Rand
}

// New creates a new map for input vectors of the given dimension.
// Weights are initialised uniformly in [-1,1) and should normally be re-initialised from the data.
func New(cfg Config, dim int) (*Map, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if dim <= 0 {
		return nil, fmt.Errorf("input dimension %d: %w", dim, ErrConfig)
	}
	m := &Map{
		cfg:     cfg,
		dim:     dim,
		weights: make([]xmath.Vector, cfg.Width*cfg.Height),
		rnd:     rand.New(rand.NewSource(cfg.Seed)),
	}
	for i := range m.weights {
		w := xmath.Vec(dim)
		for k := range w {
			w[k] = m.rnd.Float64()*2 - 1
		}
		m.weights[i] = w
	}
	return m, nil
}

// Config returns the map configuration.
func (m *Map) Config() Config {
	return m.cfg
}

// Width is the number of columns of the grid.
func (m *Map) Width() int {
	return m.cfg.Width
}

// Height is the number of rows of the grid.
func (m *Map) Height() int {
	return m.cfg.Height
}

// Dim is the dimension of the input vectors.
func (m *Map) Dim() int {
	return m.dim
}

// Size is the number of nodes.
func (m *Map) Size() int {
	return len(m.weights)
}

// Weights returns a copy of the weight vector of the given cell.
func (m *Map) Weights(c Cell) []float64 {
	return m.weights[m.index(c)].Copy()
}

// Cells returns all the cells in node order.
func (m *Map) Cells() []Cell {
	cells := make([]Cell, len(m.weights))
	for i := range cells {
		cells[i] = m.cell(i)
	}
	return cells
}

func (m *Map) index(c Cell) int {
	return c.X*m.cfg.Height + c.Y
}

func (m *Map) cell(i int) Cell {
	return Cell{X: i / m.cfg.Height, Y: i % m.cfg.Height}
}

func (m *Map) check(x []float64) error {
	if len(x) != m.dim {
		return fmt.Errorf("vector of %d instead of %d: %w", len(x), m.dim, ErrDimension)
	}
	return nil
}

func (m *Map) checkAll(data [][]float64) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	for i, x := range data {
		if err := m.check(x); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// distance is the euclidean distance between x and the given node.
func (m *Map) distance(x []float64, i int) float64 {
	w := m.weights[i]
	var sum float64
	for k, v := range x {
		d := v - w[k]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (m *Map) winner(x []float64) int {
	best := 0
	min := math.MaxFloat64
	for i := range m.weights {
		if d := m.distance(x, i); d < min {
			min = d
			best = i
		}
	}
	return best
}

// bestTwo returns the best and second best matching nodes.
func (m *Map) bestTwo(x []float64) (int, int) {
	first, second := -1, -1
	d1, d2 := math.MaxFloat64, math.MaxFloat64
	for i := range m.weights {
		d := m.distance(x, i)
		switch {
		case d < d1:
			second, d2 = first, d1
			first, d1 = i, d
		case d < d2:
			second, d2 = i, d
		}
	}
	return first, second
}

// Winner returns the cell of the node closest to x.
func (m *Map) Winner(x []float64) (Cell, error) {
	if err := m.check(x); err != nil {
		return Cell{}, err
	}
	return m.cell(m.winner(x)), nil
}

// Quantize returns the weights of the winning node for each of the given vectors.
func (m *Map) Quantize(data [][]float64) ([][]float64, error) {
	if err := m.checkAll(data); err != nil {
		return nil, err
	}
	q := make([][]float64, len(data))
	for i, x := range data {
		q[i] = m.weights[m.winner(x)].Copy()
	}
	return q, nil
}

// decay is the asymptotic decay of a training parameter.
func decay(v float64, t, iterations int) float64 {
	return v / (1 + float64(t)/(float64(iterations)/2))
}

// neighborhood returns the per-axis neighborhood coefficients around the winner.
func (m *Map) neighborhood(c Cell, sigma float64) ([]float64, []float64) {
	ax := make([]float64, m.cfg.Width)
	ay := make([]float64, m.cfg.Height)
	switch m.cfg.Neighborhood {
	case Bubble:
		for x := range ax {
			if math.Abs(float64(x-c.X)) < sigma {
				ax[x] = 1
			}
		}
		for y := range ay {
			if math.Abs(float64(y-c.Y)) < sigma {
				ay[y] = 1
			}
		}
	default:
		d := 2 * sigma * sigma
		for x := range ax {
			dx := float64(x - c.X)
			ax[x] = math.Exp(-dx * dx / d)
		}
		for y := range ay {
			dy := float64(y - c.Y)
			ay[y] = math.Exp(-dy * dy / d)
		}
	}
	return ax, ay
}

// update moves the nodes towards x, scaled by the neighborhood of the winner.
func (m *Map) update(x []float64, win int, t, iterations int) {
	eta := decay(m.cfg.LearningRate, t, iterations)
	sigma := decay(m.cfg.Sigma, t, iterations)
	ax, ay := m.neighborhood(m.cell(win), sigma)
	for cx, gx := range ax {
		if gx == 0 {
			continue
		}
		for cy, gy := range ay {
			g := gx * gy * eta
			if g == 0 {
				continue
			}
			w := m.weights[cx*m.cfg.Height+cy]
			for k, v := range x {
				w[k] += g * (v - w[k])
			}
		}
	}
}

// TrainRandom trains the map picking a random sample at each iteration.
func (m *Map) TrainRandom(data [][]float64, iterations int) error {
	if err := m.checkAll(data); err != nil {
		return err
	}
	if iterations <= 0 {
		return fmt.Errorf("iterations %d: %w", iterations, ErrConfig)
	}
	for t := 0; t < iterations; t++ {
		x := data[m.rnd.Intn(len(data))]
		m.update(x, m.winner(x), t, iterations)
	}
	return nil
}

// TrainBatch trains the map cycling over the samples in order.
func (m *Map) TrainBatch(data [][]float64, iterations int) error {
	if err := m.checkAll(data); err != nil {
		return err
	}
	if iterations <= 0 {
		return fmt.Errorf("iterations %d: %w", iterations, ErrConfig)
	}
	for t := 0; t < iterations; t++ {
		x := data[t%len(data)]
		m.update(x, m.winner(x), t, iterations)
	}
	return nil
}
