package som

import (
	"fmt"
	"math"
	"sort"

	"github.com/drakos74/go-ex-machina/xmath"
)

// topographicThreshold is the max grid distance of adjacent cells, diagonals included.
const topographicThreshold = 1.42

// Occupants groups the labels of the input vectors by their winning cell.
type Occupants map[Cell]map[string]int

// Labels returns the distinct labels of the cell in a stable order.
func (o Occupants) Labels(c Cell) []string {
	labels := make([]string, 0, len(o[c]))
	for l := range o[c] {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Cells returns the occupied cells in grid order.
func (o Occupants) Cells() []Cell {
	cells := make([]Cell, 0, len(o))
	for c := range o {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].X == cells[j].X {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// Total returns the label counts over all cells.
func (o Occupants) Total() map[string]int {
	total := make(map[string]int)
	for _, labels := range o {
		for l, n := range labels {
			total[l] += n
		}
	}
	return total
}

// QuantizationError is the average distance between the input vectors and their winning node.
func (m *Map) QuantizationError(data [][]float64) (float64, error) {
	if err := m.checkAll(data); err != nil {
		return 0, err
	}
	var sum float64
	for _, x := range data {
		w := m.weights[m.winner(x)]
		sum += xmath.Vector(x).Diff(w).Norm()
	}
	return sum / float64(len(data)), nil
}

// TopographicError is the fraction of input vectors for which
// the best and second best matching nodes are not adjacent.
func (m *Map) TopographicError(data [][]float64) (float64, error) {
	if err := m.checkAll(data); err != nil {
		return 0, err
	}
	if m.Size() == 1 {
		return 0, ErrSingleNode
	}
	var errors int
	for _, x := range data {
		first, second := m.bestTwo(x)
		a, b := m.cell(first), m.cell(second)
		dx := float64(a.X - b.X)
		dy := float64(a.Y - b.Y)
		if math.Sqrt(dx*dx+dy*dy) > topographicThreshold {
			errors++
		}
	}
	return float64(errors) / float64(len(data)), nil
}

// DistanceMap returns the normalised sum of the distances of each node to its 8 neighbours,
// indexed as [x][y].
func (m *Map) DistanceMap() [][]float64 {
	ii := []int{0, -1, -1, -1, 0, 1, 1, 1}
	jj := []int{-1, -1, 0, 1, 1, 1, 0, -1}
	um := make([][]float64, m.cfg.Width)
	var max float64
	for x := 0; x < m.cfg.Width; x++ {
		um[x] = make([]float64, m.cfg.Height)
		for y := 0; y < m.cfg.Height; y++ {
			w := m.weights[x*m.cfg.Height+y]
			for k := range ii {
				nx, ny := x+ii[k], y+jj[k]
				if nx < 0 || nx >= m.cfg.Width || ny < 0 || ny >= m.cfg.Height {
					continue
				}
				um[x][y] += w.Diff(m.weights[nx*m.cfg.Height+ny]).Norm()
			}
			if um[x][y] > max {
				max = um[x][y]
			}
		}
	}
	if max > 0 {
		for x := range um {
			for y := range um[x] {
				um[x][y] /= max
			}
		}
	}
	return um
}

// LabelsMap maps each winning cell to the labels of the vectors it won.
func (m *Map) LabelsMap(data [][]float64, labels []string) (Occupants, error) {
	if len(data) != len(labels) {
		return nil, fmt.Errorf("%d vectors with %d labels: %w", len(data), len(labels), ErrDimension)
	}
	if err := m.checkAll(data); err != nil {
		return nil, err
	}
	occupants := make(Occupants)
	for i, x := range data {
		c := m.cell(m.winner(x))
		if _, ok := occupants[c]; !ok {
			occupants[c] = make(map[string]int)
		}
		occupants[c][labels[i]]++
	}
	return occupants, nil
}

// Occupancy is the fraction of nodes that won at least one input vector.
func (m *Map) Occupancy(occupants Occupants) float64 {
	return float64(len(occupants)) / float64(m.Size())
}
