package som

import (
	"fmt"

	"github.com/drakos74/go-ex-machina/xmath"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Initialise sets the initial weights according to the given strategy.
// PCA falls back to random initialisation when the data does not span two components.
func (m *Map) Initialise(init Init, data [][]float64) error {
	switch init {
	case Random:
		return m.InitRandom(data)
	case PCA, "":
		err := m.InitPCA(data)
		if err != nil {
			log.Warn().Err(err).
				Int("samples", len(data)).
				Int("dim", m.dim).
				Msg("pca initialisation failed, using random samples")
			return m.InitRandom(data)
		}
		return nil
	default:
		return fmt.Errorf("init '%s': %w", init, ErrConfig)
	}
}

// InitRandom initialises the weights with randomly picked input samples.
func (m *Map) InitRandom(data [][]float64) error {
	if err := m.checkAll(data); err != nil {
		return err
	}
	for i := range m.weights {
		m.weights[i] = xmath.Vector(data[m.rnd.Intn(len(data))]).Copy()
	}
	return nil
}

// InitPCA spans the weights over the plane of the first two principal components of the data.
// Each node gets c1*pc1 + c2*pc2 with c1, c2 evenly spaced in [-1,1] along the grid axes.
func (m *Map) InitPCA(data [][]float64) error {
	if err := m.checkAll(data); err != nil {
		return err
	}
	if m.dim < 2 || len(data) < 2 {
		return fmt.Errorf("pca needs at least 2 features and 2 samples [%d,%d]: %w", m.dim, len(data), ErrDimension)
	}
	flat := make([]float64, 0, len(data)*m.dim)
	for _, x := range data {
		flat = append(flat, x...)
	}
	var pc stat.PC
	if ok := pc.PrincipalComponents(mat.NewDense(len(data), m.dim, flat), nil); !ok {
		return fmt.Errorf("could not compute principal components: %w", ErrDimension)
	}
	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	_, c := vectors.Dims()
	if c < 2 {
		return fmt.Errorf("only %d principal components: %w", c, ErrDimension)
	}
	pc1 := mat.Col(nil, 0, &vectors)
	pc2 := mat.Col(nil, 1, &vectors)

	cx := linspace(-1, 1, m.cfg.Width)
	cy := linspace(-1, 1, m.cfg.Height)
	for x, c1 := range cx {
		for y, c2 := range cy {
			w := xmath.Vec(m.dim)
			for k := range w {
				w[k] = c1*pc1[k] + c2*pc2[k]
			}
			m.weights[x*m.cfg.Height+y] = w
		}
	}
	return nil
}

func linspace(from, to float64, n int) []float64 {
	v := make([]float64, n)
	if n == 1 {
		v[0] = from
		return v
	}
	step := (to - from) / float64(n-1)
	for i := range v {
		v[i] = from + float64(i)*step
	}
	return v
}
