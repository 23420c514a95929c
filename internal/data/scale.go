package data

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance.
// Statistics are taken over the population; columns with no variance are only centred.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// NewScaler creates a new un-fitted scaler.
func NewScaler() *Scaler {
	return &Scaler{}
}

// Fit learns the per-column mean and standard deviation.
func (s *Scaler) Fit(x [][]float64) error {
	if len(x) == 0 {
		return ErrEmpty
	}
	dim := len(x[0])
	s.Mean = make([]float64, dim)
	s.Std = make([]float64, dim)
	col := make([]float64, len(x))
	for j := 0; j < dim; j++ {
		for i, row := range x {
			if len(row) != dim {
				return fmt.Errorf("row %d has %d features instead of %d: %w", i, len(row), dim, ErrMismatch)
			}
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	return nil
}

// Transform returns a scaled copy of the given vectors.
func (s *Scaler) Transform(x [][]float64) ([][]float64, error) {
	if s.Mean == nil {
		return nil, fmt.Errorf("scaler is not fitted")
	}
	scaled := make([][]float64, len(x))
	for i, row := range x {
		v, err := s.Vector(row)
		if err != nil {
			return nil, fmt.Errorf("could not scale row %d: %w", i, err)
		}
		scaled[i] = v
	}
	return scaled, nil
}

// Vector scales a single vector.
func (s *Scaler) Vector(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("%d features instead of %d: %w", len(row), len(s.Mean), ErrMismatch)
	}
	v := make([]float64, len(row))
	for j, f := range row {
		v[j] = (f - s.Mean[j]) / s.Std[j]
	}
	return v, nil
}

// FitTransform fits the scaler and scales the given vectors.
func (s *Scaler) FitTransform(x [][]float64) ([][]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// Scale returns a copy of the data set with scaled features.
func (s *Scaler) Scale(ds *Dataset) (*Dataset, error) {
	features, err := s.Transform(ds.Features)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Columns:  append([]string{}, ds.Columns...),
		Features: features,
		Labels:   append([]string{}, ds.Labels...),
		Targets:  append([]int{}, ds.Targets...),
	}, nil
}
