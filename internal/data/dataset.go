package data

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var (
	ErrEmpty    = errors.New("empty data set")
	ErrMismatch = errors.New("mismatched data set dimensions")
	ErrTarget   = errors.New("target is not binary")
	ErrColumn   = errors.New("unknown column")
)

// Dataset is a set of labeled feature vectors.
// Rows are samples, columns are the numeric features.
type Dataset struct {
	Columns  []string    `json:"columns"`
	Features [][]float64 `json:"features"`
	Labels   []string    `json:"labels"`
	Targets  []int       `json:"targets"`
}

// Len returns the number of samples.
func (ds *Dataset) Len() int {
	return len(ds.Features)
}

// Dim returns the number of features.
func (ds *Dataset) Dim() int {
	if len(ds.Features) == 0 {
		return len(ds.Columns)
	}
	return len(ds.Features[0])
}

// Validate checks that the data set can be used for training.
func (ds *Dataset) Validate() error {
	if ds == nil || len(ds.Features) == 0 {
		return ErrEmpty
	}
	dim := len(ds.Features[0])
	if dim == 0 {
		return fmt.Errorf("no features: %w", ErrEmpty)
	}
	if len(ds.Columns) > 0 && len(ds.Columns) != dim {
		return fmt.Errorf("columns %d vs features %d: %w", len(ds.Columns), dim, ErrMismatch)
	}
	for i, row := range ds.Features {
		if len(row) != dim {
			return fmt.Errorf("row %d has %d features instead of %d: %w", i, len(row), dim, ErrMismatch)
		}
	}
	if len(ds.Labels) != len(ds.Features) {
		return fmt.Errorf("labels %d vs samples %d: %w", len(ds.Labels), len(ds.Features), ErrMismatch)
	}
	if len(ds.Targets) != len(ds.Features) {
		return fmt.Errorf("targets %d vs samples %d: %w", len(ds.Targets), len(ds.Features), ErrMismatch)
	}
	for i, t := range ds.Targets {
		if t != 0 && t != 1 {
			return fmt.Errorf("target %d at row %d: %w", t, i, ErrTarget)
		}
	}
	return nil
}

// Key builds the label key of the data set.
// If a label appears with different targets, the last one wins.
func (ds *Dataset) Key() LabelKey {
	key := make(LabelKey)
	for i, l := range ds.Labels {
		if i < len(ds.Targets) {
			key[l] = ds.Targets[i]
		}
	}
	return key
}

// Select projects the data set onto the given feature columns.
func (ds *Dataset) Select(columns ...string) (*Dataset, error) {
	index := make(map[string]int, len(ds.Columns))
	for i, c := range ds.Columns {
		index[c] = i
	}
	idx := make([]int, len(columns))
	for i, c := range columns {
		j, ok := index[c]
		if !ok {
			return nil, fmt.Errorf("'%s': %w", c, ErrColumn)
		}
		idx[i] = j
	}
	features := make([][]float64, len(ds.Features))
	for i, row := range ds.Features {
		r := make([]float64, len(idx))
		for k, j := range idx {
			r[k] = row[j]
		}
		features[i] = r
	}
	return &Dataset{
		Columns:  append([]string{}, columns...),
		Features: features,
		Labels:   append([]string{}, ds.Labels...),
		Targets:  append([]int{}, ds.Targets...),
	}, nil
}

// Split splits the data set into a train and test part.
// ratio is the fraction of samples that go to the test set.
func (ds *Dataset) Split(ratio float64, seed int64) (train, test *Dataset) {
	perm := rand.New(rand.NewSource(seed)).Perm(ds.Len())
	n := int(float64(ds.Len()) * ratio)
	testIdx := perm[:n]
	trainIdx := perm[n:]
	// keep the original order within each part
	sort.Ints(testIdx)
	sort.Ints(trainIdx)
	return ds.subset(trainIdx), ds.subset(testIdx)
}

func (ds *Dataset) subset(idx []int) *Dataset {
	sub := &Dataset{
		Columns:  append([]string{}, ds.Columns...),
		Features: make([][]float64, 0, len(idx)),
		Labels:   make([]string, 0, len(idx)),
		Targets:  make([]int, 0, len(idx)),
	}
	for _, i := range idx {
		sub.Features = append(sub.Features, ds.Features[i])
		sub.Labels = append(sub.Labels, ds.Labels[i])
		sub.Targets = append(sub.Targets, ds.Targets[i])
	}
	return sub
}

// LabelKey maps a label to its binary target.
type LabelKey map[string]int

// Target returns the target for the given label.
func (k LabelKey) Target(label string) (int, bool) {
	t, ok := k[label]
	return t, ok
}
