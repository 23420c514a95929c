package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `name,f1,f2,f3,target
alpha,1.5,10,100,1
beta,2.5,20,200,0
gamma,3.5,30,300,1
delta,4.5,40,400,0
`

func writeCSV(t *testing.T, content string) string {
	p := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeCSV(t, sample)

	ds, err := LoadCSV(p, Schema{Label: "name", Target: "target"})
	require.NoError(t, err)

	assert.Equal(t, []string{"f1", "f2", "f3"}, ds.Columns)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, ds.Labels)
	assert.Equal(t, []int{1, 0, 1, 0}, ds.Targets)
	assert.Equal(t, []float64{1.5, 10, 100}, ds.Features[0])
	assert.Equal(t, []float64{4.5, 40, 400}, ds.Features[3])

	selected, err := LoadCSV(p, Schema{Label: "name", Target: "target", Features: []string{"f2"}})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{10}, {20}, {30}, {40}}, selected.Features)

	_, err = LoadCSV(p, Schema{Label: "id", Target: "target"})
	assert.ErrorIs(t, err, ErrColumn)

	_, err = LoadCSV(p, Schema{Label: "name", Target: "target", Features: []string{"f4"}})
	assert.ErrorIs(t, err, ErrColumn)
}

func TestLoadCSV_Target(t *testing.T) {

	type test struct {
		target string
		err    error
	}

	tests := map[string]test{
		"binary":     {target: "1"},
		"fraction":   {target: "0.6", err: ErrTarget},
		"below-half": {target: "0.4", err: ErrTarget},
		"out-of-set": {target: "2", err: ErrTarget},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := writeCSV(t, "name,f1,f2,target\na,1,2,0\nb,3,4,"+tt.target+"\n")
			ds, err := LoadCSV(p, Schema{Label: "name", Target: "target"})
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{0, 1}, ds.Targets)
		})
	}
}

func TestDataset_Validate(t *testing.T) {

	type test struct {
		ds  *Dataset
		err error
	}

	tests := map[string]test{
		"ok": {
			ds: &Dataset{
				Features: [][]float64{{1, 2}, {3, 4}},
				Labels:   []string{"a", "b"},
				Targets:  []int{0, 1},
			},
		},
		"empty": {
			ds:  &Dataset{},
			err: ErrEmpty,
		},
		"ragged": {
			ds: &Dataset{
				Features: [][]float64{{1, 2}, {3}},
				Labels:   []string{"a", "b"},
				Targets:  []int{0, 1},
			},
			err: ErrMismatch,
		},
		"labels": {
			ds: &Dataset{
				Features: [][]float64{{1, 2}, {3, 4}},
				Labels:   []string{"a"},
				Targets:  []int{0, 1},
			},
			err: ErrMismatch,
		},
		"targets": {
			ds: &Dataset{
				Features: [][]float64{{1, 2}, {3, 4}},
				Labels:   []string{"a", "b"},
				Targets:  []int{0, 2},
			},
			err: ErrTarget,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestDataset_Key(t *testing.T) {
	ds := &Dataset{
		Features: [][]float64{{1}, {2}, {3}},
		Labels:   []string{"a", "b", "a"},
		Targets:  []int{0, 1, 1},
	}
	key := ds.Key()
	assert.Equal(t, LabelKey{"a": 1, "b": 1}, key)
	_, ok := key.Target("c")
	assert.False(t, ok)
}

func TestDataset_SelectAndSplit(t *testing.T) {
	ds := &Dataset{Columns: []string{"x", "y"}}
	for i := 0; i < 10; i++ {
		ds.Features = append(ds.Features, []float64{float64(i), float64(-i)})
		ds.Labels = append(ds.Labels, string(rune('a'+i)))
		ds.Targets = append(ds.Targets, i%2)
	}

	y, err := ds.Select("y")
	require.NoError(t, err)
	assert.Equal(t, []float64{-3}, y.Features[3])
	_, err = ds.Select("z")
	assert.ErrorIs(t, err, ErrColumn)

	train, test := ds.Split(0.3, 1)
	assert.Equal(t, 7, train.Len())
	assert.Equal(t, 3, test.Len())

	seen := make(map[string]bool)
	for _, l := range append(train.Labels, test.Labels...) {
		seen[l] = true
	}
	assert.Len(t, seen, 10)

	again, _ := ds.Split(0.3, 1)
	assert.Equal(t, train.Labels, again.Labels)
}

func TestScaler(t *testing.T) {
	x := [][]float64{{1, 5}, {2, 5}, {3, 5}}
	s := NewScaler()
	scaled, err := s.FitTransform(x)
	require.NoError(t, err)

	assert.InDelta(t, 2, s.Mean[0], 1e-9)
	// population standard deviation
	assert.InDelta(t, 0.816496580927726, s.Std[0], 1e-9)
	assert.InDelta(t, -1.224744871391589, scaled[0][0], 1e-9)
	assert.InDelta(t, 0, scaled[1][0], 1e-9)
	// constant columns are only centred
	assert.Equal(t, 0.0, scaled[2][1])

	_, err = s.Vector([]float64{1})
	assert.ErrorIs(t, err, ErrMismatch)

	_, err = NewScaler().Transform(x)
	assert.Error(t, err)

	assert.ErrorIs(t, NewScaler().Fit(nil), ErrEmpty)
}
