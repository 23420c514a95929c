package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is a named sequence of values, one per search attempt.
type Series struct {
	Name   string
	Values []float64
}

// History plots the given series against the attempt index.
func History(title string, series ...Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "attempt"
	p.Y.Label.Text = "value"
	p.Add(plotter.NewGrid())

	lines := make([]interface{}, 0, 2*len(series))
	for _, s := range series {
		xys := make(plotter.XYs, len(s.Values))
		for i, v := range s.Values {
			xys[i] = plotter.XY{X: float64(i), Y: v}
		}
		lines = append(lines, s.Name, xys)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return nil, fmt.Errorf("could not add history lines: %w", err)
	}
	return p, nil
}

// SaveHistory plots the series into the given file.
func SaveHistory(path, title string, series ...Series) error {
	p, err := History(title, series...)
	if err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("could not save history to '%s': %w", path, err)
	}
	return nil
}
