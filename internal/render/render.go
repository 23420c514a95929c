package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/drakos74/som-explain/internal/data"
	"github.com/drakos74/som-explain/internal/som"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	Positive = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	Negative = color.White
)

const (
	fontSize = 8
	minSize  = 4
)

// grid adapts the distance map to a heat map grid, with cell centers at x+0.5, y+0.5.
type grid struct {
	um [][]float64
}

func (g grid) Dims() (c, r int) {
	if len(g.um) == 0 {
		return 0, 0
	}
	return len(g.um), len(g.um[0])
}

func (g grid) Z(c, r int) float64 {
	return g.um[c][r]
}

func (g grid) X(c int) float64 {
	return float64(c) + 0.5
}

func (g grid) Y(r int) float64 {
	return float64(r) + 0.5
}

// annotations returns one text label per distinct label of each occupied cell,
// stacked vertically within the cell.
func annotations(occupants som.Occupants, key data.LabelKey) (plotter.XYLabels, []color.Color) {
	xyLabels := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0),
		Labels: make([]string, 0),
	}
	colors := make([]color.Color, 0)
	for _, cell := range occupants.Cells() {
		labels := occupants.Labels(cell)
		x := float64(cell.X) + .1
		y := float64(cell.Y) - .3
		for i, l := range labels {
			offset := float64(i+1)/float64(len(labels)) - 0.05
			xyLabels.XYs = append(xyLabels.XYs, plotter.XY{X: x, Y: y + offset})
			xyLabels.Labels = append(xyLabels.Labels, fmt.Sprintf("%s: %s", l, cell))
			if key[l] == 1 {
				colors = append(colors, Positive)
			} else {
				colors = append(colors, Negative)
			}
		}
	}
	return xyLabels, colors
}

// Map creates the heat map of the distance map, annotated with the labels of each cell.
// Labels with a positive target are coloured red, the rest white.
func Map(m *som.Map, occupants som.Occupants, key data.LabelKey) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("self organizing map [%d x %d]", m.Width(), m.Height())
	p.X.Min = 0
	p.X.Max = float64(m.Width())
	p.Y.Min = 0
	p.Y.Max = float64(m.Height())

	heat := plotter.NewHeatMap(grid{um: m.DistanceMap()}, palette.Heat(12, 0.8))
	p.Add(heat)
	p.Add(plotter.NewGrid())

	xyLabels, colors := annotations(occupants, key)
	if len(xyLabels.Labels) > 0 {
		labels, err := plotter.NewLabels(xyLabels)
		if err != nil {
			return nil, fmt.Errorf("could not create labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Color = colors[i]
			labels.TextStyle[i].Font.Size = vg.Points(fontSize)
		}
		p.Add(labels)
	}
	return p, nil
}

// size returns the canvas dimensions for the given grid, one inch per cell.
func size(width, height int) (vg.Length, vg.Length) {
	w := math.Max(float64(width), minSize)
	h := math.Max(float64(height), minSize)
	return vg.Length(w) * vg.Inch, vg.Length(h) * vg.Inch
}

// HeatMap renders the annotated map into the given file, the format is taken from the extension.
func HeatMap(m *som.Map, occupants som.Occupants, key data.LabelKey, path string) error {
	p, err := Map(m, occupants, key)
	if err != nil {
		return err
	}
	w, h := size(m.Width(), m.Height())
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("could not save heat map to '%s': %w", path, err)
	}
	return nil
}

// WriteHeatMap renders the annotated map into the writer in the given format e.g. png or svg.
func WriteHeatMap(wr io.Writer, m *som.Map, occupants som.Occupants, key data.LabelKey, format string) error {
	p, err := Map(m, occupants, key)
	if err != nil {
		return err
	}
	w, h := size(m.Width(), m.Height())
	writer, err := p.WriterTo(w, h, format)
	if err != nil {
		return fmt.Errorf("could not create '%s' writer: %w", format, err)
	}
	if _, err := writer.WriteTo(wr); err != nil {
		return fmt.Errorf("could not write heat map: %w", err)
	}
	return nil
}

// Format returns the image format for the given file path.
func Format(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "png"
	}
	return strings.ToLower(ext)
}
