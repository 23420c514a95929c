package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/drakos74/som-explain/internal/explain"
	"github.com/drakos74/som-explain/internal/render"
	"github.com/drakos74/som-explain/internal/som"
	"github.com/olekukonko/tablewriter"
)

func format(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// Table writes the quality history of a search as a table.
func Table(w io.Writer, history []explain.Quality) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"attempt", "size", "q_error", "t_error", "occupancy", "c_error"})
	for i, q := range history {
		table.Append([]string{
			strconv.Itoa(i),
			fmt.Sprintf("%d x %d", q.Width, q.Height),
			format(q.QError),
			format(q.TError),
			format(q.Occupancy),
			format(q.CError),
		})
	}
	table.Render()
}

// Summary writes the outcome of a search.
func Summary(w io.Writer, res *explain.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"run", "iterations", "size", "q_error", "t_error", "occupancy", "c_error", "accuracy"})
	table.Append([]string{
		res.Run,
		strconv.Itoa(res.Iterations),
		fmt.Sprintf("%d x %d", res.Width, res.Height),
		format(res.QError),
		format(res.TError),
		format(res.Occupancy),
		format(res.CError),
		format(res.Evaluation.Accuracy),
	})
	table.Render()
}

// Series splits the history into one series per quality metric.
func Series(history []explain.Quality) []render.Series {
	q := render.Series{Name: "q_error", Values: make([]float64, len(history))}
	t := render.Series{Name: "t_error", Values: make([]float64, len(history))}
	o := render.Series{Name: "occupancy", Values: make([]float64, len(history))}
	c := render.Series{Name: "c_error", Values: make([]float64, len(history))}
	for i, h := range history {
		q.Values[i] = h.QError
		t.Values[i] = h.TError
		o.Values[i] = h.Occupancy
		c.Values[i] = h.CError
	}
	return []render.Series{q, t, o, c}
}

// Clusters writes the cells and labels of each cluster of map nodes.
func Clusters(w io.Writer, clusters map[som.Cell]int, occupants som.Occupants) {
	cells := make(map[int][]som.Cell)
	for c, k := range clusters {
		cells[k] = append(cells[k], c)
	}
	ids := make([]int, 0, len(cells))
	for k := range cells {
		ids = append(ids, k)
	}
	sort.Ints(ids)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"cluster", "nodes", "labels"})
	table.SetAutoWrapText(false)
	for _, k := range ids {
		labels := make([]string, 0)
		for _, c := range cells[k] {
			labels = append(labels, occupants.Labels(c)...)
		}
		sort.Strings(labels)
		table.Append([]string{
			strconv.Itoa(k),
			strconv.Itoa(len(cells[k])),
			strings.Join(labels, " "),
		})
	}
	table.Render()
}
