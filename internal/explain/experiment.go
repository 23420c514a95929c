package explain

import (
	"fmt"

	"github.com/drakos74/som-explain/internal/data"
)

// Output holds the paths of the rendered plots, empty paths are skipped.
type Output struct {
	HeatMap string `json:"heat_map"`
	History string `json:"history"`
}

// Experiment is the configuration of a full search run.
type Experiment struct {
	Train         string      `json:"train"`
	Test          string      `json:"test"`
	Split         float64     `json:"split"`
	Schema        data.Schema `json:"schema"`
	Search        Options     `json:"search"`
	Output        Output      `json:"output"`
	Clusters      int         `json:"clusters"`
	BaselineTrees int         `json:"baseline_trees"`
}

// DefaultExperiment returns an experiment with the default search options.
func DefaultExperiment() Experiment {
	return Experiment{
		Schema: data.Schema{
			Label:  "label",
			Target: "target",
		},
		Search: DefaultOptions(),
	}
}

// Prepare loads the data of the experiment and creates the explainer.
// Without a test file the training data is split by the configured ratio.
func Prepare(exp Experiment) (*Explainer, error) {
	train, err := data.LoadCSV(exp.Train, exp.Schema)
	if err != nil {
		return nil, fmt.Errorf("could not load training data: %w", err)
	}

	var test *data.Dataset
	switch {
	case exp.Test != "":
		test, err = data.LoadCSV(exp.Test, data.Schema{
			Label:    exp.Schema.Label,
			Target:   exp.Schema.Target,
			Features: train.Columns,
		})
		if err != nil {
			return nil, fmt.Errorf("could not load test data: %w", err)
		}
	case exp.Split > 0 && exp.Split < 1:
		train, test = train.Split(exp.Split, exp.Search.Seed)
		if test.Len() == 0 {
			// too few samples to hold any out, score on the training set
			test = nil
		}
	}

	return New(train, test, exp.Search)
}
