package classify

import (
	"fmt"
	"strconv"

	"github.com/drakos74/som-explain/internal/data"
	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
)

const targetAttribute = "target"

// Evaluation summarises the predictions against the actual targets.
type Evaluation struct {
	Accuracy float64                    `json:"accuracy"`
	Matrix   evaluation.ConfusionMatrix `json:"matrix"`
	Summary  string                     `json:"-"`
}

// Evaluate builds the confusion matrix of the predictions against the actual targets.
func Evaluate(predicted, actual []int) (Evaluation, error) {
	if len(predicted) != len(actual) {
		return Evaluation{}, fmt.Errorf("%d predictions for %d targets: %w", len(predicted), len(actual), data.ErrMismatch)
	}
	if len(actual) == 0 {
		return Evaluation{}, data.ErrEmpty
	}
	ref, err := grid(actual)
	if err != nil {
		return Evaluation{}, fmt.Errorf("could not build reference grid: %w", err)
	}
	gen, err := grid(predicted)
	if err != nil {
		return Evaluation{}, fmt.Errorf("could not build prediction grid: %w", err)
	}
	matrix, err := evaluation.GetConfusionMatrix(ref, gen)
	if err != nil {
		return Evaluation{}, fmt.Errorf("could not get confusion matrix: %w", err)
	}
	return Evaluation{
		Accuracy: evaluation.GetAccuracy(matrix),
		Matrix:   matrix,
		Summary:  evaluation.GetSummary(matrix),
	}, nil
}

// grid wraps the targets in a single class attribute instance set.
func grid(values []int) (*base.DenseInstances, error) {
	attr := base.NewCategoricalAttribute()
	attr.SetName(targetAttribute)
	instances := base.NewDenseInstances()
	spec := instances.AddAttribute(attr)
	if err := instances.AddClassAttribute(attr); err != nil {
		return nil, err
	}
	if err := instances.Extend(len(values)); err != nil {
		return nil, err
	}
	for i, v := range values {
		instances.Set(spec, i, attr.GetSysValFromString(strconv.Itoa(v)))
	}
	return instances, nil
}
