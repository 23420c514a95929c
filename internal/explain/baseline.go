package explain

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/som-explain/internal/classify"
)

// Benchmark is the score of a supervised classifier on the same split.
type Benchmark struct {
	Trees    int       `json:"trees"`
	CError   float64   `json:"c_error"`
	Features []float64 `json:"features"`
}

// Baseline trains a random forest on the scaled training targets
// and measures its classification error on the test set.
func (e *Explainer) Baseline(trees int) (Benchmark, error) {
	if trees <= 0 {
		return Benchmark{}, fmt.Errorf("trees %d: %w", trees, ErrOptions)
	}
	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: e.train.Features, Class: e.train.Targets}
	forest.Train(trees)

	predicted := make([]int, len(e.test.Features))
	for i, x := range e.test.Features {
		predicted[i] = argmax(forest.Vote(x))
	}
	cError, err := classify.Error(predicted, e.test.Targets)
	if err != nil {
		return Benchmark{}, fmt.Errorf("could not compute baseline error: %w", err)
	}

	log.Info().
		Str("run", e.run).
		Int("trees", trees).
		Float64("c_error", cError).
		Msg("random forest baseline")

	return Benchmark{
		Trees:    trees,
		CError:   cError,
		Features: forest.FeatureImportance,
	}, nil
}

func argmax(votes []float64) int {
	best := 0
	for i, v := range votes {
		if v > votes[best] {
			best = i
		}
	}
	return best
}
