package explain

import (
	"fmt"

	"github.com/drakos74/som-explain/internal/classify"
	"github.com/drakos74/som-explain/internal/som"
	"github.com/drakos74/som-explain/internal/storage"
)

const (
	resultLabel = "result"
	mapLabel    = "map"
)

// Save stores the result and the trained map of a search.
func Save(store storage.Persistence, res *Result) error {
	if res.Map == nil {
		return fmt.Errorf("no trained map for run '%s'", res.Run)
	}
	if err := store.Store(storage.Key{Run: res.Run, Index: res.Width, Label: resultLabel}, res); err != nil {
		return fmt.Errorf("could not store result: %w", err)
	}
	if err := store.Store(storage.Key{Run: res.Run, Index: res.Width, Label: mapLabel}, res.Map.Snapshot()); err != nil {
		return fmt.Errorf("could not store map: %w", err)
	}
	return nil
}

// Load restores the result and the trained map of a search.
// Occupants and classifier are not stored and need to be rebuilt from the data.
func Load(store storage.Persistence, run string, width int) (*Result, error) {
	var res Result
	if err := store.Load(storage.Key{Run: run, Index: width, Label: resultLabel}, &res); err != nil {
		return nil, fmt.Errorf("could not load result: %w", err)
	}
	var snapshot som.Snapshot
	if err := store.Load(storage.Key{Run: run, Index: width, Label: mapLabel}, &snapshot); err != nil {
		return nil, fmt.Errorf("could not load map: %w", err)
	}
	m, err := som.FromSnapshot(snapshot)
	if err != nil {
		return nil, fmt.Errorf("could not restore map: %w", err)
	}
	res.Map = m
	return &res, nil
}

// History loads the logged quality of every attempt of a run.
func History(registry storage.Registry, run string) ([]Quality, error) {
	history := make([]Quality, 0)
	if err := registry.GetAll(storage.K{Run: run, Label: historyLabel}, &history); err != nil {
		return nil, fmt.Errorf("could not load history: %w", err)
	}
	return history, nil
}

// Restore rebuilds the occupants and classifier of a loaded result from the explainer training set.
func (e *Explainer) Restore(res *Result) error {
	if res.Map == nil {
		return fmt.Errorf("no trained map for run '%s'", res.Run)
	}
	occupants, err := res.Map.LabelsMap(e.train.Features, e.train.Labels)
	if err != nil {
		return fmt.Errorf("could not map labels: %w", err)
	}
	classifier, err := classify.New(occupants, e.key)
	if err != nil {
		return fmt.Errorf("could not create classifier: %w", err)
	}
	res.Occupants = occupants
	res.Classifier = classifier
	return nil
}
