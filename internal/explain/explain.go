package explain

import (
	"context"
	"fmt"

	"github.com/drakos74/som-explain/internal/classify"
	"github.com/drakos74/som-explain/internal/data"
	"github.com/drakos74/som-explain/internal/metrics"
	"github.com/drakos74/som-explain/internal/som"
	"github.com/drakos74/som-explain/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const historyLabel = "history"

// Quality are the scores of the map trained for a single grid size.
type Quality struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	QError    float64 `json:"q_error"`
	TError    float64 `json:"t_error"`
	Occupancy float64 `json:"occupancy"`
	CError    float64 `json:"c_error"`
}

// Result is the outcome of a search.
type Result struct {
	Run        string              `json:"run"`
	QError     float64             `json:"q_error"`
	TError     float64             `json:"t_error"`
	CError     float64             `json:"c_error"`
	Occupancy  float64             `json:"occupancy"`
	Iterations int                 `json:"iterations"`
	Width      int                 `json:"width"`
	Height     int                 `json:"height"`
	History    []Quality           `json:"history"`
	Evaluation classify.Evaluation `json:"evaluation"`

	Map        *som.Map             `json:"-"`
	Occupants  som.Occupants        `json:"-"`
	Classifier *classify.Classifier `json:"-"`
}

// attempt is a trained map with its scores.
type attempt struct {
	m          *som.Map
	occupants  som.Occupants
	classifier *classify.Classifier
	predicted  []int
	quality    Quality
}

// Explainer searches for the map size that best separates the labeled samples.
type Explainer struct {
	run      string
	opts     Options
	scaler   *data.Scaler
	train    *data.Dataset
	test     *data.Dataset
	key      data.LabelKey
	registry storage.Registry
	metrics  *metrics.Metrics
}

// New creates an explainer for the given train and test data.
// The scaler is fitted on the training features and applied to both sets.
// Without a test set the classification error is measured on the training samples.
func New(train, test *data.Dataset, opts Options) (*Explainer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := train.Validate(); err != nil {
		return nil, fmt.Errorf("invalid training set: %w", err)
	}
	if test == nil {
		test = train
	}
	if err := test.Validate(); err != nil {
		return nil, fmt.Errorf("invalid test set: %w", err)
	}
	if train.Dim() != test.Dim() {
		return nil, fmt.Errorf("train has %d features and test %d: %w", train.Dim(), test.Dim(), data.ErrMismatch)
	}

	scaler := data.NewScaler()
	if err := scaler.Fit(train.Features); err != nil {
		return nil, fmt.Errorf("could not fit scaler: %w", err)
	}
	scaledTrain, err := scaler.Scale(train)
	if err != nil {
		return nil, fmt.Errorf("could not scale training set: %w", err)
	}
	scaledTest, err := scaler.Scale(test)
	if err != nil {
		return nil, fmt.Errorf("could not scale test set: %w", err)
	}

	return &Explainer{
		run:      uuid.New().String(),
		opts:     opts,
		scaler:   scaler,
		train:    scaledTrain,
		test:     scaledTest,
		key:      train.Key(),
		registry: storage.NewVoidRegistry(),
		metrics:  metrics.NewMetrics(nil),
	}, nil
}

// WithRegistry logs the quality of every attempt to the given registry.
func (e *Explainer) WithRegistry(registry storage.Registry) *Explainer {
	e.registry = registry
	return e
}

// WithMetrics reports the quality of every attempt to the given metrics.
func (e *Explainer) WithMetrics(m *metrics.Metrics) *Explainer {
	e.metrics = m
	return e
}

// Run returns the id of the search.
func (e *Explainer) Run() string {
	return e.run
}

// Key returns the label key of the training set.
func (e *Explainer) Key() data.LabelKey {
	return e.key
}

// Train returns the scaled training set.
func (e *Explainer) Train() *data.Dataset {
	return e.train
}

// Test returns the scaled test set.
func (e *Explainer) Test() *data.Dataset {
	return e.test
}

// Options returns the search options.
func (e *Explainer) Options() Options {
	return e.opts
}

// attempt trains and scores a map of the given width.
func (e *Explainer) attempt(width int) (*attempt, error) {
	cfg := e.opts.config(width)
	m, err := som.New(cfg, e.train.Dim())
	if err != nil {
		return nil, fmt.Errorf("could not create map [%d,%d]: %w", cfg.Width, cfg.Height, err)
	}
	if err := m.Initialise(e.opts.Init, e.train.Features); err != nil {
		return nil, fmt.Errorf("could not initialise map: %w", err)
	}
	if err := m.TrainRandom(e.train.Features, e.opts.SOMIterations); err != nil {
		return nil, fmt.Errorf("could not train map: %w", err)
	}

	occupants, err := m.LabelsMap(e.train.Features, e.train.Labels)
	if err != nil {
		return nil, fmt.Errorf("could not map labels: %w", err)
	}
	qError, err := m.QuantizationError(e.train.Features)
	if err != nil {
		return nil, fmt.Errorf("could not compute quantization error: %w", err)
	}
	tError, err := m.TopographicError(e.train.Features)
	if err != nil {
		return nil, fmt.Errorf("could not compute topographic error: %w", err)
	}

	classifier, err := classify.New(occupants, e.key)
	if err != nil {
		return nil, fmt.Errorf("could not create classifier: %w", err)
	}
	predicted, err := classifier.ClassifyAll(m, e.test.Features)
	if err != nil {
		return nil, fmt.Errorf("could not classify test set: %w", err)
	}
	cError, err := classify.Error(predicted, e.test.Targets)
	if err != nil {
		return nil, fmt.Errorf("could not compute classification error: %w", err)
	}

	return &attempt{
		m:          m,
		occupants:  occupants,
		classifier: classifier,
		predicted:  predicted,
		quality: Quality{
			Width:     cfg.Width,
			Height:    cfg.Height,
			QError:    qError,
			TError:    tError,
			Occupancy: m.Occupancy(occupants),
			CError:    cError,
		},
	}, nil
}

// proceed decides if the map needs to grow further.
func (e *Explainer) proceed(q Quality) bool {
	return (e.opts.Objective == Occupancy && q.Occupancy > e.opts.OccupancyThreshold) ||
		q.CError > e.opts.ClassErrorThreshold
}

func (e *Explainer) record(i int, q Quality) {
	level := zerolog.DebugLevel
	if e.opts.Verbose {
		level = zerolog.InfoLevel
	}
	log.WithLevel(level).
		Str("run", e.run).
		Int("iteration", i).
		Int("max", e.opts.MaxIterations).
		Int("x", q.Width).
		Int("y", q.Height).
		Float64("q_error", q.QError).
		Float64("t_error", q.TError).
		Float64("occupancy", q.Occupancy).
		Float64("c_error", q.CError).
		Msg("trained map")

	e.metrics.Observe(e.run, metrics.Quality{
		QError:    q.QError,
		TError:    q.TError,
		Occupancy: q.Occupancy,
		CError:    q.CError,
	})
	if err := e.registry.Add(storage.K{Run: e.run, Label: historyLabel}, q); err != nil {
		log.Warn().Err(err).Str("run", e.run).Msg("could not log attempt")
	}
}

// Search trains maps of growing width until the thresholds are met
// or the max number of iterations is reached.
// A cancelled context stops the search after the current attempt and returns the latest result.
func (e *Explainer) Search(ctx context.Context) (*Result, error) {
	width := e.opts.Width
	current, err := e.attempt(width)
	if err != nil {
		return nil, err
	}
	forced := e.opts.ForceGrowth && e.opts.MaxIterations > 0
	history := make([]Quality, 0)
	if !forced {
		history = append(history, current.quality)
		e.record(0, current.quality)
	}

	iterations := 0
	for (forced || e.proceed(current.quality)) && iterations < e.opts.MaxIterations {
		forced = false
		if err := ctx.Err(); err != nil {
			return e.result(current, iterations, history), fmt.Errorf("search interrupted: %w", err)
		}
		width += e.opts.Step
		next, err := e.attempt(width)
		if err != nil {
			return e.result(current, iterations, history), err
		}
		current = next
		iterations++
		history = append(history, current.quality)
		e.record(iterations, current.quality)
	}

	res := e.result(current, iterations, history)
	log.Info().
		Str("run", e.run).
		Int("iterations", iterations).
		Int("x", res.Width).
		Int("y", res.Height).
		Float64("occupancy", res.Occupancy).
		Float64("c_error", res.CError).
		Msg("search completed")
	return res, nil
}

func (e *Explainer) result(a *attempt, iterations int, history []Quality) *Result {
	res := &Result{
		Run:        e.run,
		QError:     a.quality.QError,
		TError:     a.quality.TError,
		CError:     a.quality.CError,
		Occupancy:  a.quality.Occupancy,
		Iterations: iterations,
		Width:      a.quality.Width,
		Height:     a.quality.Height,
		History:    history,
		Map:        a.m,
		Occupants:  a.occupants,
		Classifier: a.classifier,
	}
	ev, err := classify.Evaluate(a.predicted, e.test.Targets)
	if err != nil {
		log.Warn().Err(err).Str("run", e.run).Msg("could not evaluate predictions")
	} else {
		res.Evaluation = ev
	}
	return res
}

// Classify scales the given raw vectors and classifies them with the map of the result.
func (e *Explainer) Classify(res *Result, xx [][]float64) ([]int, error) {
	if res == nil || res.Map == nil || res.Classifier == nil {
		return nil, fmt.Errorf("no trained map")
	}
	scaled, err := e.scaler.Transform(xx)
	if err != nil {
		return nil, fmt.Errorf("could not scale input: %w", err)
	}
	return res.Classifier.ClassifyAll(res.Map, scaled)
}
