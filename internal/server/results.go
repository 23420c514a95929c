package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/drakos74/som-explain/internal/explain"
	"github.com/drakos74/som-explain/internal/render"
)

type entry struct {
	explainer *explain.Explainer
	result    *explain.Result
}

// Results keeps the search results served over http.
type Results struct {
	mutex *sync.RWMutex
	runs  map[string]entry
	last  string
}

func NewResults() *Results {
	return &Results{
		mutex: new(sync.RWMutex),
		runs:  make(map[string]entry),
	}
}

// Add registers the result of the explainer search.
func (rs *Results) Add(e *explain.Explainer, res *explain.Result) {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	rs.runs[res.Run] = entry{explainer: e, result: res}
	rs.last = res.Run
}

// get returns the entry for the run, or the latest one for an empty run.
func (rs *Results) get(run string) (entry, error) {
	rs.mutex.RLock()
	defer rs.mutex.RUnlock()
	if run == "" {
		run = rs.last
	}
	e, ok := rs.runs[run]
	if !ok {
		return entry{}, fmt.Errorf("no result for run '%s'", run)
	}
	return e, nil
}

// ClassifyRequest is the payload for classifying raw feature vectors.
type ClassifyRequest struct {
	Run      string      `json:"run"`
	Features [][]float64 `json:"features"`
}

// ClassifyResponse holds one predicted target per feature vector.
type ClassifyResponse struct {
	Run     string `json:"run"`
	Targets []int  `json:"targets"`
}

// Routes returns the api routes for the results.
func (rs *Results) Routes(debug bool) []Route {
	return []Route{
		{
			Action: Api,
			Path:   "result",
			Method: GET,
			Exec:   rs.result,
		},
		{
			Action:  Api,
			Path:    "heatmap",
			Method:  GET,
			Content: "image/png",
			Exec:    rs.heatMap,
		},
		{
			Action: Api,
			Path:   "classify",
			Method: POST,
			Exec: func(r *http.Request) ([]byte, int, error) {
				return rs.classify(r, debug)
			},
		},
	}
}

func (rs *Results) result(r *http.Request) ([]byte, int, error) {
	e, err := rs.get(r.URL.Query().Get("run"))
	if err != nil {
		return []byte(err.Error()), http.StatusNotFound, nil
	}
	b, err := json.Marshal(e.result)
	if err != nil {
		return nil, 0, fmt.Errorf("could not encode result: %w", err)
	}
	return b, http.StatusOK, nil
}

func (rs *Results) heatMap(r *http.Request) ([]byte, int, error) {
	e, err := rs.get(r.URL.Query().Get("run"))
	if err != nil {
		return []byte(err.Error()), http.StatusNotFound, nil
	}
	var buf bytes.Buffer
	if err := render.WriteHeatMap(&buf, e.result.Map, e.result.Occupants, e.explainer.Key(), "png"); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), http.StatusOK, nil
}

func (rs *Results) classify(r *http.Request, debug bool) ([]byte, int, error) {
	var request ClassifyRequest
	if err := JsonRead(r, debug, &request); err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	e, err := rs.get(request.Run)
	if err != nil {
		return []byte(err.Error()), http.StatusNotFound, nil
	}
	targets, err := e.explainer.Classify(e.result, request.Features)
	if err != nil {
		return []byte(err.Error()), http.StatusBadRequest, nil
	}
	b, err := json.Marshal(ClassifyResponse{Run: e.result.Run, Targets: targets})
	if err != nil {
		return nil, 0, fmt.Errorf("could not encode response: %w", err)
	}
	return b, http.StatusOK, nil
}
