package explain

import (
	"fmt"
	"io/ioutil"

	"github.com/cdipaolo/goml/cluster"
	"github.com/drakos74/som-explain/internal/som"
	"github.com/rs/zerolog/log"
)

// Clusters groups the nodes of a trained map with k-means over their weights.
func Clusters(m *som.Map, k, iterations int) (map[som.Cell]int, error) {
	if k <= 0 || k > m.Size() {
		return nil, fmt.Errorf("cannot make %d clusters out of %d nodes", k, m.Size())
	}
	cells := m.Cells()
	codebook := make([][]float64, len(cells))
	for i, c := range cells {
		codebook[i] = m.Weights(c)
	}

	model := cluster.NewKMeans(k, iterations, codebook)
	model.Output = ioutil.Discard
	if err := model.Learn(); err != nil {
		log.Error().
			Err(err).
			Int("k", k).
			Int("nodes", len(codebook)).
			Msg("error during k-means on map nodes")
		return nil, fmt.Errorf("could not cluster map nodes: %w", err)
	}

	guesses := model.Guesses()
	if len(guesses) != len(cells) {
		return nil, fmt.Errorf("could not align clusters with nodes [ %d | %d ]", len(guesses), len(cells))
	}
	clusters := make(map[som.Cell]int, len(cells))
	for i, c := range cells {
		clusters[c] = guesses[i]
	}
	return clusters, nil
}
