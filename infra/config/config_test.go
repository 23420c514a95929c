package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type experiment struct {
	Data    string  `json:"data"`
	Width   int     `json:"width"`
	Sigma   float64 `json:"sigma"`
	Missing string  `json:"missing"`
}

func TestLoad(t *testing.T) {
	Path = "."

	var cfg experiment
	require.NoError(t, Load("testdata/experiment", &cfg))
	assert.Equal(t, "data.csv", cfg.Data)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 1.5, cfg.Sigma)
	assert.Empty(t, cfg.Missing)

	assert.Error(t, Load("testdata/none", &cfg))
	assert.Panics(t, func() {
		MustLoad("testdata/none", &cfg)
	})
}
