package som

import (
	"errors"
	"fmt"
)

var (
	ErrDimension  = errors.New("dimension mismatch")
	ErrEmpty      = errors.New("no input vectors")
	ErrSingleNode = errors.New("map has a single node")
	ErrConfig     = errors.New("invalid map config")
)

// Neighborhood defines the neighborhood function used during training.
type Neighborhood string

const (
	// Gaussian scales the update with exp(-d^2/2sigma^2) around the winner.
	Gaussian Neighborhood = "gaussian"
	// Bubble updates all the nodes within sigma of the winner with the same weight.
	Bubble Neighborhood = "bubble"
)

// Init defines the weight initialization strategy.
type Init string

const (
	// PCA spans the weights on the plane of the first two principal components.
	PCA Init = "pca"
	// Random picks the weights from the input samples.
	Random Init = "random"
)

// Config is the configuration for a self organizing map.
type Config struct {
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	Sigma        float64      `json:"sigma"`
	LearningRate float64      `json:"learning_rate"`
	Neighborhood Neighborhood `json:"neighborhood"`
	Seed         int64        `json:"seed"`
}

// DefaultConfig returns the config for a map of the given size with the default training parameters.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:        width,
		Height:       height,
		Sigma:        1.5,
		LearningRate: 0.5,
		Neighborhood: Gaussian,
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size [%d,%d]: %w", c.Width, c.Height, ErrConfig)
	}
	if c.Sigma <= 0 {
		return fmt.Errorf("sigma %v: %w", c.Sigma, ErrConfig)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate %v: %w", c.LearningRate, ErrConfig)
	}
	switch c.Neighborhood {
	case Gaussian, Bubble:
	default:
		return fmt.Errorf("neighborhood '%s': %w", c.Neighborhood, ErrConfig)
	}
	return nil
}
