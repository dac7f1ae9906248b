// SPDX-License-Identifier: MIT
// Package: spotsynth/synth
//
// config.go — resolved configuration and deterministic defaults.
//
// Defaults:
//   - seed       = 0 (rng.DefaultSeed)
//   - spots      = 50..500 per region
//   - cells      = N(10, 3) per spot
//   - workers    = 1
//   - mode       = spot.LargestRemainder
//   - mock       = off, library-size downsampling = off

package synth

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/spotsynth/rng"
	"github.com/katalvlaran/spotsynth/spot"
)

const (
	defaultSpotsMin  = 50
	defaultSpotsMax  = 500
	defaultCellsMean = 10.0
	defaultCellsSd   = 3.0
	defaultWorkers   = 1

	// MockRegionName labels the gene-shuffled control region.
	MockRegionName = "priorregion_mock"
)

type config struct {
	ctx context.Context

	seed int64
	rand *rand.Rand

	regionVar string
	nRegions  int

	spotsMin, spotsMax int
	cellsMean, cellsSd float64
	mode               spot.Mode

	mock    bool
	workers int

	library        bool
	libMean, libSd float64

	datasetID string
}

func newConfig(opts ...Option) config {
	cfg := config{
		ctx:       context.Background(),
		spotsMin:  defaultSpotsMin,
		spotsMax:  defaultSpotsMax,
		cellsMean: defaultCellsMean,
		cellsSd:   defaultCellsSd,
		workers:   defaultWorkers,
		mode:      spot.LargestRemainder,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// validate checks the numeric ranges; region rules are left to composition.
func (c *config) validate() error {
	switch {
	case c.spotsMin < 1:
		return fmt.Errorf("spots min %d must be >= 1: %w", c.spotsMin, ErrConfiguration)
	case c.spotsMax < c.spotsMin:
		return fmt.Errorf("spots max %d < min %d: %w", c.spotsMax, c.spotsMin, ErrConfiguration)
	case !finitePositive(c.cellsMean):
		return fmt.Errorf("cells-per-spot mean %g must be > 0: %w", c.cellsMean, ErrConfiguration)
	case !finiteNonNegative(c.cellsSd):
		return fmt.Errorf("cells-per-spot sd %g must be >= 0: %w", c.cellsSd, ErrConfiguration)
	case c.workers < 1:
		return fmt.Errorf("workers %d must be >= 1: %w", c.workers, ErrConfiguration)
	case c.nRegions < 0:
		return fmt.Errorf("regions %d must be >= 0: %w", c.nRegions, ErrConfiguration)
	case c.mode != spot.LargestRemainder && c.mode != spot.Multinomial:
		return fmt.Errorf("composition mode %v: %w", c.mode, ErrConfiguration)
	case c.library && !finitePositive(c.libMean):
		return fmt.Errorf("library size mean %g must be > 0: %w", c.libMean, ErrConfiguration)
	case c.library && !finiteNonNegative(c.libSd):
		return fmt.Errorf("library size sd %g must be >= 0: %w", c.libSd, ErrConfiguration)
	}

	return nil
}

// masterSeed resolves the seed every stream derives from.
func (c *config) masterSeed() int64 {
	s := c.seed
	if c.rand != nil {
		s = c.rand.Int63()
	}
	if s == 0 {
		s = rng.DefaultSeed
	}

	return s
}

func finitePositive(v float64) bool    { return v > 0 && !math.IsInf(v, 0) }
func finiteNonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 0) }
