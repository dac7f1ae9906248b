// SPDX-License-Identifier: MIT
// Package: spotsynth/synth
//
// options.go — functional options for Generate.
//
// Contract:
//   - Options are functional (type Option func(*config)), applied in order,
//     last wins.
//   - Only programmer errors panic (nil generator or context). Numeric ranges usually
//     come from user input and are reported by Generate as ErrConfiguration.
//   - Determinism is explicit: WithSeed or WithRand fixes every draw.

package synth

import (
	"context"
	"math/rand"

	"github.com/katalvlaran/spotsynth/spot"
)

// Option customizes a Generate call.
type Option func(*config)

// WithContext lets the caller abandon spot realization. Spots not yet started
// when ctx is done are skipped and Generate returns ctx.Err(). Panics on nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic("synth: WithContext(nil)")
	}
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithSeed fixes the master seed. 0 selects rng.DefaultSeed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.rand = nil
	}
}

// WithRand draws the master seed from r (one Int63 per Generate call).
// Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("synth: WithRand(nil)")
	}
	return func(c *config) {
		c.rand = r
	}
}

// WithRegionVar names the region label the catalog was built with and selects
// real-region dataset types.
func WithRegionVar(name string) Option {
	return func(c *config) {
		c.regionVar = name
	}
}

// WithRegions sets the number of artificial regions.
func WithRegions(n int) Option {
	return func(c *config) {
		c.nRegions = n
	}
}

// WithSpotRange sets the inclusive range the per-region spot count is drawn from.
func WithSpotRange(min, max int) Option {
	return func(c *config) {
		c.spotsMin, c.spotsMax = min, max
	}
}

// WithCellsPerSpot sets the normal distribution of cells per spot.
func WithCellsPerSpot(mean, sd float64) Option {
	return func(c *config) {
		c.cellsMean, c.cellsSd = mean, sd
	}
}

// WithMockRegion toggles the gene-shuffled control region.
func WithMockRegion(enabled bool) Option {
	return func(c *config) {
		c.mock = enabled
	}
}

// WithWorkers bounds the number of spots realized concurrently.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}

// WithCompositionMode selects how spot totals are split across cell types.
func WithCompositionMode(m spot.Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithLibrarySize enables downsampling every spot to a library size drawn
// from N(mean, sd), truncated to ≥ 1. Spots already below the draw are kept
// as is.
func WithLibrarySize(mean, sd float64) Option {
	return func(c *config) {
		c.library = true
		c.libMean, c.libSd = mean, sd
	}
}

// WithDatasetID sets the dataset_id property.
func WithDatasetID(id string) Option {
	return func(c *config) {
		c.datasetID = id
	}
}
