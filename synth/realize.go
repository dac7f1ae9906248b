// SPDX-License-Identifier: MIT
// Package: spotsynth/synth
//
// realize.go — sampling and aggregation of composed spots, in parallel.
//
// Spot i uses rng.Stream(spotSeed, i) and nothing else, so results are
// identical for any worker count. The first failure, or cancellation of the
// caller's context, stops the spots not yet started; among the failures
// observed, the lowest ordinal is reported.

package synth

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/spotsynth/aggregate"
	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/rng"
	"github.com/katalvlaran/spotsynth/sampler"
	"github.com/katalvlaran/spotsynth/spot"
)

// realize fills spots[i].Cells and returns the expression vector of each spot.
func realize(cat *catalog.Catalog, spots []spot.Spot, scopes []int, cfg *config, spotSeed int64) ([][]int64, error) {
	vecs := make([][]int64, len(spots))
	errs := make([]error, len(spots))

	g, ctx := errgroup.WithContext(cfg.ctx)
	g.SetLimit(cfg.workers)
	for i := range spots {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			vec, err := realizeOne(cat, &spots[i], scopes[i], cfg, rng.Stream(spotSeed, uint64(i)))
			if err != nil {
				errs[i] = err
				return err
			}
			vecs[i] = vec
			return nil
		})
	}
	werr := g.Wait()
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("spot %s: %w", spots[i].Name, err)
		}
	}
	if werr != nil {
		return nil, werr
	}
	if err := cfg.ctx.Err(); err != nil {
		return nil, err
	}

	return vecs, nil
}

func realizeOne(cat *catalog.Catalog, s *spot.Spot, scope int, cfg *config, r *rand.Rand) ([]int64, error) {
	cells, err := sampler.Sample(cat, s.Counts, scope, r)
	if err != nil {
		return nil, err
	}
	s.Cells = cells
	vec := aggregate.Aggregate(cat, cells)
	if cfg.library {
		target := rng.TruncatedNormalInt(r, cfg.libMean, cfg.libSd)
		vec = aggregate.Downsample(vec, int64(target), r)
	}
	if s.Mock {
		vec = aggregate.ShuffleGenes(vec, r)
	}

	return vec, nil
}
