// SPDX-License-Identifier: MIT
// Package: spotsynth/synth
//
// generate.go — Generate and GenerateByName.
//
// Random streams (all derived from the master seed):
//   - streamPolicy:  frequency table (removal, layout, weights, perturbation).
//   - streamCompose: per-region spot counts and spot composition, region by
//     region, then the mock region.
//   - streamSpots:   parent of one sub-stream per spot ordinal for cell
//     sampling, library-size thinning and the mock gene shuffle.

package synth

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/spotsynth/aggregate"
	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/composition"
	"github.com/katalvlaran/spotsynth/matrix"
	"github.com/katalvlaran/spotsynth/rng"
	"github.com/katalvlaran/spotsynth/spot"
)

const (
	streamPolicy uint64 = iota + 1
	streamCompose
	streamSpots
)

// GenerateByName resolves a dataset type name and calls Generate.
func GenerateByName(cat *catalog.Catalog, datasetType, clusterVar string, opts ...Option) (*Dataset, error) {
	dt, err := composition.ParseDatasetType(datasetType)
	if err != nil {
		return nil, fmt.Errorf("GenerateByName: %w", err)
	}

	return Generate(cat, dt, clusterVar, opts...)
}

// Generate builds one synthetic dataset of type dt from cat. clusterVar names
// the label the catalog's cell types came from.
//
// Errors: ErrConfiguration, ErrInsufficientData, ErrInsufficientCells. A
// failing spot fails the whole call; no partial dataset is returned.
//
// Complexity: O(S·(K log K + c·G)) for S spots of c cells over G genes,
// spread over the configured workers.
func Generate(cat *catalog.Catalog, dt composition.DatasetType, clusterVar string, opts ...Option) (*Dataset, error) {
	cfg := newConfig(opts...)
	if cat == nil {
		return nil, fmt.Errorf("Generate: nil catalog: %w", ErrConfiguration)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("Generate(%s): %w", dt, err)
	}
	seed := cfg.masterSeed()

	res, err := composition.Compute(composition.PolicyContext{
		Catalog:    cat,
		ClusterVar: clusterVar,
		RegionVar:  cfg.regionVar,
		NRegions:   cfg.nRegions,
		Rand:       rng.Stream(seed, streamPolicy),
	}, dt)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}

	spots, scopes, err := composeAll(res, &cfg, rng.Stream(seed, streamCompose))
	if err != nil {
		return nil, fmt.Errorf("Generate(%s): %w", dt, err)
	}

	vecs, err := realize(cat, spots, scopes, &cfg, rng.DeriveSeed(seed, streamSpots))
	if err != nil {
		return nil, fmt.Errorf("Generate(%s): %w", dt, err)
	}

	ds, err := assemble(cat, res, spots, vecs)
	if err != nil {
		return nil, fmt.Errorf("Generate(%s): %w", dt, err)
	}
	ds.Properties = summarize(cat, res, ds, &cfg, seed)

	return ds, nil
}

// composeAll draws the spot count and composition of every region, then of
// the mock region. scopes[i] is the catalog region spot i samples from.
func composeAll(res *composition.Result, cfg *config, r *rand.Rand) ([]spot.Spot, []int, error) {
	var (
		spots  []spot.Spot
		scopes []int
	)
	for i, name := range res.Regions {
		n := rng.UniformInt(r, cfg.spotsMin, cfg.spotsMax)
		batch, err := spot.Compose(name, i, res.FrequencyVector(i), n, cfg.cellsMean, cfg.cellsSd, r, cfg.mode)
		if err != nil {
			return nil, nil, err
		}
		spots = append(spots, batch...)
		for range batch {
			scopes = append(scopes, res.Scope[i])
		}
	}
	if !cfg.mock {
		return spots, scopes, nil
	}

	universe := res.Universe()
	freq := make([]float64, len(res.CellTypes))
	for _, t := range universe {
		freq[t] = 1 / float64(len(universe))
	}
	n := rng.UniformInt(r, cfg.spotsMin, cfg.spotsMax)
	batch, err := spot.Compose(MockRegionName, len(res.Regions), freq, n, cfg.cellsMean, cfg.cellsSd, r, cfg.mode)
	if err != nil {
		return nil, nil, err
	}
	for k := range batch {
		batch[k].Mock = true
		scopes = append(scopes, catalog.AnyRegion)
	}

	return append(spots, batch...), scopes, nil
}

// assemble builds the count matrix and the tables from realized spots.
func assemble(cat *catalog.Catalog, res *composition.Result, spots []spot.Spot, vecs [][]int64) (*Dataset, error) {
	counts := aggregate.NewCountMatrix(cat.Genes())
	k := len(res.CellTypes)
	values, err := matrix.NewDense(len(spots), k)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(spots))
	regions := make([]string, len(spots))
	for i, s := range spots {
		if err = counts.AppendColumn(s.Name, vecs[i]); err != nil {
			return nil, err
		}
		names[i], regions[i] = s.Name, s.Region
		for t, n := range s.Counts {
			if err = values.Set(i, t, float64(n)); err != nil {
				return nil, err
			}
		}
	}
	relative, _, err := matrix.NormalizeRowsL1(values)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Counts: counts,
		Composition: Composition{
			CellTypes: append([]string(nil), res.CellTypes...),
			Names:     names,
			Regions:   regions,
			Values:    values,
		},
		Relative: Composition{
			CellTypes: append([]string(nil), res.CellTypes...),
			Names:     append([]string(nil), names...),
			Regions:   append([]string(nil), regions...),
			Values:    relative,
		},
		GoldStandard: GoldStandard{
			Regions:   append([]string(nil), res.Regions...),
			CellTypes: append([]string(nil), res.CellTypes...),
			Freq:      res.Freq.Clone(),
		},
		Spots: spots,
	}, nil
}
