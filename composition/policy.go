// SPDX-License-Identifier: MIT
// Package: spotsynth/composition
//
// policy.go — shared context, result type and the Compute entry point.
//
// Contract:
//   - Real types require RegionVar and forbid NRegions; artificial types require
//     NRegions ≥ 1 and forbid RegionVar (ErrConfiguration otherwise).
//   - Result.Freq is a dense R×K table (K = all catalog cell types, in catalog
//     order) with explicit zeros for inadmissible pairs; each row sums to 1.
//   - Determinism: identical catalog, parameters and Rand state ⇒ identical Result.

package composition

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/matrix"
	"github.com/katalvlaran/spotsynth/rng"
)

// ArtificialRegionPrefix prefixes synthetic region names (region_1, region_2, ...).
const ArtificialRegionPrefix = "region_"

// PolicyContext carries everything a policy needs.
type PolicyContext struct {
	Catalog    *catalog.Catalog
	ClusterVar string // name of the cell-type field the catalog was built from
	RegionVar  string // name of the region field; real types only
	NRegions   int    // number of synthetic regions; artificial types only
	Rand       *rand.Rand
}

// Result is the frequency table plus the bookkeeping of how it was built.
type Result struct {
	Type      DatasetType
	Regions   []string
	CellTypes []string
	Freq      *matrix.Dense // len(Regions) × len(CellTypes)
	Pools     [][]int       // admitted cell-type indices per region, ascending
	Scope     []int         // catalog region per region; catalog.AnyRegion for artificial

	Removed          []int     // cell types removed globally before computing frequencies
	HeldOut          int       // cell type flagged as missing from the reference, or -1
	Dominant         int       // perturbed (dominant or rare) cell type, or -1
	DominanceFactors []float64 // factor applied to Dominant per region; 0 where absent
	DroppedRegions   []string  // real regions left without admitted types
}

// policy is implemented once per family; variants differ by configuration.
type policy interface {
	compute(dt DatasetType, pc *PolicyContext) (*Result, error)
}

// Compute builds the frequency table for dt.
//
// A catalog built by catalog.FromRecords must have been read from the same
// cluster (and, for the real family, region) field named in pc.
//
// Errors: ErrConfiguration (bad parameters or dataset type), ErrInsufficientData
// (too few regions or cell types), both wrapped with the dataset type name.
func Compute(pc PolicyContext, dt DatasetType) (*Result, error) {
	if !dt.Valid() {
		return nil, fmt.Errorf("Compute: %v: %w", dt, ErrUnknownDatasetType)
	}
	if pc.Catalog == nil {
		return nil, policyErrorf(dt, "nil catalog: %w", ErrConfiguration)
	}
	if pc.ClusterVar == "" {
		return nil, policyErrorf(dt, "cluster field is required: %w", ErrConfiguration)
	}
	if f := pc.Catalog.ClusterField(); f != "" && f != pc.ClusterVar {
		return nil, policyErrorf(dt, "cluster field %q: catalog cell types come from %q: %w", pc.ClusterVar, f, ErrConfiguration)
	}
	if pc.Rand == nil {
		pc.Rand = rng.FromSeed(0)
	}

	switch dt.Family() {
	case FamilyReal:
		if pc.RegionVar == "" {
			return nil, policyErrorf(dt, "region field is required: %w", ErrConfiguration)
		}
		if pc.NRegions != 0 {
			return nil, policyErrorf(dt, "region count %d conflicts with region field %q: %w",
				pc.NRegions, pc.RegionVar, ErrConfiguration)
		}
		if f := pc.Catalog.RegionField(); f != "" && f != pc.RegionVar {
			return nil, policyErrorf(dt, "region field %q: catalog regions come from %q: %w", pc.RegionVar, f, ErrConfiguration)
		}
		if !pc.Catalog.HasRegions() {
			return nil, policyErrorf(dt, "region field %q is not set on every cell: %w", pc.RegionVar, ErrConfiguration)
		}
	case FamilyArtificial:
		if pc.RegionVar != "" {
			return nil, policyErrorf(dt, "region field %q conflicts with artificial regions: %w", pc.RegionVar, ErrConfiguration)
		}
		if pc.NRegions < 1 {
			return nil, policyErrorf(dt, "region count %d must be >= 1: %w", pc.NRegions, ErrConfiguration)
		}
	}

	res, err := variants[dt].policy.compute(dt, &pc)
	if err != nil {
		return nil, err
	}
	res.Type = dt

	return res, nil
}

// newResult allocates an empty result over the catalog's cell types.
func newResult(cat *catalog.Catalog) *Result {
	return &Result{
		CellTypes: cat.CellTypes(),
		HeldOut:   -1,
		Dominant:  -1,
	}
}

// finalize turns per-region weight rows into the normalized dense table.
// weights[r][t] > 0 exactly for admitted pairs.
func (res *Result) finalize(weights [][]float64) error {
	k := len(res.CellTypes)
	freq, err := matrix.NewDense(len(weights), k)
	if err != nil {
		return err
	}
	res.Pools = make([][]int, len(weights))
	for r, row := range weights {
		var sum float64
		for _, w := range row {
			sum += w
		}
		pool := make([]int, 0, k)
		for t, w := range row {
			if w <= 0 {
				continue
			}
			pool = append(pool, t)
			if err = freq.Set(r, t, w/sum); err != nil {
				return err
			}
		}
		res.Pools[r] = pool
	}
	res.Freq = freq

	return nil
}

// FrequencyVector returns region r's frequencies over all cell types.
func (res *Result) FrequencyVector(r int) []float64 {
	row, err := res.Freq.Row(r)
	if err != nil {
		return nil
	}

	return row
}

// Admitted reports whether cell type t is admitted in region r.
func (res *Result) Admitted(r, t int) bool {
	v, err := res.Freq.At(r, t)
	return err == nil && v > 0
}

// Universe returns the ascending union of all admitted cell types.
func (res *Result) Universe() []int {
	seen := make([]bool, len(res.CellTypes))
	for _, pool := range res.Pools {
		for _, t := range pool {
			seen[t] = true
		}
	}
	out := make([]int, 0, len(seen))
	for t, ok := range seen {
		if ok {
			out = append(out, t)
		}
	}

	return out
}

// Validate checks the table invariants: every region has a non-empty pool,
// pool entries are positive, everything else is zero, and each row sums to 1
// within tol.
func (res *Result) Validate(tol float64) error {
	if res.Freq == nil || res.Freq.Rows() != len(res.Regions) || len(res.Pools) != len(res.Regions) {
		return fmt.Errorf("Validate: shape: %w", ErrInsufficientData)
	}
	for r := range res.Regions {
		if len(res.Pools[r]) == 0 {
			return fmt.Errorf("Validate: region %q has no cell types: %w", res.Regions[r], ErrInsufficientData)
		}
		row := res.FrequencyVector(r)
		inPool := make(map[int]bool, len(res.Pools[r]))
		for _, t := range res.Pools[r] {
			inPool[t] = true
		}
		var sum float64
		for t, v := range row {
			if inPool[t] != (v > 0) {
				return fmt.Errorf("Validate: region %q cell type %q pool/frequency mismatch (%g): %w",
					res.Regions[r], res.CellTypes[t], v, ErrConfiguration)
			}
			sum += v
		}
		if math.Abs(sum-1) > tol {
			return fmt.Errorf("Validate: region %q sums to %.12f: %w", res.Regions[r], sum, ErrConfiguration)
		}
	}

	return nil
}
