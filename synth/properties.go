// SPDX-License-Identifier: MIT
// Package: spotsynth/synth
//
// properties.go — the flat dataset summary.
//
// Spot metrics (mean_*) are averaged over the prior-region spots; mock spots
// are excluded. Lists are comma-separated, empty when there is nothing to list.

package synth

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/composition"
)

// Property keys, in output order.
const (
	PropDatasetID        = "dataset_id"
	PropDatasetType      = "dataset_type"
	PropNRegions         = "n_regions"
	PropNSpots           = "n_spots"
	PropNGenes           = "n_genes"
	PropNCellTypes       = "n_celltypes"
	PropSeed             = "seed"
	PropMockRegion       = "mock_region"
	PropRemovedCellTypes = "removed_celltypes"
	PropHeldOutCellType  = "heldout_celltype"
	PropDominantCellType = "dominant_celltype"
	PropDominanceFactors = "dominance_factors"
	PropDroppedRegions   = "dropped_regions"
	PropMeanCellsPerSpot = "mean_cells_per_spot"
	PropMeanTypesPerSpot = "mean_celltypes_per_spot"
	PropMeanShannon      = "mean_shannon_diversity"
	PropMeanDominance    = "mean_dominance"
)

func summarize(cat *catalog.Catalog, res *composition.Result, ds *Dataset, cfg *config, seed int64) Properties {
	var p Properties
	id := cfg.datasetID
	if id == "" {
		id = res.Type.String() + "_" + strconv.FormatInt(seed, 10)
	}
	p.Set(PropDatasetID, id)
	p.Set(PropDatasetType, res.Type.String())
	p.Set(PropNRegions, strconv.Itoa(len(res.Regions)))
	p.Set(PropNSpots, strconv.Itoa(len(ds.Spots)))
	p.Set(PropNGenes, strconv.Itoa(cat.NumGenes()))
	p.Set(PropNCellTypes, strconv.Itoa(len(res.CellTypes)))
	p.Set(PropSeed, strconv.FormatInt(seed, 10))
	p.Set(PropMockRegion, strconv.FormatBool(cfg.mock))
	p.Set(PropRemovedCellTypes, joinTypes(res.CellTypes, res.Removed))
	p.Set(PropHeldOutCellType, typeOrEmpty(res.CellTypes, res.HeldOut))
	p.Set(PropDominantCellType, typeOrEmpty(res.CellTypes, res.Dominant))
	factors := make([]string, len(res.DominanceFactors))
	for i, f := range res.DominanceFactors {
		factors[i] = formatFloat(f)
	}
	p.Set(PropDominanceFactors, strings.Join(factors, ","))
	p.Set(PropDroppedRegions, strings.Join(res.DroppedRegions, ","))

	var cells, types, shannon, dominance float64
	n := 0
	for _, s := range ds.Spots {
		if s.Mock {
			continue
		}
		n++
		cells += float64(s.Total)
		types += float64(s.NumTypes())
		rel := s.Relative()
		shannon += Shannon(rel)
		dominance += maxOf(rel)
	}
	if n > 0 {
		cells, types, shannon, dominance = cells/float64(n), types/float64(n), shannon/float64(n), dominance/float64(n)
	}
	p.Set(PropMeanCellsPerSpot, formatFloat(cells))
	p.Set(PropMeanTypesPerSpot, formatFloat(types))
	p.Set(PropMeanShannon, formatFloat(shannon))
	p.Set(PropMeanDominance, formatFloat(dominance))

	return p
}

// Shannon returns -Σ p·ln p over the positive entries of a proportion vector.
func Shannon(p []float64) float64 {
	var h float64
	for _, v := range p {
		if v > 0 {
			h -= v * math.Log(v)
		}
	}

	return h
}

func maxOf(v []float64) float64 {
	m := 0.0
	for _, x := range v {
		if x > m {
			m = x
		}
	}

	return m
}

func joinTypes(names []string, idx []int) string {
	out := make([]string, len(idx))
	for i, t := range idx {
		out[i] = names[t]
	}

	return strings.Join(out, ",")
}

func typeOrEmpty(names []string, t int) string {
	if t < 0 || t >= len(names) {
		return ""
	}

	return names[t]
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
