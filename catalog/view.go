// SPDX-License-Identifier: MIT
// Package: spotsynth/catalog
//
// view.go — read-only accessors. Slices returned here are copies.

package catalog

import "github.com/RoaringBitmap/roaring"

// Len returns the number of cells.
func (c *Catalog) Len() int { return len(c.ids) }

// Genes returns a copy of the gene list.
func (c *Catalog) Genes() []string { return append([]string(nil), c.genes...) }

// NumGenes returns the number of genes.
func (c *Catalog) NumGenes() int { return len(c.genes) }

// CellTypes returns the interned cell types in first-encountered order.
func (c *Catalog) CellTypes() []string { return append([]string(nil), c.cellTypes...) }

// Regions returns the interned region labels in first-encountered order.
func (c *Catalog) Regions() []string { return append([]string(nil), c.regions...) }

// ClusterField returns the label field cell types were read from, or "" for a
// catalog built by New.
func (c *Catalog) ClusterField() string { return c.clusterField }

// RegionField returns the label field regions were read from, or "" when the
// catalog was built by New or without a region field.
func (c *Catalog) RegionField() string { return c.regionField }

// HasRegions reports whether every cell carries a region label.
func (c *Catalog) HasRegions() bool { return c.labeled == len(c.ids) && len(c.ids) > 0 }

// TypeIndex resolves a cell-type name.
func (c *Catalog) TypeIndex(name string) (int, bool) {
	t, ok := c.typeIdx[name]
	return t, ok
}

// RegionIndex resolves a region name.
func (c *Catalog) RegionIndex(name string) (int, bool) {
	r, ok := c.regionIdx[name]
	return r, ok
}

// ID returns the identifier of cell i.
func (c *Catalog) ID(i int) string { return c.ids[i] }

// TypeOf returns the cell-type index of cell i.
func (c *Catalog) TypeOf(i int) int { return c.typeOf[i] }

// RegionOf returns the region index of cell i, or AnyRegion when unlabeled.
func (c *Catalog) RegionOf(i int) int { return c.regionOf[i] }

// Total returns Σ counts of cell i.
func (c *Catalog) Total(i int) int64 { return c.totals[i] }

// Counts returns a copy of the expression vector of cell i.
func (c *Catalog) Counts(i int) []int64 { return append([]int64(nil), c.counts[i]...) }

// AddCountsTo accumulates the expression vector of cell i into dst
// (len(dst) must equal NumGenes). It avoids a copy in the aggregation hot path.
func (c *Catalog) AddCountsTo(dst []int64, i int) {
	for g, v := range c.counts[i] {
		dst[g] += v
	}
}

// Cell reconstructs the public record of cell i.
func (c *Catalog) Cell(i int) Cell {
	out := Cell{ID: c.ids[i], CellType: c.cellTypes[c.typeOf[i]], Counts: c.Counts(i)}
	if r := c.regionOf[i]; r != AnyRegion {
		out.Region = c.regions[r]
	}

	return out
}

// Pool returns the cells of type t, restricted to region r unless r == AnyRegion.
// The returned bitmap is owned by the caller.
//
// Complexity: O(|bitmap|) for the copy / intersection.
func (c *Catalog) Pool(t, r int) *roaring.Bitmap {
	if t < 0 || t >= len(c.byType) {
		return roaring.New()
	}
	if r == AnyRegion {
		return c.byType[t].Clone()
	}
	if r < 0 || r >= len(c.byRegion) {
		return roaring.New()
	}

	return roaring.And(c.byType[t], c.byRegion[r])
}

// PoolIndices is Pool materialized as ascending cell indices.
func (c *Catalog) PoolIndices(t, r int) []int {
	raw := c.Pool(t, r).ToArray()
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = int(v)
	}

	return out
}

// PoolSize returns |Pool(t, r)| without materializing it.
func (c *Catalog) PoolSize(t, r int) int {
	if t < 0 || t >= len(c.byType) {
		return 0
	}
	if r == AnyRegion {
		return int(c.byType[t].GetCardinality())
	}
	if r < 0 || r >= len(c.byRegion) {
		return 0
	}

	return int(c.byType[t].AndCardinality(c.byRegion[r]))
}

// TypeCount returns the number of cells of type t.
func (c *Catalog) TypeCount(t int) int { return c.PoolSize(t, AnyRegion) }

// RegionTypeCounts returns the R×K table of cell counts per region and type,
// rows in region order and columns in cell-type order.
//
// Complexity: O(R·K) bitmap intersections.
func (c *Catalog) RegionTypeCounts() [][]int {
	out := make([][]int, len(c.regions))
	for r := range c.regions {
		out[r] = make([]int, len(c.cellTypes))
		for t := range c.cellTypes {
			out[r][t] = c.PoolSize(t, r)
		}
	}

	return out
}
