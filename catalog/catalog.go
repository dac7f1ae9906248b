// SPDX-License-Identifier: MIT
// Package: spotsynth/catalog
//
// catalog.go — construction, label interning and bitmap indices.
//
// Contract:
//   - Cell ids are unique and non-empty; every cell has a cell type.
//   - Region labels are optional per cell; HasRegions reports whether every
//     cell carries one (required by the real-data policies).
//   - Expression vectors are copied on construction; the catalog never
//     exposes its backing slices for writing.

package catalog

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// AnyRegion selects the whole catalog in Pool (no region scope).
const AnyRegion = -1

// Cell is one reference cell.
type Cell struct {
	ID       string
	CellType string
	Region   string // empty when the reference has no region annotation
	Counts   []int64
}

// Catalog is an immutable, index-based view over reference cells.
type Catalog struct {
	genes []string

	ids      []string
	typeOf   []int
	regionOf []int // AnyRegion when unlabeled
	counts   [][]int64
	totals   []int64

	cellTypes []string
	typeIdx   map[string]int
	regions   []string
	regionIdx map[string]int

	byType   []*roaring.Bitmap
	byRegion []*roaring.Bitmap

	labeled int // number of cells carrying a region label

	// Label fields the catalog was built from; empty when built by New.
	clusterField string
	regionField  string
}

// New builds a catalog over genes from cells.
//
// Errors: ErrEmptyCatalog, ErrEmptyLabel, ErrDuplicateCell, ErrGeneMismatch,
// ErrNegativeCount, each wrapped with the offending cell id.
//
// Complexity: O(N·G) time and space.
func New(genes []string, cells []Cell) (*Catalog, error) {
	if len(genes) == 0 || len(cells) == 0 {
		return nil, fmt.Errorf("New: %d genes, %d cells: %w", len(genes), len(cells), ErrEmptyCatalog)
	}
	seenGene := make(map[string]struct{}, len(genes))
	for _, g := range genes {
		if _, dup := seenGene[g]; dup || g == "" {
			return nil, fmt.Errorf("New: gene %q: %w", g, ErrGeneMismatch)
		}
		seenGene[g] = struct{}{}
	}

	c := &Catalog{
		genes:     append([]string(nil), genes...),
		ids:       make([]string, 0, len(cells)),
		typeOf:    make([]int, 0, len(cells)),
		regionOf:  make([]int, 0, len(cells)),
		counts:    make([][]int64, 0, len(cells)),
		totals:    make([]int64, 0, len(cells)),
		typeIdx:   make(map[string]int),
		regionIdx: make(map[string]int),
	}
	seen := make(map[string]struct{}, len(cells))

	for i := range cells {
		cell := &cells[i]
		if cell.ID == "" {
			return nil, fmt.Errorf("New: cell #%d id: %w", i, ErrEmptyLabel)
		}
		if cell.CellType == "" {
			return nil, fmt.Errorf("New: cell %q cell type: %w", cell.ID, ErrEmptyLabel)
		}
		if _, dup := seen[cell.ID]; dup {
			return nil, fmt.Errorf("New: cell %q: %w", cell.ID, ErrDuplicateCell)
		}
		seen[cell.ID] = struct{}{}
		if len(cell.Counts) != len(genes) {
			return nil, fmt.Errorf("New: cell %q has %d values for %d genes: %w",
				cell.ID, len(cell.Counts), len(genes), ErrGeneMismatch)
		}

		vec := make([]int64, len(cell.Counts))
		var total int64
		for g, v := range cell.Counts {
			if v < 0 {
				return nil, fmt.Errorf("New: cell %q gene %q: %w", cell.ID, genes[g], ErrNegativeCount)
			}
			vec[g] = v
			total += v
		}

		idx := uint32(len(c.ids))
		t := c.internType(cell.CellType)
		c.byType[t].Add(idx)

		r := AnyRegion
		if cell.Region != "" {
			r = c.internRegion(cell.Region)
			c.byRegion[r].Add(idx)
			c.labeled++
		}

		c.ids = append(c.ids, cell.ID)
		c.typeOf = append(c.typeOf, t)
		c.regionOf = append(c.regionOf, r)
		c.counts = append(c.counts, vec)
		c.totals = append(c.totals, total)
	}

	for _, bm := range c.byType {
		bm.RunOptimize()
	}
	for _, bm := range c.byRegion {
		bm.RunOptimize()
	}

	return c, nil
}

func (c *Catalog) internType(name string) int {
	if t, ok := c.typeIdx[name]; ok {
		return t
	}
	t := len(c.cellTypes)
	c.typeIdx[name] = t
	c.cellTypes = append(c.cellTypes, name)
	c.byType = append(c.byType, roaring.New())

	return t
}

func (c *Catalog) internRegion(name string) int {
	if r, ok := c.regionIdx[name]; ok {
		return r
	}
	r := len(c.regions)
	c.regionIdx[name] = r
	c.regions = append(c.regions, name)
	c.byRegion = append(c.byRegion, roaring.New())

	return r
}
