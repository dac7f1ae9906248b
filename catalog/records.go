// SPDX-License-Identifier: MIT
// Package: spotsynth/catalog
//
// records.go — build a catalog from generic labeled records, selecting the
// cluster field and the optional region field by name.

package catalog

import "fmt"

// Record is a reference cell with an open set of metadata labels.
type Record struct {
	ID     string
	Labels map[string]string
	Counts []int64
}

// FromRecords builds a catalog whose cell types come from Labels[clusterVar]
// and, when regionVar != "", whose regions come from Labels[regionVar].
//
// The field names are kept on the catalog (ClusterField, RegionField).
//
// Errors: ErrMissingLabel when a record lacks clusterVar (or regionVar when set),
// plus every error of New.
func FromRecords(genes []string, records []Record, clusterVar, regionVar string) (*Catalog, error) {
	if clusterVar == "" {
		return nil, fmt.Errorf("FromRecords: cluster field: %w", ErrEmptyLabel)
	}
	cells := make([]Cell, len(records))
	for i, rec := range records {
		ct, ok := rec.Labels[clusterVar]
		if !ok {
			return nil, fmt.Errorf("FromRecords: cell %q lacks %q: %w", rec.ID, clusterVar, ErrMissingLabel)
		}
		cells[i] = Cell{ID: rec.ID, CellType: ct, Counts: rec.Counts}
		if regionVar != "" {
			reg, ok := rec.Labels[regionVar]
			if !ok || reg == "" {
				return nil, fmt.Errorf("FromRecords: cell %q lacks %q: %w", rec.ID, regionVar, ErrMissingLabel)
			}
			cells[i].Region = reg
		}
	}

	c, err := New(genes, cells)
	if err != nil {
		return nil, err
	}
	c.clusterField, c.regionField = clusterVar, regionVar

	return c, nil
}
