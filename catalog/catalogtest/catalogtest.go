// Package catalogtest builds small deterministic reference catalogs for tests
// across the module.
package catalogtest

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/spotsynth/catalog"
)

// Group describes N cells sharing a cell type and (optional) region.
type Group struct {
	CellType string
	Region   string
	N        int
}

// Label fields the built catalogs are read from.
const (
	ClusterField = "celltype"
	RegionField  = "region"
)

// Build materializes groups into a catalog over nGenes genes named g0..g{n-1}.
//
// Expression is marker-like and deterministic: a cell of the k-th distinct
// cell type expresses gene k%nGenes strongly, gene (k+1)%nGenes weakly, and
// the last gene as a housekeeping count of 1. Cell ids are
// "<type>_<region>_<j>" (region omitted when empty).
//
// Cells are labeled under ClusterField and, when every group has a region,
// RegionField; catalogs with partial region labels go through catalog.New.
func Build(groups []Group, nGenes int) (*catalog.Catalog, error) {
	genes := make([]string, nGenes)
	for g := range genes {
		genes[g] = fmt.Sprintf("g%d", g)
	}
	regionVar := RegionField
	for _, grp := range groups {
		if grp.Region == "" {
			regionVar = ""
		}
	}
	typeOrder := map[string]int{}
	var records []catalog.Record
	for _, grp := range groups {
		k, ok := typeOrder[grp.CellType]
		if !ok {
			k = len(typeOrder)
			typeOrder[grp.CellType] = k
		}
		for j := 0; j < grp.N; j++ {
			counts := make([]int64, nGenes)
			counts[k%nGenes] += int64(5 + j%4)
			counts[(k+1)%nGenes] += int64(1 + j%2)
			counts[nGenes-1]++
			id := fmt.Sprintf("%s_%d", grp.CellType, j)
			labels := map[string]string{ClusterField: grp.CellType}
			if grp.Region != "" {
				id = fmt.Sprintf("%s_%s_%d", grp.CellType, grp.Region, j)
				labels[RegionField] = grp.Region
			}
			records = append(records, catalog.Record{ID: id, Labels: labels, Counts: counts})
		}
	}

	return catalog.FromRecords(genes, records, ClusterField, regionVar)
}

// MustBuild is Build that fails the test on error.
func MustBuild(tb testing.TB, groups []Group, nGenes int) *catalog.Catalog {
	tb.Helper()
	c, err := Build(groups, nGenes)
	if err != nil {
		tb.Fatalf("catalogtest: %v", err)
	}

	return c
}

// Types returns one unlabeled group of n cells per name.
func Types(n int, names ...string) []Group {
	out := make([]Group, len(names))
	for i, name := range names {
		out[i] = Group{CellType: name, N: n}
	}

	return out
}
