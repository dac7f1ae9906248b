// SPDX-License-Identifier: MIT

package tsv_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/catalog/catalogtest"
	"github.com/katalvlaran/spotsynth/composition"
	"github.com/katalvlaran/spotsynth/internal/tsv"
	"github.com/katalvlaran/spotsynth/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cellTable = "cell_id\tcelltype\tgene_a\tregion\tgene_b\n" +
	"# comment lines are skipped\n" +
	"c1\tT\t3\tcortex\t0\n" +
	"c2\tB\t0\tcortex\t7\n" +
	"c3\tT\t1\tstriatum\t2\n"

func TestReadCatalog(t *testing.T) {
	t.Parallel()

	cat, err := tsv.ReadCatalog(strings.NewReader(cellTable), []string{"celltype", "region"}, "celltype", "region")
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())
	assert.Equal(t, []string{"gene_a", "gene_b"}, cat.Genes())
	assert.Equal(t, []string{"T", "B"}, cat.CellTypes())
	assert.Equal(t, []string{"cortex", "striatum"}, cat.Regions())
	assert.Equal(t, []int64{1, 2}, cat.Counts(2))
	assert.Equal(t, "c2", cat.ID(1))

	// Without a region variable the region column is still metadata, not a gene.
	cat, err = tsv.ReadCatalog(strings.NewReader(cellTable), []string{"celltype", "region"}, "celltype", "")
	require.NoError(t, err)
	assert.False(t, cat.HasRegions())
	assert.Equal(t, 2, cat.NumGenes())
}

func TestReadCatalog_Errors(t *testing.T) {
	t.Parallel()

	_, err := tsv.ReadCatalog(strings.NewReader(cellTable), []string{"celltype"}, "celltype", "region")
	assert.ErrorIs(t, err, tsv.ErrHeader)

	_, err = tsv.ReadCatalog(strings.NewReader(cellTable), []string{"celltype", "batch"}, "celltype", "")
	assert.ErrorIs(t, err, tsv.ErrHeader)

	_, err = tsv.ReadCatalog(strings.NewReader("id\tcelltype\nc1\tT\n"), []string{"celltype"}, "celltype", "")
	assert.ErrorIs(t, err, tsv.ErrHeader)

	_, err = tsv.ReadCatalog(strings.NewReader("id\tcelltype\tg\nc1\tT\t-1\n"), []string{"celltype"}, "celltype", "")
	assert.ErrorIs(t, err, tsv.ErrValue)

	_, err = tsv.ReadCatalog(strings.NewReader("id\tcelltype\tg\nc1\tT\t2.5\n"), []string{"celltype"}, "celltype", "")
	assert.ErrorIs(t, err, tsv.ErrValue)

	_, err = tsv.ReadCatalog(strings.NewReader("id\tcelltype\tg\nc1\tT\t1\nc1\tT\t1\n"), []string{"celltype"}, "celltype", "")
	assert.ErrorIs(t, err, catalog.ErrDuplicateCell)

	_, err = tsv.ReadCatalog(strings.NewReader("id\tcelltype\tg\nc1\tT\n"), []string{"celltype"}, "celltype", "")
	assert.Error(t, err)

	_, err = tsv.LoadCatalog(filepath.Join(t.TempDir(), "missing.tsv"), []string{"celltype"}, "celltype", "")
	assert.Error(t, err)
}

func readTable(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteDataset(t *testing.T) {
	t.Parallel()

	cat := catalogtest.MustBuild(t, catalogtest.Types(20, "A", "B", "C"), 4)
	ds, err := synth.Generate(cat, composition.ArtificialUniformDistinct, "celltype",
		synth.WithRegions(3), synth.WithSpotRange(2, 2), synth.WithCellsPerSpot(5, 0),
		synth.WithMockRegion(true), synth.WithSeed(3))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, tsv.WriteDataset(dir, ds))

	counts := readTable(t, filepath.Join(dir, tsv.CountsFile))
	require.Len(t, counts, 1+4)
	assert.Equal(t, append([]string{"gene"}, ds.Counts.Spots()...), counts[0])
	assert.Equal(t, "g0", counts[1][0])

	comp := readTable(t, filepath.Join(dir, tsv.CompositionFile))
	require.Len(t, comp, 1+8)
	assert.Equal(t, []string{"name", "region", "A", "B", "C"}, comp[0])
	assert.Equal(t, synth.MockRegionName, comp[8][1])
	var cells int
	for _, v := range comp[1][2:] {
		if v != "0" {
			cells++
			assert.Equal(t, "5", v)
		}
	}
	assert.Equal(t, 1, cells)

	rel := readTable(t, filepath.Join(dir, tsv.RelativeFile))
	require.Len(t, rel, 1+8)

	gold := readTable(t, filepath.Join(dir, tsv.GoldStandardFile))
	require.Len(t, gold, 1+3)
	assert.Equal(t, "region_1", gold[1][0])

	props := readTable(t, filepath.Join(dir, tsv.PropertiesFile))
	assert.Equal(t, []string{"key", "value"}, props[0])
	assert.Len(t, props, 1+ds.Properties.Len())
}

func TestWriteProperties(t *testing.T) {
	t.Parallel()

	var ds synth.Dataset
	ds.Properties.Set("n_spots", "4")
	ds.Properties.Set("dataset_type", "real")
	var buf bytes.Buffer
	require.NoError(t, tsv.WriteProperties(&buf, &ds))
	assert.Equal(t, "key\tvalue\nn_spots\t4\ndataset_type\treal\n", buf.String())
}
