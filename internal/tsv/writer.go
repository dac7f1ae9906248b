// SPDX-License-Identifier: MIT
// Package: spotsynth/internal/tsv
//
// writer.go — dataset bundle writer.

package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/spotsynth/matrix"
	"github.com/katalvlaran/spotsynth/synth"
)

// Output file names.
const (
	CountsFile       = "counts.tsv"
	CompositionFile  = "spot_composition.tsv"
	RelativeFile     = "relative_spot_composition.tsv"
	GoldStandardFile = "gold_standard_priorregion.tsv"
	PropertiesFile   = "dataset_properties.tsv"
)

// WriteDataset writes the five tables into dir, creating it if needed.
func WriteDataset(dir string, ds *synth.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tables := []struct {
		name  string
		write func(io.Writer, *synth.Dataset) error
	}{
		{CountsFile, WriteCounts},
		{CompositionFile, func(w io.Writer, ds *synth.Dataset) error { return WriteComposition(w, ds.Composition, true) }},
		{RelativeFile, func(w io.Writer, ds *synth.Dataset) error { return WriteComposition(w, ds.Relative, false) }},
		{GoldStandardFile, WriteGoldStandard},
		{PropertiesFile, WriteProperties},
	}
	for _, tb := range tables {
		if err := writeFile(filepath.Join(dir, tb.name), ds, tb.write); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, ds *synth.Dataset, write func(io.Writer, *synth.Dataset) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err = write(f, ds); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}

func newWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	return cw.Error()
}

// WriteCounts writes the gene × spot matrix with a "gene" header cell.
func WriteCounts(w io.Writer, ds *synth.Dataset) error {
	cw := newWriter(w)
	m := ds.Counts
	if err := cw.Write(append([]string{"gene"}, m.Spots()...)); err != nil {
		return err
	}
	row := make([]string, m.NumSpots()+1)
	for g, gene := range m.Genes() {
		row[0] = gene
		for s := 0; s < m.NumSpots(); s++ {
			v, err := m.At(g, s)
			if err != nil {
				return err
			}
			row[s+1] = strconv.FormatInt(v, 10)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return flush(cw)
}

// WriteComposition writes a spots × cell-types table. integral selects
// integer formatting for absolute counts.
func WriteComposition(w io.Writer, c synth.Composition, integral bool) error {
	cw := newWriter(w)
	if err := cw.Write(append([]string{"name", "region"}, c.CellTypes...)); err != nil {
		return err
	}
	for i := range c.Names {
		row, err := formatRow(c.Values, i, integral)
		if err != nil {
			return err
		}
		if err = cw.Write(append([]string{c.Names[i], c.Regions[i]}, row...)); err != nil {
			return err
		}
	}

	return flush(cw)
}

// WriteGoldStandard writes the region × cell-type frequency table.
func WriteGoldStandard(w io.Writer, ds *synth.Dataset) error {
	cw := newWriter(w)
	gs := ds.GoldStandard
	if err := cw.Write(append([]string{"region"}, gs.CellTypes...)); err != nil {
		return err
	}
	for r, name := range gs.Regions {
		row, err := formatRow(gs.Freq, r, false)
		if err != nil {
			return err
		}
		if err = cw.Write(append([]string{name}, row...)); err != nil {
			return err
		}
	}

	return flush(cw)
}

// WriteProperties writes the key/value summary in key order.
func WriteProperties(w io.Writer, ds *synth.Dataset) error {
	cw := newWriter(w)
	if err := cw.Write([]string{"key", "value"}); err != nil {
		return err
	}
	for _, k := range ds.Properties.Keys() {
		v, _ := ds.Properties.Get(k)
		if err := cw.Write([]string{k, v}); err != nil {
			return err
		}
	}

	return flush(cw)
}

func formatRow(m *matrix.Dense, i int, integral bool) ([]string, error) {
	vals, err := m.Row(i)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vals))
	for j, v := range vals {
		if integral {
			out[j] = strconv.FormatInt(int64(v), 10)
		} else {
			out[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}

	return out, nil
}
