// SPDX-License-Identifier: MIT
// Package: spotsynth/internal/tsv
//
// reader.go — cell table loader.

package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/spotsynth/catalog"
)

var (
	// ErrHeader is returned for a header without genes or a missing label column.
	ErrHeader = errors.New("tsv: invalid header")

	// ErrValue is returned for a count that is not a non-negative integer.
	ErrValue = errors.New("tsv: invalid count")
)

// LoadCatalog reads the cell table at path. See ReadCatalog.
func LoadCatalog(path string, labels []string, clusterVar, regionVar string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	cat, err := ReadCatalog(f, labels, clusterVar, regionVar)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cat, nil
}

// ReadCatalog parses a cell table. labels lists the header columns holding
// metadata; clusterVar (and regionVar when non-empty) must be among them.
func ReadCatalog(r io.Reader, labels []string, clusterVar, regionVar string) (*catalog.Catalog, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	isLabel := make(map[string]bool, len(labels))
	for _, l := range labels {
		isLabel[l] = true
	}
	for _, want := range []string{clusterVar, regionVar} {
		if want != "" && !isLabel[want] {
			return nil, fmt.Errorf("column %q is not a label column: %w", want, ErrHeader)
		}
	}

	var (
		labelCols = map[int]string{}
		geneCols  []int
		genes     []string
	)
	for i, name := range header {
		if i == 0 {
			continue
		}
		if isLabel[name] {
			labelCols[i] = name
			continue
		}
		geneCols = append(geneCols, i)
		genes = append(genes, name)
	}
	if len(labelCols) != len(isLabel) {
		return nil, fmt.Errorf("label columns %v not all present in header: %w", labels, ErrHeader)
	}
	if len(genes) == 0 {
		return nil, fmt.Errorf("no gene columns: %w", ErrHeader)
	}

	var records []catalog.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec := catalog.Record{
			ID:     row[0],
			Labels: make(map[string]string, len(labelCols)),
			Counts: make([]int64, len(geneCols)),
		}
		for i, name := range labelCols {
			rec.Labels[name] = row[i]
		}
		for j, col := range geneCols {
			v, err := strconv.ParseInt(row[col], 10, 64)
			if err != nil || v < 0 {
				return nil, fmt.Errorf("line %d, gene %q: %q: %w", line, genes[j], row[col], ErrValue)
			}
			rec.Counts[j] = v
		}
		records = append(records, rec)
	}

	return catalog.FromRecords(genes, records, clusterVar, regionVar)
}
