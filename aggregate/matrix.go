// SPDX-License-Identifier: MIT
// Package: spotsynth/aggregate
//
// matrix.go — CountMatrix: genes × spots, column-major int64 storage.

package aggregate

import "fmt"

// CountMatrix holds one column per spot, in append order.
type CountMatrix struct {
	genes []string
	spots []string
	index map[string]int
	data  []int64 // column-major: data[s*G+g]
}

// NewCountMatrix returns an empty matrix over genes. The slice is copied.
func NewCountMatrix(genes []string) *CountMatrix {
	return &CountMatrix{
		genes: append([]string(nil), genes...),
		index: make(map[string]int),
	}
}

// AppendColumn adds a spot column. vec is copied.
func (m *CountMatrix) AppendColumn(name string, vec []int64) error {
	if len(vec) != len(m.genes) {
		return fmt.Errorf("AppendColumn(%s): got %d values for %d genes: %w", name, len(vec), len(m.genes), ErrGeneMismatch)
	}
	if _, dup := m.index[name]; dup {
		return fmt.Errorf("AppendColumn(%s): %w", name, ErrDuplicateSpot)
	}
	m.index[name] = len(m.spots)
	m.spots = append(m.spots, name)
	m.data = append(m.data, vec...)

	return nil
}

// Genes returns the row labels.
func (m *CountMatrix) Genes() []string { return append([]string(nil), m.genes...) }

// Spots returns the column labels in append order.
func (m *CountMatrix) Spots() []string { return append([]string(nil), m.spots...) }

// NumGenes returns the number of rows.
func (m *CountMatrix) NumGenes() int { return len(m.genes) }

// NumSpots returns the number of columns.
func (m *CountMatrix) NumSpots() int { return len(m.spots) }

// SpotIndex returns the column of a named spot.
func (m *CountMatrix) SpotIndex(name string) (int, bool) {
	s, ok := m.index[name]
	return s, ok
}

// At returns the count of gene g in spot s.
func (m *CountMatrix) At(g, s int) (int64, error) {
	if g < 0 || g >= len(m.genes) || s < 0 || s >= len(m.spots) {
		return 0, fmt.Errorf("At(%d,%d): %w", g, s, ErrOutOfRange)
	}

	return m.data[s*len(m.genes)+g], nil
}

// Column returns a copy of spot s's vector.
func (m *CountMatrix) Column(s int) ([]int64, error) {
	if s < 0 || s >= len(m.spots) {
		return nil, fmt.Errorf("Column(%d): %w", s, ErrOutOfRange)
	}
	g := len(m.genes)

	return append([]int64(nil), m.data[s*g:(s+1)*g]...), nil
}

// ColumnTotal returns the library size of spot s.
func (m *CountMatrix) ColumnTotal(s int) (int64, error) {
	if s < 0 || s >= len(m.spots) {
		return 0, fmt.Errorf("ColumnTotal(%d): %w", s, ErrOutOfRange)
	}
	g := len(m.genes)

	return Total(m.data[s*g : (s+1)*g]), nil
}
