// SPDX-License-Identifier: MIT
// Package: spotsynth/catalog
//
// errors.go — sentinel errors for catalog construction.
// Callers MUST use errors.Is; messages carry the offending cell or gene via %w wrapping.

package catalog

import "errors"

var (
	// ErrEmptyCatalog indicates that no cells (or no genes) were supplied.
	ErrEmptyCatalog = errors.New("catalog: no cells or genes")

	// ErrDuplicateCell indicates two cells share an identifier.
	ErrDuplicateCell = errors.New("catalog: duplicate cell id")

	// ErrEmptyLabel indicates an empty cell id or cell-type label.
	ErrEmptyLabel = errors.New("catalog: empty label")

	// ErrMissingLabel indicates a requested label field is absent on a cell.
	ErrMissingLabel = errors.New("catalog: missing label field")

	// ErrGeneMismatch indicates an expression vector whose length differs from the gene list,
	// or a duplicated gene name.
	ErrGeneMismatch = errors.New("catalog: expression length does not match genes")

	// ErrNegativeCount indicates a negative expression count.
	ErrNegativeCount = errors.New("catalog: negative expression count")
)
