// SPDX-License-Identifier: MIT
// Package: spotsynth/aggregate

package aggregate

import "errors"

var (
	// ErrGeneMismatch is returned when a column length differs from the gene count.
	ErrGeneMismatch = errors.New("aggregate: vector length does not match gene count")

	// ErrOutOfRange is returned for a gene or spot index outside the matrix.
	ErrOutOfRange = errors.New("aggregate: index out of range")

	// ErrDuplicateSpot is returned when a spot name is appended twice.
	ErrDuplicateSpot = errors.New("aggregate: duplicate spot name")
)
