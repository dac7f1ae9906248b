// SPDX-License-Identifier: MIT
// Package: spotsynth/spot
//
// errors.go — sentinel errors for spot composition.

package spot

import "errors"

var (
	// ErrBadFrequency is returned for an empty, negative, non-finite or
	// zero-sum frequency vector.
	ErrBadFrequency = errors.New("spot: invalid frequency vector")

	// ErrBadSpotCount is returned when fewer than one spot is requested.
	ErrBadSpotCount = errors.New("spot: spot count must be >= 1")

	// ErrBadTotal is returned for a non-positive mean or negative sd of the
	// cells-per-spot distribution.
	ErrBadTotal = errors.New("spot: invalid cells-per-spot distribution")
)
