// SPDX-License-Identifier: MIT
// Package: spotsynth/sampler

package sampler

import "errors"

// ErrInsufficientCells is returned when a pool holds fewer cells than a spot
// requests. It is never retried.
var ErrInsufficientCells = errors.New("sampler: insufficient cells")
