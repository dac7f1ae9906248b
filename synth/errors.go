// SPDX-License-Identifier: MIT
// Package: spotsynth/synth
//
// errors.go — the error taxonomy of a generation call.
//
// The sentinels are the lower packages' own values, so errors.Is matches at
// every layer.

package synth

import (
	"github.com/katalvlaran/spotsynth/composition"
	"github.com/katalvlaran/spotsynth/sampler"
)

var (
	// ErrConfiguration marks missing, contradictory or out-of-range parameters.
	ErrConfiguration = composition.ErrConfiguration

	// ErrInsufficientData marks too few regions or cell types for the policy.
	ErrInsufficientData = composition.ErrInsufficientData

	// ErrInsufficientCells marks a spot the reference cannot realize.
	ErrInsufficientCells = sampler.ErrInsufficientCells
)
