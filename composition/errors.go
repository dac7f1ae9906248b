// SPDX-License-Identifier: MIT
// Package: spotsynth/composition
//
// errors.go — sentinel errors for policy computation.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Context (parameter, region, dataset type) is attached with %w wrapping.

package composition

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates missing, contradictory or unknown parameters
	// (region field vs. region count, unknown dataset type, nil catalog).
	ErrConfiguration = errors.New("composition: invalid configuration")

	// ErrInsufficientData indicates that the catalog has too few regions or
	// cell types for the requested dataset type.
	ErrInsufficientData = errors.New("composition: insufficient data")

	// ErrUnknownDatasetType is returned by ParseDatasetType; it matches
	// ErrConfiguration under errors.Is.
	ErrUnknownDatasetType = fmt.Errorf("unknown dataset type: %w", ErrConfiguration)
)

// policyErrorf prefixes an error with the dataset type being computed.
func policyErrorf(dt DatasetType, format string, args ...interface{}) error {
	return fmt.Errorf("%s: "+format, append([]interface{}{dt}, args...)...)
}
