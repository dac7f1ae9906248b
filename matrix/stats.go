// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row reductions used to turn absolute composition tables into relative
//     ones and to check per-region frequency sums.
//
// Determinism & Performance:
//   - Fixed i→j traversal; single pass over the flat row-major buffer.
//   - Zero-size matrices are treated as no-ops.

package matrix

import (
	"fmt"
	"math"
)

const (
	opRowSums         = "RowSums"
	opNormalizeRowsL1 = "NormalizeRowsL1"
	opAllClose        = "AllClose"
)

// matrixErrorf attaches an operation tag to a sentinel.
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// RowSums returns r where r[i] = Σ_j m[i,j].
// Complexity: O(r*c).
func RowSums(m *Dense) ([]float64, error) {
	if m == nil {
		return nil, matrixErrorf(opRowSums, ErrNilMatrix)
	}
	sums := make([]float64, m.r)
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		for j = 0; j < m.c; j++ {
			sums[i] += m.data[base+j]
		}
	}

	return sums, nil
}

// NormalizeRowsL1 returns a copy of m whose rows are divided by their L1 norm,
// together with the original norms.
//
// Behavior highlights:
//   - Degenerate rows (norm 0) are copied unchanged, so an empty spot row
//     stays all-zero instead of turning into NaN.
//
// Complexity: O(r*c) time, O(r*c) space.
func NormalizeRowsL1(m *Dense) (*Dense, []float64, error) {
	if m == nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL1, ErrNilMatrix)
	}
	out := m.Clone()
	norms := make([]float64, m.r)
	var i, j int
	var s, v float64
	for i = 0; i < m.r; i++ {
		base := i * m.c
		s = 0
		for j = 0; j < m.c; j++ {
			v = m.data[base+j]
			if v < 0 {
				v = -v
			}
			s += v
		}
		norms[i] = s
		if s == 0 {
			continue
		}
		inv := 1.0 / s
		for j = 0; j < m.c; j++ {
			out.data[base+j] *= inv
		}
	}

	return out, norms, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Complexity: O(r*c).
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if a == nil || b == nil {
		return false, matrixErrorf(opAllClose, ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return false, matrixErrorf(opAllClose, ErrDimensionMismatch)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for k := range a.data {
		x, y := a.data[k], b.data[k]
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false, nil
		}
	}

	return true, nil
}
