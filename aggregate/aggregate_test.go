// SPDX-License-Identifier: MIT

package aggregate_test

import (
	"sort"
	"testing"

	"github.com/katalvlaran/spotsynth/aggregate"
	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/catalog/catalogtest"
	"github.com/katalvlaran/spotsynth/rng"
	"github.com/katalvlaran/spotsynth/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_TotalEqualsSumOfCellTotals(t *testing.T) {
	t.Parallel()

	cat := catalogtest.MustBuild(t, catalogtest.Types(20, "A", "B", "C"), 5)
	r := rng.FromSeed(8)
	for iter := 0; iter < 100; iter++ {
		cells, err := sampler.Sample(cat, []int{r.Intn(5), r.Intn(5), 1 + r.Intn(5)}, catalog.AnyRegion, r)
		require.NoError(t, err)

		var want int64
		for _, c := range cells {
			want += cat.Total(c)
		}
		vec := aggregate.Aggregate(cat, cells)
		require.Len(t, vec, 5)
		require.Equal(t, want, aggregate.Total(vec))
	}
}

func TestAggregate_Elementwise(t *testing.T) {
	t.Parallel()

	cat, err := catalog.New([]string{"x", "y"}, []catalog.Cell{
		{ID: "a", CellType: "T", Counts: []int64{1, 2}},
		{ID: "b", CellType: "T", Counts: []int64{10, 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 2}, aggregate.Aggregate(cat, []int{0, 1}))
	assert.Equal(t, []int64{2, 4}, aggregate.Aggregate(cat, []int{0, 0}))
	assert.Equal(t, []int64{0, 0}, aggregate.Aggregate(cat, nil))
}

func TestShuffleGenes_IsPermutation(t *testing.T) {
	t.Parallel()

	vec := []int64{9, 0, 3, 3, 7, 1, 0, 12}
	orig := append([]int64(nil), vec...)
	out := aggregate.ShuffleGenes(vec, rng.FromSeed(2))
	require.Equal(t, orig, vec, "input must not be modified")

	a := append([]int64(nil), out...)
	b := append([]int64(nil), vec...)
	sort.Slice(a, func(i, j int) bool { return a[i] < a[j] })
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	assert.Equal(t, b, a)
	assert.Equal(t, aggregate.Total(vec), aggregate.Total(out))
}

func TestDownsample(t *testing.T) {
	t.Parallel()

	vec := []int64{0, 50, 5, 0, 45}
	r := rng.FromSeed(6)
	for _, target := range []int64{1, 10, 57, 99} {
		out := aggregate.Downsample(vec, target, r)
		require.Equal(t, target, aggregate.Total(out))
		for g := range vec {
			require.LessOrEqual(t, out[g], vec[g])
		}
		assert.Zero(t, out[0])
		assert.Zero(t, out[3])
	}
	assert.Equal(t, vec, aggregate.Downsample(vec, 100, r))
	assert.Equal(t, vec, aggregate.Downsample(vec, 1000, r))
	assert.Equal(t, []int64{0, 0, 0, 0, 0}, aggregate.Downsample(vec, 0, r))

	a := aggregate.Downsample(vec, 30, rng.FromSeed(3))
	b := aggregate.Downsample(vec, 30, rng.FromSeed(3))
	assert.Equal(t, a, b)
}

func TestDownsample_LibrariesBeyond32Bits(t *testing.T) {
	t.Parallel()

	// Two genes of 2^32 molecules each: ranks past 2^32 belong to the second.
	vec := []int64{1 << 32, 1 << 32}
	out := aggregate.Downsample(vec, 1000, rng.FromSeed(8))
	require.Equal(t, int64(1000), aggregate.Total(out))
	assert.InDelta(t, 500, out[0], 100)
	assert.InDelta(t, 500, out[1], 100)
}

func TestCountMatrix(t *testing.T) {
	t.Parallel()

	m := aggregate.NewCountMatrix([]string{"g0", "g1", "g2"})
	require.NoError(t, m.AppendColumn("s1", []int64{1, 2, 3}))
	require.NoError(t, m.AppendColumn("s2", []int64{0, 5, 0}))
	assert.ErrorIs(t, m.AppendColumn("s3", []int64{1}), aggregate.ErrGeneMismatch)
	assert.ErrorIs(t, m.AppendColumn("s1", []int64{1, 1, 1}), aggregate.ErrDuplicateSpot)

	assert.Equal(t, 3, m.NumGenes())
	assert.Equal(t, 2, m.NumSpots())
	assert.Equal(t, []string{"s1", "s2"}, m.Spots())
	assert.Equal(t, []string{"g0", "g1", "g2"}, m.Genes())

	v, err := m.At(2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, v)
	v, err = m.At(1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)
	_, err = m.At(3, 0)
	assert.ErrorIs(t, err, aggregate.ErrOutOfRange)

	col, err := m.Column(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 5, 0}, col)
	col[1] = 99
	v, _ = m.At(1, 1)
	assert.EqualValues(t, 5, v, "Column must return a copy")

	tot, err := m.ColumnTotal(0)
	require.NoError(t, err)
	assert.EqualValues(t, 6, tot)
	_, err = m.ColumnTotal(2)
	assert.ErrorIs(t, err, aggregate.ErrOutOfRange)

	s, ok := m.SpotIndex("s2")
	assert.True(t, ok)
	assert.Equal(t, 1, s)
}
