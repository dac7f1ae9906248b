// SPDX-License-Identifier: MIT

package composition_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/catalog/catalogtest"
	"github.com/katalvlaran/spotsynth/composition"
	"github.com/katalvlaran/spotsynth/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

// regional builds a 4-type, 3-region catalog with uneven representation.
// Cell types intern as A, B, D, C.
func regional(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalogtest.MustBuild(t, []catalogtest.Group{
		{CellType: "A", Region: "r1", N: 10},
		{CellType: "B", Region: "r1", N: 3},
		{CellType: "A", Region: "r2", N: 5},
		{CellType: "B", Region: "r2", N: 8},
		{CellType: "D", Region: "r2", N: 4},
		{CellType: "B", Region: "r3", N: 2},
		{CellType: "C", Region: "r3", N: 10},
		{CellType: "D", Region: "r3", N: 4},
	}, 5)
}

func unlabeled(t *testing.T, names ...string) *catalog.Catalog {
	t.Helper()
	return catalogtest.MustBuild(t, catalogtest.Types(10, names...), 6)
}

func ctxFor(dt composition.DatasetType, cat *catalog.Catalog, seed int64) composition.PolicyContext {
	pc := composition.PolicyContext{Catalog: cat, ClusterVar: "celltype", Rand: rng.FromSeed(seed)}
	if dt.Family() == composition.FamilyReal {
		pc.RegionVar = "region"
	} else {
		pc.NRegions = 3
	}

	return pc
}

// poolNames maps each region to the names of its admitted cell types.
func poolNames(res *composition.Result) map[string][]string {
	out := make(map[string][]string, len(res.Regions))
	for r, name := range res.Regions {
		for _, t := range res.Pools[r] {
			out[name] = append(out[name], res.CellTypes[t])
		}
	}

	return out
}

func TestDatasetType_NamesRoundTrip(t *testing.T) {
	t.Parallel()

	all := composition.AllDatasetTypes()
	require.Len(t, all, 17)
	seen := map[string]bool{}
	for _, dt := range all {
		require.True(t, dt.Valid())
		name := dt.String()
		require.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true

		got, err := composition.ParseDatasetType(name)
		require.NoError(t, err)
		require.Equal(t, dt, got)
	}

	got, err := composition.ParseDatasetType("  REAL_Top1 ")
	require.NoError(t, err)
	assert.Equal(t, composition.RealTop1, got)

	_, err = composition.ParseDatasetType("real_top3")
	assert.ErrorIs(t, err, composition.ErrUnknownDatasetType)
	assert.ErrorIs(t, err, composition.ErrConfiguration)

	assert.Equal(t, "DatasetType(99)", composition.DatasetType(99).String())
	assert.Equal(t, "real", composition.FamilyReal.String())
	assert.Equal(t, "artificial", composition.FamilyArtificial.String())
}

func TestDatasetType_Classification(t *testing.T) {
	t.Parallel()

	assert.True(t, composition.ArtificialUniformDistinct.Distinct())
	assert.True(t, composition.ArtificialRegionalRareCelltypeDiverse.Distinct())
	assert.False(t, composition.ArtificialDominantCelltypeDiverse.Distinct())
	assert.True(t, composition.ArtificialDiverseOverlapMissingCelltypeSC.Overlap())
	assert.False(t, composition.RealTop2Overlap.Overlap())
	assert.True(t, composition.RealTop1Uniform.Uniform())
	assert.True(t, composition.ArtificialUniformOverlap.Uniform())
	assert.False(t, composition.ArtificialDiverseDistinct.Uniform())

	var nReal, nArtificial int
	for _, dt := range composition.AllDatasetTypes() {
		if dt.Family() == composition.FamilyReal {
			nReal++
		} else {
			nArtificial++
		}
	}
	assert.Equal(t, 6, nReal)
	assert.Equal(t, 11, nArtificial)
}

func TestCompute_InvariantsAcrossAllTypes(t *testing.T) {
	t.Parallel()

	reg := regional(t)
	flat := unlabeled(t, "A", "B", "C", "D", "E", "F")
	for _, dt := range composition.AllDatasetTypes() {
		dt := dt
		t.Run(dt.String(), func(t *testing.T) {
			t.Parallel()
			cat := flat
			if dt.Family() == composition.FamilyReal {
				cat = reg
			}
			for seed := int64(1); seed <= 25; seed++ {
				res, err := composition.Compute(ctxFor(dt, cat, seed), dt)
				require.NoError(t, err, "seed %d", seed)
				require.NoError(t, res.Validate(tol), "seed %d", seed)
				require.Equal(t, dt, res.Type)
				require.Len(t, res.Scope, len(res.Regions))

				if dt.Uniform() {
					for r := range res.Regions {
						want := 1 / float64(len(res.Pools[r]))
						for _, k := range res.Pools[r] {
							v, _ := res.Freq.At(r, k)
							require.InDelta(t, want, v, tol)
						}
					}
				}
				if dt.Distinct() {
					owner := map[int]int{}
					for r, pool := range res.Pools {
						for _, k := range pool {
							prev, dup := owner[k]
							require.False(t, dup, "type %d in regions %d and %d", k, prev, r)
							owner[k] = r
						}
					}
				}
				if dt.Overlap() {
					count := map[int]int{}
					shared := false
					for _, pool := range res.Pools {
						for _, k := range pool {
							count[k]++
							shared = shared || count[k] > 1
						}
					}
					require.True(t, shared, "seed %d: no shared cell type", seed)
				}
				for _, k := range res.Removed {
					for r := range res.Regions {
						require.False(t, res.Admitted(r, k))
					}
				}
			}
		})
	}
}

func TestCompute_UniformDistinctOneTypePerRegion(t *testing.T) {
	t.Parallel()

	cat := unlabeled(t, "A", "B", "C")
	res, err := composition.Compute(ctxFor(composition.ArtificialUniformDistinct, cat, 7), composition.ArtificialUniformDistinct)
	require.NoError(t, err)
	require.Equal(t, []string{"region_1", "region_2", "region_3"}, res.Regions)

	seen := map[int]bool{}
	for r := range res.Regions {
		require.Len(t, res.Pools[r], 1)
		k := res.Pools[r][0]
		v, _ := res.Freq.At(r, k)
		assert.Equal(t, 1.0, v)
		seen[k] = true
		assert.Equal(t, catalog.AnyRegion, res.Scope[r])
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, []int{0, 1, 2}, res.Universe())
}

func TestCompute_RealReproducesProportions(t *testing.T) {
	t.Parallel()

	cat := regional(t)
	res, err := composition.Compute(ctxFor(composition.Real, cat, 1), composition.Real)
	require.NoError(t, err)
	require.Equal(t, []string{"r1", "r2", "r3"}, res.Regions)
	require.Equal(t, []int{0, 1, 2}, res.Scope)

	a, _ := cat.TypeIndex("A")
	b, _ := cat.TypeIndex("B")
	c, _ := cat.TypeIndex("C")
	va, _ := res.Freq.At(0, a)
	vb, _ := res.Freq.At(0, b)
	vc, _ := res.Freq.At(0, c)
	assert.InDelta(t, 10.0/13.0, va, tol)
	assert.InDelta(t, 3.0/13.0, vb, tol)
	assert.Equal(t, 0.0, vc)
}

func TestCompute_RealTopRules(t *testing.T) {
	t.Parallel()

	cat := regional(t)
	top1, err := composition.Compute(ctxFor(composition.RealTop1, cat, 1), composition.RealTop1)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"r1": {"A"},
		"r2": {"B"},
		"r3": {"D", "C"},
	}, poolNames(top1))

	top2, err := composition.Compute(ctxFor(composition.RealTop2OverlapUniform, cat, 1), composition.RealTop2OverlapUniform)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"r1": {"A", "B"},
		"r2": {"A", "B", "D"},
		"r3": {"D", "C"},
	}, poolNames(top2))
	assert.InDelta(t, 1.0/3.0, top2.FrequencyVector(1)[0], tol)
}

func TestCompute_RealDropsEmptyRegions(t *testing.T) {
	t.Parallel()

	// A wins r2 and B wins r1, so both regions survive.
	cat := catalogtest.MustBuild(t, []catalogtest.Group{
		{CellType: "A", Region: "r1", N: 2},
		{CellType: "B", Region: "r1", N: 8},
		{CellType: "B", Region: "r2", N: 1},
		{CellType: "A", Region: "r2", N: 9},
	}, 3)
	res, err := composition.Compute(ctxFor(composition.RealTop1, cat, 1), composition.RealTop1)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, res.Regions)

	cat = catalogtest.MustBuild(t, []catalogtest.Group{
		{CellType: "A", Region: "r1", N: 9},
		{CellType: "A", Region: "r2", N: 1},
	}, 3)
	res, err = composition.Compute(ctxFor(composition.RealTop1, cat, 1), composition.RealTop1)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, res.Regions)
	assert.Equal(t, []string{"r2"}, res.DroppedRegions)
}

func TestCompute_MissingCelltypesRemovesProperSubset(t *testing.T) {
	t.Parallel()

	for _, dt := range []composition.DatasetType{composition.RealMissingCelltypesVisium, composition.ArtificialMissingCelltypesVisium} {
		cat := regional(t)
		if dt.Family() == composition.FamilyArtificial {
			cat = unlabeled(t, "A", "B", "C", "D")
		}
		for seed := int64(1); seed <= 20; seed++ {
			res, err := composition.Compute(ctxFor(dt, cat, seed), dt)
			require.NoError(t, err)
			require.NotEmpty(t, res.Removed)
			require.Less(t, len(res.Removed), len(res.CellTypes))
			for _, k := range res.Universe() {
				require.NotContains(t, res.Removed, k)
			}
		}
	}
}

func TestCompute_DominantFactors(t *testing.T) {
	t.Parallel()

	cat := unlabeled(t, "A", "B", "C", "D", "E", "F")
	cases := []struct {
		dt       composition.DatasetType
		lo, hi   float64
		ones     int // regions with factor exactly 1
		presence int // regions containing the perturbed type
	}{
		{composition.ArtificialDominantCelltypeDiverse, composition.DominantFactorMin, composition.DominantFactorMax, 0, 3},
		{composition.ArtificialPartiallyDominantCelltypeDiverse, composition.DominantFactorMin, composition.DominantFactorMax, 1, 3},
		{composition.ArtificialDominantRareCelltypeDiverse, composition.RareFactorMin, composition.RareFactorMax, 0, 3},
		{composition.ArtificialRegionalRareCelltypeDiverse, composition.RareFactorMin, composition.RareFactorMax, 0, 1},
	}
	for _, tc := range cases {
		for seed := int64(1); seed <= 10; seed++ {
			res, err := composition.Compute(ctxFor(tc.dt, cat, seed), tc.dt)
			require.NoError(t, err)
			s := res.Dominant
			require.GreaterOrEqual(t, s, 0, tc.dt.String())
			require.Len(t, res.DominanceFactors, 3)

			var ones, presence int
			for r, f := range res.DominanceFactors {
				if !res.Admitted(r, s) {
					require.Zero(t, f)
					continue
				}
				presence++
				if f == 1 {
					ones++
				} else {
					require.True(t, f >= tc.lo && f <= tc.hi, "%s factor %g", tc.dt, f)
				}
				row := res.FrequencyVector(r)
				var others float64
				for _, k := range res.Pools[r] {
					if k != s {
						others += row[k]
					}
				}
				mean := others / float64(len(res.Pools[r])-1)
				require.InDelta(t, f, row[s]/mean, 1e-9)
			}
			assert.Equal(t, tc.ones, ones, tc.dt.String())
			assert.Equal(t, tc.presence, presence, tc.dt.String())
		}
	}
}

func TestCompute_HeldOutLeavesBaseTableUnchanged(t *testing.T) {
	t.Parallel()

	cat := unlabeled(t, "A", "B", "C", "D", "E")
	pairs := [][2]composition.DatasetType{
		{composition.ArtificialDiverseDistinct, composition.ArtificialDiverseDistinctMissingCelltypeSC},
		{composition.ArtificialDiverseOverlap, composition.ArtificialDiverseOverlapMissingCelltypeSC},
	}
	for _, p := range pairs {
		base, err := composition.Compute(ctxFor(p[0], cat, 11), p[0])
		require.NoError(t, err)
		held, err := composition.Compute(ctxFor(p[1], cat, 11), p[1])
		require.NoError(t, err)

		assert.Equal(t, -1, base.HeldOut)
		assert.GreaterOrEqual(t, held.HeldOut, 0)
		assert.Less(t, held.HeldOut, 5)
		assert.Equal(t, base.Pools, held.Pools)
		assert.Equal(t, base.Freq.String(), held.Freq.String())
	}
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	cat := unlabeled(t, "A", "B", "C", "D", "E", "F", "G")
	for _, dt := range composition.AllDatasetTypes() {
		if dt.Family() == composition.FamilyReal {
			continue
		}
		a, err := composition.Compute(ctxFor(dt, cat, 42), dt)
		require.NoError(t, err)
		b, err := composition.Compute(ctxFor(dt, cat, 42), dt)
		require.NoError(t, err)
		assert.Equal(t, a, b, dt.String())
	}
}

func TestCompute_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	reg := regional(t)
	flat := unlabeled(t, "A", "B", "C")
	cases := []struct {
		name string
		pc   composition.PolicyContext
		dt   composition.DatasetType
	}{
		{"nil catalog", composition.PolicyContext{ClusterVar: "celltype", NRegions: 2}, composition.ArtificialUniformDistinct},
		{"no cluster var", composition.PolicyContext{Catalog: flat, NRegions: 2}, composition.ArtificialUniformDistinct},
		{"unknown type", composition.PolicyContext{Catalog: flat, ClusterVar: "celltype", NRegions: 2}, composition.DatasetType(42)},
		{"real without region var", composition.PolicyContext{Catalog: reg, ClusterVar: "celltype"}, composition.Real},
		{"real with region count", composition.PolicyContext{Catalog: reg, ClusterVar: "celltype", RegionVar: "region", NRegions: 2}, composition.Real},
		{"real on unlabeled catalog", composition.PolicyContext{Catalog: flat, ClusterVar: "celltype", RegionVar: "region"}, composition.RealTop1},
		{"artificial with region var", composition.PolicyContext{Catalog: reg, ClusterVar: "celltype", RegionVar: "region", NRegions: 2}, composition.ArtificialDiverseOverlap},
		{"artificial without regions", composition.PolicyContext{Catalog: flat, ClusterVar: "celltype"}, composition.ArtificialDiverseOverlap},
		{"foreign cluster field", composition.PolicyContext{Catalog: flat, ClusterVar: "subclass", NRegions: 2}, composition.ArtificialUniformDistinct},
		{"foreign region field", composition.PolicyContext{Catalog: reg, ClusterVar: "celltype", RegionVar: "layer"}, composition.Real},
	}
	for _, tc := range cases {
		_, err := composition.Compute(tc.pc, tc.dt)
		assert.ErrorIs(t, err, composition.ErrConfiguration, tc.name)
	}
}

func TestCompute_InsufficientData(t *testing.T) {
	t.Parallel()

	single := catalogtest.MustBuild(t, []catalogtest.Group{
		{CellType: "A", Region: "only", N: 3},
		{CellType: "B", Region: "only", N: 3},
	}, 3)
	oneType := unlabeled(t, "A")
	twoTypes := unlabeled(t, "A", "B")

	cases := []struct {
		name string
		pc   composition.PolicyContext
		dt   composition.DatasetType
	}{
		{"top2 with one region", composition.PolicyContext{Catalog: single, ClusterVar: "celltype", RegionVar: "region"}, composition.RealTop2Overlap},
		{"removal with one type", composition.PolicyContext{Catalog: oneType, ClusterVar: "celltype", NRegions: 1}, composition.ArtificialMissingCelltypesVisium},
		{"distinct with too few types", composition.PolicyContext{Catalog: twoTypes, ClusterVar: "celltype", NRegions: 3}, composition.ArtificialDiverseDistinct},
		{"overlap with one region", composition.PolicyContext{Catalog: twoTypes, ClusterVar: "celltype", NRegions: 1}, composition.ArtificialUniformOverlap},
		{"dominant with one type", composition.PolicyContext{Catalog: oneType, ClusterVar: "celltype", NRegions: 1}, composition.ArtificialDominantCelltypeDiverse},
		{"partial dominant with one region", composition.PolicyContext{Catalog: twoTypes, ClusterVar: "celltype", NRegions: 1}, composition.ArtificialPartiallyDominantCelltypeDiverse},
		{"held out with one type", composition.PolicyContext{Catalog: oneType, ClusterVar: "celltype", NRegions: 1}, composition.ArtificialDiverseDistinctMissingCelltypeSC},
	}
	for _, tc := range cases {
		_, err := composition.Compute(tc.pc, tc.dt)
		require.Error(t, err, tc.name)
		assert.True(t, errors.Is(err, composition.ErrInsufficientData), "%s: %v", tc.name, err)
		assert.Contains(t, err.Error(), tc.dt.String(), tc.name)
	}
}

func TestResult_ValidateRejectsBadRows(t *testing.T) {
	t.Parallel()

	cat := unlabeled(t, "A", "B", "C")
	res, err := composition.Compute(ctxFor(composition.ArtificialDiverseOverlap, cat, 3), composition.ArtificialDiverseOverlap)
	require.NoError(t, err)
	require.NoError(t, res.Validate(tol))

	k := res.Pools[0][0]
	v, _ := res.Freq.At(0, k)
	require.NoError(t, res.Freq.Set(0, k, v+0.5))
	assert.ErrorIs(t, res.Validate(tol), composition.ErrConfiguration)
}
