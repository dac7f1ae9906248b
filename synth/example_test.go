// SPDX-License-Identifier: MIT

package synth_test

import (
	"fmt"

	"github.com/katalvlaran/spotsynth/catalog/catalogtest"
	"github.com/katalvlaran/spotsynth/composition"
	"github.com/katalvlaran/spotsynth/synth"
)

// Three cell types spread over three artificial regions, two spots of ten
// cells each per region.
func ExampleGenerate() {
	cat, err := catalogtest.Build(catalogtest.Types(100, "A", "B", "C"), 5)
	if err != nil {
		fmt.Println(err)
		return
	}
	ds, err := synth.Generate(cat, composition.ArtificialUniformDistinct, "celltype",
		synth.WithRegions(3),
		synth.WithSpotRange(2, 2),
		synth.WithCellsPerSpot(10, 0),
		synth.WithSeed(42),
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range ds.Spots {
		fmt.Printf("%s cells=%d types=%d\n", s.Name, s.Total, s.NumTypes())
	}
	n, _ := ds.Properties.Get(synth.PropNSpots)
	fmt.Println("n_spots:", n)
	// Output:
	// region_1_1 cells=10 types=1
	// region_1_2 cells=10 types=1
	// region_2_1 cells=10 types=1
	// region_2_2 cells=10 types=1
	// region_3_1 cells=10 types=1
	// region_3_2 cells=10 types=1
	// n_spots: 6
}

func ExampleGenerateByName_unknownType() {
	cat, _ := catalogtest.Build(catalogtest.Types(5, "A", "B"), 3)
	_, err := synth.GenerateByName(cat, "real_top5", "celltype")
	fmt.Println(err)
	// Output:
	// GenerateByName: ParseDatasetType("real_top5"): unknown dataset type: composition: invalid configuration
}
