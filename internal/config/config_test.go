// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/spotsynth/catalog/catalogtest"
	"github.com/katalvlaran/spotsynth/composition"
	"github.com/katalvlaran/spotsynth/synth"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatasetType != "artificial_diverse_distinct" {
		t.Fatalf("type = %q", cfg.DatasetType)
	}
	if cfg.SpotsMin != 50 || cfg.SpotsMax != 500 {
		t.Fatalf("spots = %d..%d, want 50..500", cfg.SpotsMin, cfg.SpotsMax)
	}
	if cfg.CellsMean != 10 || cfg.CellsSd != 3 {
		t.Fatalf("cells = %g/%g, want 10/3", cfg.CellsMean, cfg.CellsSd)
	}
	if cfg.Workers != 1 || cfg.ClusterVar != "celltype" || cfg.Mode != "largest_remainder" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_EnvThenFlags(t *testing.T) {
	t.Setenv("SPOTSYNTH_TYPE", "real_top1")
	t.Setenv("SPOTSYNTH_SEED", "99")
	t.Setenv("SPOTSYNTH_SPOTS_MIN", "5")
	t.Setenv("SPOTSYNTH_REGION_VAR", "region")
	t.Setenv("SPOTSYNTH_LABEL_COLUMNS", "celltype,region,batch")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	if err := fs.Parse([]string{"--seed", "7", "--spots-max", "9", "-i", "cells.tsv", "--out", "outdir", "--mock-region"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	if cfg.DatasetType != "real_top1" {
		t.Fatalf("type = %q, want real_top1", cfg.DatasetType)
	}
	if cfg.Seed != 7 {
		t.Fatalf("seed = %d, want flag value 7", cfg.Seed)
	}
	if cfg.SpotsMin != 5 || cfg.SpotsMax != 9 {
		t.Fatalf("spots = %d..%d, want 5..9", cfg.SpotsMin, cfg.SpotsMax)
	}
	if cfg.Input != "cells.tsv" || cfg.Out != "outdir" || !cfg.MockRegion {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
	if got := cfg.Labels(); len(got) != 3 || got[2] != "batch" {
		t.Fatalf("labels = %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("SPOTSYNTH_SPOTS_MIN", "many")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateAndLabels(t *testing.T) {
	t.Parallel()

	cfg := Config{ClusterVar: "celltype"}
	if err := cfg.Validate(); !errors.Is(err, ErrMissing) {
		t.Fatalf("validate = %v, want ErrMissing", err)
	}
	cfg.Input, cfg.Out = "a", "b"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := cfg.Labels(); len(got) != 1 || got[0] != "celltype" {
		t.Fatalf("labels = %v", got)
	}
	cfg.RegionVar = "region"
	if got := cfg.Labels(); len(got) != 2 || got[1] != "region" {
		t.Fatalf("labels = %v", got)
	}
}

func TestOptions_DriveGenerate(t *testing.T) {
	t.Parallel()

	cfg := Config{
		ClusterVar: "celltype", Regions: 2, SpotsMin: 3, SpotsMax: 3,
		CellsMean: 4, CellsSd: 0, Workers: 2, Mode: "multinomial",
		LibraryMean: 10, LibrarySd: 0, DatasetID: "x", Seed: 5,
	}
	opts, err := cfg.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	cat := catalogtest.MustBuild(t, catalogtest.Types(20, "A", "B", "C"), 4)
	ds, err := synth.Generate(cat, composition.ArtificialUniformDistinct, cfg.ClusterVar, opts...)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(ds.Spots) != 6 {
		t.Fatalf("spots = %d, want 6", len(ds.Spots))
	}
	if id, _ := ds.Properties.Get(synth.PropDatasetID); id != "x" {
		t.Fatalf("dataset id = %q", id)
	}
	for i := range ds.Spots {
		if total, _ := ds.Counts.ColumnTotal(i); total > 10 {
			t.Fatalf("spot %d total %d exceeds library size", i, total)
		}
	}

	cfg.Mode = "poisson"
	if _, err := cfg.Options(); !errors.Is(err, synth.ErrConfiguration) {
		t.Fatalf("options = %v, want ErrConfiguration", err)
	}
}
