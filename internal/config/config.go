// SPDX-License-Identifier: MIT
// Package: spotsynth/internal/config
//
// config.go — CLI configuration: SPOTSYNTH_* environment variables, overridden
// by command-line flags.

// Package config loads spotsynth CLI settings from the environment and flags
// and translates them into synth options.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/spotsynth/spot"
	"github.com/katalvlaran/spotsynth/synth"
)

// ErrMissing is returned when a required setting is empty.
var ErrMissing = errors.New("config: missing required setting")

// Config holds the generate command configuration.
type Config struct {
	Input        string   `env:"SPOTSYNTH_INPUT"`
	Out          string   `env:"SPOTSYNTH_OUT"`
	DatasetType  string   `env:"SPOTSYNTH_TYPE" envDefault:"artificial_diverse_distinct"`
	ClusterVar   string   `env:"SPOTSYNTH_CLUSTER_VAR" envDefault:"celltype"`
	RegionVar    string   `env:"SPOTSYNTH_REGION_VAR"`
	LabelColumns []string `env:"SPOTSYNTH_LABEL_COLUMNS" envSeparator:","`
	Regions      int      `env:"SPOTSYNTH_REGIONS" envDefault:"0"`
	SpotsMin     int      `env:"SPOTSYNTH_SPOTS_MIN" envDefault:"50"`
	SpotsMax     int      `env:"SPOTSYNTH_SPOTS_MAX" envDefault:"500"`
	CellsMean    float64  `env:"SPOTSYNTH_CELLS_MEAN" envDefault:"10"`
	CellsSd      float64  `env:"SPOTSYNTH_CELLS_SD" envDefault:"3"`
	MockRegion   bool     `env:"SPOTSYNTH_MOCK_REGION" envDefault:"false"`
	Seed         int64    `env:"SPOTSYNTH_SEED" envDefault:"0"`
	Workers      int      `env:"SPOTSYNTH_WORKERS" envDefault:"1"`
	LibraryMean  float64  `env:"SPOTSYNTH_LIBRARY_SIZE_MEAN" envDefault:"0"`
	LibrarySd    float64  `env:"SPOTSYNTH_LIBRARY_SIZE_SD" envDefault:"0"`
	Mode         string   `env:"SPOTSYNTH_MODE" envDefault:"largest_remainder"`
	DatasetID    string   `env:"SPOTSYNTH_DATASET_ID"`
	Quiet        bool     `env:"SPOTSYNTH_QUIET" envDefault:"false"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// BindFlags registers one flag per field, defaulting to the loaded values.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Input, "input", "i", c.Input, "Cell table: .tsv file or .db SQLite catalog")
	fs.StringVarP(&c.Out, "out", "o", c.Out, "Output directory for TSV tables, or a .db SQLite file")
	fs.StringVarP(&c.DatasetType, "type", "t", c.DatasetType, "Dataset type (see `spotsynth types`)")
	fs.StringVar(&c.ClusterVar, "cluster-var", c.ClusterVar, "Label column holding the cell type")
	fs.StringVar(&c.RegionVar, "region-var", c.RegionVar, "Label column holding the region (real_* types)")
	fs.StringSliceVar(&c.LabelColumns, "label-columns", c.LabelColumns, "TSV label columns (default: cluster and region vars)")
	fs.IntVar(&c.Regions, "regions", c.Regions, "Number of artificial regions (artificial_* types)")
	fs.IntVar(&c.SpotsMin, "spots-min", c.SpotsMin, "Minimum spots per region")
	fs.IntVar(&c.SpotsMax, "spots-max", c.SpotsMax, "Maximum spots per region")
	fs.Float64Var(&c.CellsMean, "cells-mean", c.CellsMean, "Mean cells per spot")
	fs.Float64Var(&c.CellsSd, "cells-sd", c.CellsSd, "Standard deviation of cells per spot")
	fs.BoolVar(&c.MockRegion, "mock-region", c.MockRegion, "Add a gene-shuffled control region")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "Master random seed (0 = default seed)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Spots realized concurrently")
	fs.Float64Var(&c.LibraryMean, "library-size-mean", c.LibraryMean, "Downsample spots to this mean library size (0 = off)")
	fs.Float64Var(&c.LibrarySd, "library-size-sd", c.LibrarySd, "Standard deviation of the library size")
	fs.StringVar(&c.Mode, "mode", c.Mode, "Spot composition mode: largest_remainder or multinomial")
	fs.StringVar(&c.DatasetID, "dataset-id", c.DatasetID, "dataset_id property (default: <type>_<seed>)")
	fs.BoolVarP(&c.Quiet, "quiet", "q", c.Quiet, "Suppress progress logging")
}

// Validate checks the settings the generator cannot check itself.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input: %w", ErrMissing)
	}
	if c.Out == "" {
		return fmt.Errorf("out: %w", ErrMissing)
	}
	if c.ClusterVar == "" {
		return fmt.Errorf("cluster-var: %w", ErrMissing)
	}

	return nil
}

// Labels returns the label columns to read from a TSV input.
func (c Config) Labels() []string {
	if len(c.LabelColumns) > 0 {
		return append([]string(nil), c.LabelColumns...)
	}
	out := []string{c.ClusterVar}
	if c.RegionVar != "" && c.RegionVar != c.ClusterVar {
		out = append(out, c.RegionVar)
	}

	return out
}

// Options translates the settings into synth options.
func (c Config) Options() ([]synth.Option, error) {
	mode, err := spot.ParseMode(c.Mode)
	if err != nil {
		return nil, fmt.Errorf("mode: %v: %w", err, synth.ErrConfiguration)
	}
	opts := []synth.Option{
		synth.WithSeed(c.Seed),
		synth.WithSpotRange(c.SpotsMin, c.SpotsMax),
		synth.WithCellsPerSpot(c.CellsMean, c.CellsSd),
		synth.WithWorkers(c.Workers),
		synth.WithMockRegion(c.MockRegion),
		synth.WithCompositionMode(mode),
	}
	if c.RegionVar != "" {
		opts = append(opts, synth.WithRegionVar(c.RegionVar))
	}
	if c.Regions != 0 {
		opts = append(opts, synth.WithRegions(c.Regions))
	}
	if c.LibraryMean != 0 {
		opts = append(opts, synth.WithLibrarySize(c.LibraryMean, c.LibrarySd))
	}
	if c.DatasetID != "" {
		opts = append(opts, synth.WithDatasetID(c.DatasetID))
	}

	return opts, nil
}
