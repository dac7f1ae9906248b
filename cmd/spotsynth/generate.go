// SPDX-License-Identifier: MIT
// Package: spotsynth/cmd/spotsynth
//
// generate.go — the generate command: load a catalog, synthesize, write.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/internal/config"
	"github.com/katalvlaran/spotsynth/internal/sqlitestore"
	"github.com/katalvlaran/spotsynth/internal/tsv"
	"github.com/katalvlaran/spotsynth/synth"
)

func newGenerateCmd(stderr io.Writer) *cobra.Command {
	cfg, envErr := config.Load()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one synthetic dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envErr != nil {
				return usageError{envErr}
			}
			return runGenerate(cmd.Context(), cfg, stderr)
		},
	}
	cfg.BindFlags(cmd.Flags())

	return cmd
}

func runGenerate(ctx context.Context, cfg config.Config, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.Quiet)

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}
	logger.Printf("catalog %s: %d cells, %d genes, %d cell types", cfg.Input, cat.Len(), cat.NumGenes(), len(cat.CellTypes()))

	start := time.Now()
	ds, err := synth.GenerateByName(cat, cfg.DatasetType, cfg.ClusterVar, append(opts, synth.WithContext(ctx))...)
	if err != nil {
		return err
	}
	id, _ := ds.Properties.Get(synth.PropDatasetID)
	logger.Printf("generated %s: %d spots in %s", id, ds.Counts.NumSpots(), time.Since(start).Round(time.Millisecond))

	if err = ctx.Err(); err != nil {
		return err
	}
	if err = writeDataset(ctx, cfg.Out, ds); err != nil {
		return err
	}
	logger.Printf("wrote %s", cfg.Out)

	return nil
}

func isSQLite(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".db")
}

func loadCatalog(ctx context.Context, cfg config.Config) (*catalog.Catalog, error) {
	if !isSQLite(cfg.Input) {
		return tsv.LoadCatalog(cfg.Input, cfg.Labels(), cfg.ClusterVar, cfg.RegionVar)
	}
	// Opening a missing file would create an empty database.
	if _, err := os.Stat(cfg.Input); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	store, err := sqlitestore.Open(cfg.Input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	return store.LoadCatalog(ctx, cfg.ClusterVar, cfg.RegionVar)
}

func writeDataset(ctx context.Context, out string, ds *synth.Dataset) error {
	if !isSQLite(out) {
		return tsv.WriteDataset(out, ds)
	}
	store, err := sqlitestore.Open(out)
	if err != nil {
		return err
	}
	if err = store.WriteDataset(ctx, ds); err != nil {
		_ = store.Close()
		return err
	}

	return store.Close()
}
