// SPDX-License-Identifier: MIT
// Package: spotsynth/cmd/spotsynth
//
// import.go — the import command: TSV cell table to SQLite catalog.

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/spotsynth/catalog"
	"github.com/katalvlaran/spotsynth/internal/config"
	"github.com/katalvlaran/spotsynth/internal/sqlitestore"
	"github.com/katalvlaran/spotsynth/internal/tsv"
)

func newImportCmd(stderr io.Writer) *cobra.Command {
	cfg, envErr := config.Load()
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store a TSV cell table as a SQLite catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if envErr != nil {
				return usageError{envErr}
			}
			return runImport(cmd.Context(), cfg, stderr)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&cfg.Input, "input", "i", cfg.Input, "Cell table TSV")
	fs.StringVarP(&cfg.Out, "out", "o", cfg.Out, "SQLite catalog to write")
	fs.StringVar(&cfg.ClusterVar, "cluster-var", cfg.ClusterVar, "Label column holding the cell type")
	fs.StringVar(&cfg.RegionVar, "region-var", cfg.RegionVar, "Label column holding the region")
	fs.StringSliceVar(&cfg.LabelColumns, "label-columns", cfg.LabelColumns, "TSV label columns (default: cluster and region vars)")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Suppress progress logging")

	return cmd
}

func runImport(ctx context.Context, cfg config.Config, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.Quiet)

	cat, err := tsv.LoadCatalog(cfg.Input, cfg.Labels(), cfg.ClusterVar, cfg.RegionVar)
	if err != nil {
		return err
	}
	records := make([]catalog.Record, cat.Len())
	for i := range records {
		c := cat.Cell(i)
		labels := map[string]string{cfg.ClusterVar: c.CellType}
		if cfg.RegionVar != "" {
			labels[cfg.RegionVar] = c.Region
		}
		records[i] = catalog.Record{ID: c.ID, Labels: labels, Counts: c.Counts}
	}

	store, err := sqlitestore.Open(cfg.Out)
	if err != nil {
		return err
	}
	if err = store.WriteCatalog(ctx, cat.Genes(), records); err != nil {
		_ = store.Close()
		return err
	}
	logger.Printf("imported %d cells, %d genes into %s", len(records), cat.NumGenes(), cfg.Out)

	return store.Close()
}
