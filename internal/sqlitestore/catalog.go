// SPDX-License-Identifier: MIT
// Package: spotsynth/internal/sqlitestore
//
// catalog.go — reference catalog import and load.

package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/katalvlaran/spotsynth/catalog"
)

// ErrNoCatalog is returned when the file holds no genes or no cells.
var ErrNoCatalog = errors.New("sqlitestore: no catalog stored")

// WriteCatalog stores genes and records, replacing any stored catalog.
func (s *Store) WriteCatalog(ctx context.Context, genes []string, records []catalog.Record) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"expression", "cell_labels", "cells", "genes"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		stmtGene, err := tx.PrepareContext(ctx, `INSERT INTO genes (idx, name) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmtGene.Close() }()
		for i, g := range genes {
			if _, err = stmtGene.ExecContext(ctx, i, g); err != nil {
				return fmt.Errorf("insert gene %q: %w", g, err)
			}
		}

		stmtCell, err := tx.PrepareContext(ctx, `INSERT INTO cells (idx, cell_id) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmtCell.Close() }()
		stmtLabel, err := tx.PrepareContext(ctx, `INSERT INTO cell_labels (cell_id, key, value) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmtLabel.Close() }()
		stmtExpr, err := tx.PrepareContext(ctx, `INSERT INTO expression (cell_id, gene_idx, count) VALUES (?, ?, ?)`)
		if err != nil {
			return err
		}
		defer func() { _ = stmtExpr.Close() }()

		for i, rec := range records {
			if len(rec.Counts) != len(genes) {
				return fmt.Errorf("cell %q: %d counts for %d genes: %w", rec.ID, len(rec.Counts), len(genes), catalog.ErrGeneMismatch)
			}
			if _, err = stmtCell.ExecContext(ctx, i, rec.ID); err != nil {
				return fmt.Errorf("insert cell %q: %w", rec.ID, err)
			}
			for k, v := range rec.Labels {
				if _, err = stmtLabel.ExecContext(ctx, rec.ID, k, v); err != nil {
					return fmt.Errorf("insert label %s=%s for %q: %w", k, v, rec.ID, err)
				}
			}
			for g, c := range rec.Counts {
				if c == 0 {
					continue
				}
				if _, err = stmtExpr.ExecContext(ctx, rec.ID, g, c); err != nil {
					return fmt.Errorf("insert count for %q: %w", rec.ID, err)
				}
			}
		}

		return nil
	})
}

// LoadCatalog reads the stored catalog, taking cell types from the clusterVar
// label and regions from regionVar (when non-empty).
func (s *Store) LoadCatalog(ctx context.Context, clusterVar, regionVar string) (*catalog.Catalog, error) {
	genes, err := s.loadGenes(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT cell_id FROM cells ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	var records []catalog.Record
	index := map[string]int{}
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, err
		}
		index[id] = len(records)
		records = append(records, catalog.Record{ID: id, Labels: map[string]string{}, Counts: make([]int64, len(genes))})
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("scan cells: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("cells: %w", ErrNoCatalog)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT cell_id, key, value FROM cell_labels`)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	for rows.Next() {
		var id, k, v string
		if err = rows.Scan(&id, &k, &v); err != nil {
			_ = rows.Close()
			return nil, err
		}
		if i, ok := index[id]; ok {
			records[i].Labels[k] = v
		}
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("scan labels: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT cell_id, gene_idx, count FROM expression`)
	if err != nil {
		return nil, fmt.Errorf("query expression: %w", err)
	}
	for rows.Next() {
		var (
			id string
			g  int
			c  int64
		)
		if err = rows.Scan(&id, &g, &c); err != nil {
			_ = rows.Close()
			return nil, err
		}
		i, ok := index[id]
		if !ok || g < 0 || g >= len(genes) {
			_ = rows.Close()
			return nil, fmt.Errorf("expression row (%s, %d): %w", id, g, catalog.ErrGeneMismatch)
		}
		records[i].Counts[g] = c
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("scan expression: %w", err)
	}

	return catalog.FromRecords(genes, records, clusterVar, regionVar)
}

func (s *Store) loadGenes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM genes ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("query genes: %w", err)
	}
	var genes []string
	for rows.Next() {
		var g string
		if err = rows.Scan(&g); err != nil {
			_ = rows.Close()
			return nil, err
		}
		genes = append(genes, g)
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("scan genes: %w", err)
	}
	if len(genes) == 0 {
		return nil, fmt.Errorf("genes: %w", ErrNoCatalog)
	}

	return genes, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}

	return rows.Close()
}
