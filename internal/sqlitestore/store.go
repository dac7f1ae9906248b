// SPDX-License-Identifier: MIT
// Package: spotsynth/internal/sqlitestore
//
// store.go — SQLite persistence for reference catalogs and generated datasets.
//
// Catalog schema (input):
//
//	genes(idx, name)                 gene order
//	cells(idx, cell_id)              cell order
//	cell_labels(cell_id, key, value) metadata such as celltype / region
//	expression(cell_id, gene_idx, count)  non-zero counts only
//
// Dataset schema (output), keyed by dataset_id so one file can hold many runs:
//
//	datasets, properties, spots, spot_composition, counts (non-zero only),
//	gold_standard.

// Package sqlitestore reads reference catalogs from and writes generated
// datasets to SQLite files.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrDuplicateDataset is returned when a dataset_id is already stored.
var ErrDuplicateDataset = errors.New("sqlitestore: dataset already stored")

const schema = `
CREATE TABLE IF NOT EXISTS genes (
	idx INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS cells (
	idx INTEGER PRIMARY KEY,
	cell_id TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS cell_labels (
	cell_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (cell_id, key)
) WITHOUT ROWID;
CREATE TABLE IF NOT EXISTS expression (
	cell_id TEXT NOT NULL,
	gene_idx INTEGER NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (cell_id, gene_idx)
) WITHOUT ROWID;

CREATE TABLE IF NOT EXISTS datasets (
	dataset_id TEXT PRIMARY KEY,
	dataset_type TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS properties (
	dataset_id TEXT NOT NULL,
	ord INTEGER NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (dataset_id, key)
);
CREATE TABLE IF NOT EXISTS spots (
	dataset_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	name TEXT NOT NULL,
	region TEXT NOT NULL,
	mock INTEGER NOT NULL,
	total INTEGER NOT NULL,
	PRIMARY KEY (dataset_id, idx)
);
CREATE TABLE IF NOT EXISTS spot_composition (
	dataset_id TEXT NOT NULL,
	spot TEXT NOT NULL,
	celltype TEXT NOT NULL,
	cells INTEGER NOT NULL,
	fraction REAL NOT NULL,
	PRIMARY KEY (dataset_id, spot, celltype)
);
CREATE TABLE IF NOT EXISTS counts (
	dataset_id TEXT NOT NULL,
	spot TEXT NOT NULL,
	gene TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (dataset_id, spot, gene)
);
CREATE TABLE IF NOT EXISTS gold_standard (
	dataset_id TEXT NOT NULL,
	region TEXT NOT NULL,
	celltype TEXT NOT NULL,
	frequency REAL NOT NULL,
	PRIMARY KEY (dataset_id, region, celltype)
);
`

// Store is an open SQLite file with the schema applied.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite file at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps every statement inside the same transaction view.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA synchronous = OFF", "PRAGMA journal_mode = MEMORY"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// withTx runs fn in a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
