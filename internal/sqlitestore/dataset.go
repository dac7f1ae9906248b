// SPDX-License-Identifier: MIT
// Package: spotsynth/internal/sqlitestore
//
// dataset.go — generated dataset persistence.
//
// Counts are stored sparsely (non-zero entries only); spot_composition carries
// both the absolute cell count and the relative fraction per spot and type.

package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/spotsynth/synth"
)

// WriteDataset stores ds under its dataset_id property.
func (s *Store) WriteDataset(ctx context.Context, ds *synth.Dataset) error {
	id, _ := ds.Properties.Get(synth.PropDatasetID)
	typ, _ := ds.Properties.Get(synth.PropDatasetType)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM datasets WHERE dataset_id = ?`, id).Scan(&n); err != nil {
			return fmt.Errorf("lookup dataset %q: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("WriteDataset %q: %w", id, ErrDuplicateDataset)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO datasets (dataset_id, dataset_type) VALUES (?, ?)`, id, typ); err != nil {
			return fmt.Errorf("insert dataset %q: %w", id, err)
		}

		steps := []func(context.Context, *sql.Tx, string, *synth.Dataset) error{
			writeProperties, writeSpots, writeComposition, writeCounts, writeGoldStandard,
		}
		for _, step := range steps {
			if err := step(ctx, tx, id, ds); err != nil {
				return err
			}
		}

		return nil
	})
}

func writeProperties(ctx context.Context, tx *sql.Tx, id string, ds *synth.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO properties (dataset_id, ord, key, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, k := range ds.Properties.Keys() {
		v, _ := ds.Properties.Get(k)
		if _, err = stmt.ExecContext(ctx, id, i, k, v); err != nil {
			return fmt.Errorf("insert property %s: %w", k, err)
		}
	}

	return nil
}

func writeSpots(ctx context.Context, tx *sql.Tx, id string, ds *synth.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO spots (dataset_id, idx, name, region, mock, total) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	for i, sp := range ds.Spots {
		mock := 0
		if sp.Mock {
			mock = 1
		}
		if _, err = stmt.ExecContext(ctx, id, i, sp.Name, sp.Region, mock, sp.Total); err != nil {
			return fmt.Errorf("insert spot %s: %w", sp.Name, err)
		}
	}

	return nil
}

func writeComposition(ctx context.Context, tx *sql.Tx, id string, ds *synth.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO spot_composition (dataset_id, spot, celltype, cells, fraction) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	abs, rel := ds.Composition, ds.Relative
	for i, name := range abs.Names {
		cells, err := abs.Values.Row(i)
		if err != nil {
			return err
		}
		frac, err := rel.Values.Row(i)
		if err != nil {
			return err
		}
		for k, ct := range abs.CellTypes {
			if cells[k] == 0 {
				continue
			}
			if _, err = stmt.ExecContext(ctx, id, name, ct, int64(cells[k]), frac[k]); err != nil {
				return fmt.Errorf("insert composition %s/%s: %w", name, ct, err)
			}
		}
	}

	return nil
}

func writeCounts(ctx context.Context, tx *sql.Tx, id string, ds *synth.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO counts (dataset_id, spot, gene, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	m := ds.Counts
	genes, spots := m.Genes(), m.Spots()
	for sIdx, spot := range spots {
		col, err := m.Column(sIdx)
		if err != nil {
			return err
		}
		for g, v := range col {
			if v == 0 {
				continue
			}
			if _, err = stmt.ExecContext(ctx, id, spot, genes[g], v); err != nil {
				return fmt.Errorf("insert count %s/%s: %w", spot, genes[g], err)
			}
		}
	}

	return nil
}

func writeGoldStandard(ctx context.Context, tx *sql.Tx, id string, ds *synth.Dataset) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO gold_standard (dataset_id, region, celltype, frequency) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()
	gs := ds.GoldStandard
	for r, region := range gs.Regions {
		row, err := gs.Freq.Row(r)
		if err != nil {
			return err
		}
		for k, ct := range gs.CellTypes {
			if _, err = stmt.ExecContext(ctx, id, region, ct, row[k]); err != nil {
				return fmt.Errorf("insert gold standard %s/%s: %w", region, ct, err)
			}
		}
	}

	return nil
}

// DatasetIDs lists the stored dataset ids in insertion order.
func (s *Store) DatasetIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT dataset_id FROM datasets ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("scan datasets: %w", err)
	}

	return ids, nil
}

// Properties returns the stored summary of dataset id as key/value pairs in
// their original order.
func (s *Store) Properties(ctx context.Context, id string) ([][2]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM properties WHERE dataset_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	var out [][2]string
	for rows.Next() {
		var kv [2]string
		if err = rows.Scan(&kv[0], &kv[1]); err != nil {
			_ = rows.Close()
			return nil, err
		}
		out = append(out, kv)
	}
	if err = closeRows(rows); err != nil {
		return nil, fmt.Errorf("scan properties: %w", err)
	}

	return out, nil
}
