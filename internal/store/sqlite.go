package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"triage-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			done INTEGER NOT NULL,
			priority INTEGER NOT NULL,
			manual_order INTEGER NOT NULL,
			section_key TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_section_order
			ON items(section_key, manual_order DESC)`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

func (s Store) loadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	st := &DB{}

	var modeStr string
	err = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = 'mode'`).Scan(&modeStr)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		st.Config.Mode = model.ModeSimple
	case err != nil:
		return nil, err
	case modeStr == "1":
		st.Config.Mode = model.ModePrioritized
	default:
		st.Config.Mode = model.ModeSimple
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, title, done, priority, manual_order, section_key,
		       created_at_unixms, updated_at_unixms
		FROM items
		ORDER BY section_key ASC, manual_order DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it model.Item
		var done, prio int
		var createdMs, updatedMs int64
		if err := rows.Scan(&it.ID, &it.Title, &done, &prio, &it.ManualOrder,
			&it.SectionKey, &createdMs, &updatedMs); err != nil {
			return nil, err
		}
		it.Done = done != 0
		it.Priority = model.Priority(prio)
		it.CreatedAt = time.UnixMilli(createdMs).UTC()
		it.UpdatedAt = time.UnixMilli(updatedMs).UTC()
		st.Items = append(st.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s Store) saveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES('mode', ?)`,
		fmt.Sprintf("%d", int(st.Config.Mode))); err != nil {
		return err
	}

	// Replace-all strategy: the whole list comfortably fits one transaction
	// and it keeps manual_order rewrites (which touch every row) simple.
	if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
		return err
	}
	for _, it := range st.Items {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items(
			id, title, done, priority, manual_order, section_key,
			created_at_unixms, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.Title, boolToInt(it.Done), int(it.Priority), it.ManualOrder,
			it.SectionKey, it.CreatedAt.UTC().UnixMilli(), it.UpdatedAt.UTC().UnixMilli(),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
