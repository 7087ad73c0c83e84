// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hub

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/news-dataset/internal/dataset"
)

const sqliteFile = "hub.db"

// ErrNotFound is returned when a repo id has never been pushed.
var ErrNotFound = errors.New("hub: dataset not found")

// now is the clock used for push timestamps. Tests override it.
var now = time.Now

// SQLiteHub is a local hub mirror. Each push replaces the stored copy of
// a repo in a single transaction.
type SQLiteHub struct {
	db *sql.DB
}

// Entry describes a dataset stored in the local hub.
type Entry struct {
	RepoID   string
	Private  bool
	NumRows  int
	Columns  []string
	Card     dataset.CardMetadata
	PushedAt time.Time
}

// OpenSQLite opens or creates the hub database at dir/hub.db.
func OpenSQLite(dir string) (*SQLiteHub, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating hub directory: %w", err)
	}

	dbPath := filepath.Join(dir, sqliteFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening hub database: %w", err)
	}

	h := &SQLiteHub{db: db}
	if err := h.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return h, nil
}

// Close releases the database connection.
func (h *SQLiteHub) Close() error {
	return h.db.Close()
}

func (h *SQLiteHub) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			repo_id TEXT PRIMARY KEY,
			private INTEGER NOT NULL,
			num_rows INTEGER NOT NULL,
			columns TEXT NOT NULL,
			card TEXT NOT NULL,
			pushed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			repo_id TEXT NOT NULL REFERENCES datasets(repo_id) ON DELETE CASCADE,
			row_index INTEGER NOT NULL,
			data TEXT NOT NULL,
			PRIMARY KEY (repo_id, row_index)
		)`,
	}
	for _, stmt := range statements {
		if _, err := h.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Push stores ds under repoID, replacing any previous copy.
func (h *SQLiteHub) Push(ctx context.Context, ds *dataset.Dataset, repoID string, private bool) error {
	if err := ValidateRepoID(repoID); err != nil {
		return err
	}

	card, err := ds.Card(repoID)
	if err != nil {
		return err
	}
	columnsJSON, _ := json.Marshal(ds.Columns())

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE repo_id = ?`, repoID); err != nil {
		return fmt.Errorf("deleting old records: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO datasets (repo_id, private, num_rows, columns, card, pushed_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(repo_id) DO UPDATE SET
			private=excluded.private, num_rows=excluded.num_rows,
			columns=excluded.columns, card=excluded.card, pushed_at=excluded.pushed_at`,
		repoID, private, ds.NumRows(), string(columnsJSON), string(card),
		now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upserting dataset: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (repo_id, row_index, data) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < ds.NumRows(); i++ {
		data, err := json.Marshal(ds.Record(i))
		if err != nil {
			return fmt.Errorf("marshaling record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, repoID, i, string(data)); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Get returns the stored description of repoID.
func (h *SQLiteHub) Get(ctx context.Context, repoID string) (Entry, error) {
	var (
		e           Entry
		columnsJSON string
		card        string
		pushedAt    string
	)
	err := h.db.QueryRowContext(ctx,
		`SELECT repo_id, private, num_rows, columns, card, pushed_at FROM datasets WHERE repo_id = ?`,
		repoID,
	).Scan(&e.RepoID, &e.Private, &e.NumRows, &columnsJSON, &card, &pushedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, repoID)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("querying dataset %s: %w", repoID, err)
	}

	if err := json.Unmarshal([]byte(columnsJSON), &e.Columns); err != nil {
		return Entry{}, fmt.Errorf("decoding columns: %w", err)
	}
	if e.Card, err = dataset.ParseCard([]byte(card)); err != nil {
		return Entry{}, err
	}
	if e.PushedAt, err = time.Parse(time.RFC3339Nano, pushedAt); err != nil {
		return Entry{}, fmt.Errorf("parsing push time: %w", err)
	}
	return e, nil
}

// Dataset rebuilds the stored copy of repoID.
func (h *SQLiteHub) Dataset(ctx context.Context, repoID string) (*dataset.Dataset, error) {
	entry, err := h.Get(ctx, repoID)
	if err != nil {
		return nil, err
	}
	b, err := dataset.NewBuilder(entry.Columns)
	if err != nil {
		return nil, err
	}
	defer b.Release()

	rows, err := h.db.QueryContext(ctx,
		`SELECT data FROM records WHERE repo_id = ? ORDER BY row_index`, repoID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		var rec map[string]string
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		values := make([]string, len(entry.Columns))
		for i, c := range entry.Columns {
			values[i] = rec[c]
		}
		if err := b.Append(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return b.Build(), nil
}
