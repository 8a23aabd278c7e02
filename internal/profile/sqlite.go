package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// SQLiteStore implements Store on modernc.org/sqlite so profiles survive
// process restarts. Built-in profiles are overlaid at read time, never
// written to the table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the profile database at the given path and
// configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "profile: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "profile: sqlite exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS weight_profiles (
	name       TEXT PRIMARY KEY,
	weights    TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Migrate creates the profiles table if it does not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "profile: sqlite migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, name string, w model.WeightConfig) error {
	name, normalized, err := prepareForSave(name, w)
	if err != nil {
		return err
	}

	weightsJSON, err := json.Marshal(normalized)
	if err != nil {
		return eris.Wrap(err, "profile: sqlite marshal weights")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO weight_profiles (name, weights, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET weights = excluded.weights, updated_at = excluded.updated_at`,
		name, string(weightsJSON), time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "profile: sqlite save %q", name)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, name string) (*model.WeightConfig, error) {
	var weightsJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT weights FROM weight_profiles WHERE name = ?`, name,
	).Scan(&weightsJSON)
	switch {
	case err == sql.ErrNoRows:
		if builtin, ok := BuiltinProfiles()[name]; ok {
			return &builtin, nil
		}
		return nil, nil
	case err != nil:
		return nil, eris.Wrapf(err, "profile: sqlite load %q", name)
	}

	var w model.WeightConfig
	if err := json.Unmarshal([]byte(weightsJSON), &w); err != nil {
		return nil, eris.Wrapf(err, "profile: sqlite unmarshal %q", name)
	}
	return &w, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM weight_profiles ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "profile: sqlite list")
	}
	defer rows.Close()

	var saved []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "profile: sqlite scan name")
		}
		saved = append(saved, name)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "profile: sqlite iterate names")
	}

	return mergeNames(saved), nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM weight_profiles WHERE name = ?`, name)
	if err != nil {
		return false, eris.Wrapf(err, "profile: sqlite delete %q", name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, eris.Wrap(err, "profile: sqlite rows affected")
	}
	return n > 0, nil
}
