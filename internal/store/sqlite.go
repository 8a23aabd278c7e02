package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "store: sqlite open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "store: sqlite exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS evaluations (
	id          TEXT PRIMARY KEY,
	company     TEXT NOT NULL,
	payload     TEXT NOT NULL,
	config_hash TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_evaluations_company ON evaluations(company);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "store: sqlite migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveEvaluation assigns an ID and timestamp if unset and inserts the record.
func (s *SQLiteStore) SaveEvaluation(ctx context.Context, eval *Evaluation) error {
	if eval.ID == "" {
		eval.ID = uuid.New().String()
	}
	if eval.CreatedAt.IsZero() {
		eval.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(eval)
	if err != nil {
		return eris.Wrap(err, "store: marshal evaluation")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, company, payload, config_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		eval.ID, eval.Company.Name, string(payload), eval.ConfigHash, eval.CreatedAt,
	)
	if err != nil {
		return eris.Wrapf(err, "store: insert evaluation %s", eval.ID)
	}
	return nil
}

func (s *SQLiteStore) GetEvaluation(ctx context.Context, id string) (*Evaluation, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM evaluations WHERE id = ?`, id,
	).Scan(&payload)
	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, eris.Wrapf(err, "store: get evaluation %s", id)
	}

	var eval Evaluation
	if err := json.Unmarshal([]byte(payload), &eval); err != nil {
		return nil, eris.Wrapf(err, "store: unmarshal evaluation %s", id)
	}
	return &eval, nil
}

func (s *SQLiteStore) ListEvaluations(ctx context.Context, filter Filter) ([]Evaluation, error) {
	query := `SELECT payload FROM evaluations WHERE 1=1`
	var args []any

	if filter.Company != "" {
		query += ` AND company = ?`
		args = append(args, filter.Company)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "store: list evaluations")
	}
	defer rows.Close()

	var evals []Evaluation
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "store: scan evaluation")
		}
		var eval Evaluation
		if err := json.Unmarshal([]byte(payload), &eval); err != nil {
			return nil, eris.Wrap(err, "store: unmarshal evaluation")
		}
		evals = append(evals, eval)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate evaluations")
	}
	return evals, nil
}
