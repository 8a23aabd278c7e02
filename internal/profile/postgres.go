package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rotisserie/eris"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool used by the Postgres backend. pgxmock
// satisfies it for tests.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store on pgx for shared team deployments where
// several analysts work against the same profile set.
type PostgresStore struct {
	pool Pool
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS weight_profiles (
	name       TEXT PRIMARY KEY,
	weights    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the profiles table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "profile: postgres migrate")
}

// Close is a no-op; the pool is owned by the caller.
func (s *PostgresStore) Close() error { return nil }

func (s *PostgresStore) Save(ctx context.Context, name string, w model.WeightConfig) error {
	name, normalized, err := prepareForSave(name, w)
	if err != nil {
		return err
	}

	weightsJSON, err := json.Marshal(normalized)
	if err != nil {
		return eris.Wrap(err, "profile: postgres marshal weights")
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO weight_profiles (name, weights, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET weights = EXCLUDED.weights, updated_at = EXCLUDED.updated_at`,
		name, weightsJSON, time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "profile: postgres save %q", name)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, name string) (*model.WeightConfig, error) {
	var weightsJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT weights FROM weight_profiles WHERE name = $1`, name,
	).Scan(&weightsJSON)
	switch {
	case eris.Is(err, pgx.ErrNoRows):
		if builtin, ok := BuiltinProfiles()[name]; ok {
			return &builtin, nil
		}
		return nil, nil
	case err != nil:
		return nil, eris.Wrapf(err, "profile: postgres load %q", name)
	}

	var w model.WeightConfig
	if err := json.Unmarshal(weightsJSON, &w); err != nil {
		return nil, eris.Wrapf(err, "profile: postgres unmarshal %q", name)
	}
	return &w, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM weight_profiles ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "profile: postgres list")
	}
	defer rows.Close()

	var saved []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "profile: postgres scan name")
		}
		saved = append(saved, name)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "profile: postgres iterate names")
	}

	return mergeNames(saved), nil
}

func (s *PostgresStore) Delete(ctx context.Context, name string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM weight_profiles WHERE name = $1`, name)
	if err != nil {
		return false, eris.Wrapf(err, "profile: postgres delete %q", name)
	}
	return tag.RowsAffected() > 0, nil
}
