package profile

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bioscore-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgres(mock), mock
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS weight_profiles`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Save_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`ON CONFLICT`).
		WithArgs("team-default", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.Save(context.Background(), "team-default", model.DefaultWeightConfig())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Save_InvalidNeverHitsDatabase(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	invalid := model.DefaultWeightConfig().WithWeight(model.PillarAssetQuality, -1)
	err := s.Save(context.Background(), "bad", invalid)
	require.Error(t, err)

	// No expectations were registered; a query would fail ExpectationsWereMet.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Load_Found(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT weights FROM weight_profiles WHERE name = \$1`).
		WithArgs("team-default").
		WillReturnRows(pgxmock.NewRows([]string{"weights"}).
			AddRow([]byte(`{"assetQuality":0.5,"marketOutlook":0.1,"capitalIntensity":0.1,"strategicFit":0.1,"financialReadiness":0.1,"regulatoryRisk":0.1}`)))

	w, err := s.Load(context.Background(), "team-default")
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.InDelta(t, 0.5, w.AssetQuality, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Load_BuiltinFallback(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT weights FROM weight_profiles WHERE name = \$1`).
		WithArgs(ProfileStrategic).
		WillReturnError(pgx.ErrNoRows)

	w, err := s.Load(context.Background(), ProfileStrategic)
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.InDelta(t, 0.35, w.StrategicFit, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Load_AbsentReturnsNil(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT weights FROM weight_profiles WHERE name = \$1`).
		WithArgs("unknown").
		WillReturnError(pgx.ErrNoRows)

	w, err := s.Load(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List_MergesBuiltins(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT name FROM weight_profiles ORDER BY name`).
		WillReturnRows(pgxmock.NewRows([]string{"name"}).
			AddRow("alpha").
			AddRow(ProfileBalanced))

	names, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{ProfileAggressive, ProfileBalanced, ProfileConservative, ProfileStrategic, "alpha"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM weight_profiles WHERE name = \$1`).
		WithArgs("old").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM weight_profiles WHERE name = \$1`).
		WithArgs("absent").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	existed, err := s.Delete(context.Background(), "old")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Delete(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, existed)

	assert.NoError(t, mock.ExpectationsWereMet())
}
