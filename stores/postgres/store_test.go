package postgres

import (
	"context"
	"testing"

	"greengallery/core"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestLoadAbsentReturnsNil(t *testing.T) {
	mock := newMock(t)
	s := newStore(mock)

	mock.ExpectQuery(`SELECT snapshot FROM profiles WHERE user_id = \$1`).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	got, err := s.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDecodesStoredDocument(t *testing.T) {
	mock := newMock(t)
	s := newStore(mock)

	doc := []byte(`{"theme":"ocean","uploadedVideos":[{"id":1,"title":"a","url":"u","timestamp":"ts"}],"videos":[]}`)
	mock.ExpectQuery(`SELECT snapshot FROM profiles WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"snapshot"}).AddRow(doc))

	got, err := s.Load(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ocean", got.Appearance.Theme)
	assert.True(t, got.Media.Contains(1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUpsertsMergedDocument(t *testing.T) {
	mock := newMock(t)
	s := newStore(mock)

	mock.ExpectQuery(`SELECT snapshot FROM profiles WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`(?s)INSERT INTO profiles.+ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs("user-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	snap := core.NewProfileSnapshot()
	require.NoError(t, s.Save(context.Background(), "user-1", snap))
	require.NoError(t, mock.ExpectationsWereMet())
}
