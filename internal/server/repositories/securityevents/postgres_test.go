package securityevents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestInsert(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	e := secevents.New(secevents.LoginFailed, "", map[string]any{"email": "a@b.pt"}, at)

	mock.ExpectExec(`(?s)INSERT INTO security_events .* ON CONFLICT \(id\) DO NOTHING`).
		WithArgs(e.ID, "login_failed", nil, []byte(`{"email":"a@b.pt"}`), at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectExec(`INSERT`).WillReturnError(errors.New("db down"))

	err := repo.Insert(context.Background(), secevents.New(secevents.Logout, "u1", nil, time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
