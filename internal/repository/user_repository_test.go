package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jterrell/freightplan/internal/auth"
)

func newTestRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return NewUserRepo(db, hasher), mock
}

func TestCreateReturnsNewID(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL add_user(?, ?, ?, ?, ?)")).
		WithArgs(uint64(0), "alice", sqlmock.AnyArg(), "alice@example.com", "User").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(101))

	id, err := repo.Create(context.Background(), "alice", "a long password", "alice@example.com", 0, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(101), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL add_user(?, ?, ?, ?, ?)")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'alice'"})

	_, err := repo.Create(context.Background(), "alice", "a long password", "", 3, "Admin")
	assert.ErrorIs(t, err, ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRejectsBadPasswordBeforeDB(t *testing.T) {
	repo, mock := newTestRepo(t)

	_, err := repo.Create(context.Background(), "alice", "short", "", 0, "")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	_, err = repo.Create(context.Background(), "alice", "", "", 0, "")
	assert.ErrorIs(t, err, auth.ErrPasswordRequired)

	// No query may have reached the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsernameFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT user_id, tenant_id, username, password_hash, email, role, created_at FROM users").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "tenant_id", "username", "password_hash", "email", "role", "created_at"}).
			AddRow(101, 7, "alice", "$2a$10$hash", "alice@example.com", "User", created))

	u, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(101), u.ID)
	assert.Equal(t, uint64(7), u.TenantID)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
	assert.Equal(t, created, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUsernameMiss(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT user_id, tenant_id, username, password_hash, email, role, created_at FROM users").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows(
			[]string{"user_id", "tenant_id", "username", "password_hash", "email", "role", "created_at"}))

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRequiresBothIDs(t *testing.T) {
	repo, mock := newTestRepo(t)

	assert.ErrorIs(t, repo.Delete(context.Background(), 0, 101), ErrMissingIDs)
	assert.ErrorIs(t, repo.Delete(context.Background(), 7, 0), ErrMissingIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCallsProcedure(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("CALL delete_user(?, ?)")).
		WithArgs(uint64(7), uint64(101)).
		WillReturnRows(sqlmock.NewRows([]string{"deleted"}).AddRow(1))

	require.NoError(t, repo.Delete(context.Background(), 7, 101))
	assert.NoError(t, mock.ExpectationsWereMet())
}
