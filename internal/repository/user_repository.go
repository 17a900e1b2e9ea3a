// Package repository holds the identity directory: the user records that
// back credential verification and token minting. Business entities live
// behind the stored-call store, not here.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/jterrell/freightplan/internal/auth"
)

// User mirrors the identity store's `users` table. TenantID is assigned
// at creation and never changes afterwards; no code path lets client
// input influence it.
type User struct {
	ID           uint64
	TenantID     uint64
	Username     string
	PasswordHash string
	Email        string
	Role         string
	CreatedAt    time.Time
}

var (
	// ErrUserExists maps the unique-constraint violation on username.
	ErrUserExists = errors.New("username already exists")
	// ErrUserNotFound is returned by lookups with no matching row.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingIDs is returned when a tenant-scoped delete is attempted
	// without both identifiers. Deleting by user id alone would bypass
	// the tenant boundary.
	ErrMissingIDs = errors.New("tenant id and user id are both required")
)

// UserRepo is the identity directory. Password hashing is delegated to
// the credential store so its validation rules apply on every path that
// creates a credential.
type UserRepo struct {
	DB     *sql.DB
	Hasher *auth.Hasher
}

func NewUserRepo(db *sql.DB, hasher *auth.Hasher) *UserRepo {
	return &UserRepo{DB: db, Hasher: hasher}
}

// Create inserts a user through the add_user stored call and returns the
// new surrogate id. A tenantID of zero lets the procedure allocate a
// fresh tenant atomically with the insert.
func (r *UserRepo) Create(ctx context.Context, username, password, email string, tenantID uint64, role string) (uint64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("username is required")
	}
	if role == "" {
		role = "User"
	}
	hash, err := r.Hasher.Hash(password)
	if err != nil {
		return 0, err
	}

	row := r.DB.QueryRowContext(ctx,
		"CALL add_user(?, ?, ?, ?, ?)",
		tenantID, username, hash, email, role)

	var newID uint64
	if err := row.Scan(&newID); err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, ErrUserExists
		}
		return 0, err
	}
	return newID, nil
}

// GetByUsername fetches a user record for the login flow. A miss returns
// ErrUserNotFound; the caller is responsible for still running a
// verification against the dummy hash so misses cost the same as hits.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, tenant_id, username, password_hash, email, role, created_at FROM users WHERE username = ? LIMIT 1",
		strings.TrimSpace(username)).
		Scan(&u.ID, &u.TenantID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// Delete removes a user by (tenant id, user id). Both are mandatory even
// though user ids are globally unique: the tenant filter is defense in
// depth against a confused caller deleting across the boundary.
func (r *UserRepo) Delete(ctx context.Context, tenantID, userID uint64) error {
	if tenantID == 0 || userID == 0 {
		return ErrMissingIDs
	}
	rows, err := r.DB.QueryContext(ctx, "CALL delete_user(?, ?)", tenantID, userID)
	if err != nil {
		return err
	}
	defer rows.Close()
	// The procedure reports the deleted row; drain so the connection is
	// returned clean to the pool.
	for rows.Next() {
	}
	return rows.Err()
}
