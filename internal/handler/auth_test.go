package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jterrell/freightplan/internal/auth"
	"github.com/jterrell/freightplan/internal/repository"
)

// stubDirectory is an in-memory UserDirectory for handler tests.
type stubDirectory struct {
	hasher  *auth.Hasher
	users   map[string]repository.User
	nextID  uint64
	created []string
}

func newStubDirectory(h *auth.Hasher) *stubDirectory {
	return &stubDirectory{hasher: h, users: map[string]repository.User{}, nextID: 100}
}

func (d *stubDirectory) Create(_ context.Context, username, password, email string, tenantID uint64, role string) (uint64, error) {
	hash, err := d.hasher.Hash(password)
	if err != nil {
		return 0, err
	}
	if _, ok := d.users[username]; ok {
		return 0, repository.ErrUserExists
	}
	d.nextID++
	if tenantID == 0 {
		tenantID = d.nextID
	}
	d.users[username] = repository.User{
		ID: d.nextID, TenantID: tenantID, Username: username,
		PasswordHash: hash, Email: email, Role: role,
	}
	d.created = append(d.created, username)
	return d.nextID, nil
}

func (d *stubDirectory) GetByUsername(_ context.Context, username string) (repository.User, error) {
	u, ok := d.users[username]
	if !ok {
		return repository.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (d *stubDirectory) Delete(_ context.Context, tenantID, userID uint64) error {
	if tenantID == 0 || userID == 0 {
		return repository.ErrMissingIDs
	}
	for name, u := range d.users {
		if u.ID == userID && u.TenantID == tenantID {
			delete(d.users, name)
			return nil
		}
	}
	return nil
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *stubDirectory, *auth.TokenService) {
	t.Helper()
	hasher, err := auth.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService("handler-test-secret", "freightplan", "freightplan-api", time.Hour)
	require.NoError(t, err)
	dir := newStubDirectory(hasher)
	return NewAuthHandler(dir, hasher, tokens, nil, nil), dir, tokens
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func jsonBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoginMintsVerifiableToken(t *testing.T) {
	h, dir, tokens := newTestAuthHandler(t)
	_, err := dir.Create(context.Background(), "alice", "a long password", "", 7, "User")
	require.NoError(t, err)

	rec := postJSON(t, h.Login, "/auth/login", `{"username":"alice","password":"a long password"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	raw, ok := jsonBody(t, rec)["token"].(string)
	require.True(t, ok)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, dir.users["alice"].ID, claims.UserID)
	assert.Equal(t, uint64(7), claims.TenantID)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	h, dir, _ := newTestAuthHandler(t)
	_, err := dir.Create(context.Background(), "alice", "a long password", "", 7, "User")
	require.NoError(t, err)

	// Unknown user and wrong password must be indistinguishable.
	unknown := postJSON(t, h.Login, "/auth/login", `{"username":"nobody","password":"a long password"}`)
	wrongPw := postJSON(t, h.Login, "/auth/login", `{"username":"alice","password":"not the password"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
	assert.Equal(t, "invalid credentials", jsonBody(t, unknown)["error"])
}

func TestLoginRequiresCredentials(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)

	rec := postJSON(t, h.Login, "/auth/login", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterCreatesUser(t *testing.T) {
	h, dir, _ := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"bob","password":"a long password","email":"bob@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotZero(t, jsonBody(t, rec)["user_id"])
	assert.Contains(t, dir.created, "bob")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, dir, _ := newTestAuthHandler(t)
	_, err := dir.Create(context.Background(), "bob", "a long password", "", 0, "")
	require.NoError(t, err)

	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"bob","password":"a long password"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)

	rec := postJSON(t, h.Register, "/auth/register",
		`{"username":"bob","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, jsonBody(t, rec)["error"], "at least 10")
}

func TestMeEchoesIdentity(t *testing.T) {
	h, _, _ := newTestAuthHandler(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: 42, TenantID: 7}))
	rec := httptest.NewRecorder()
	require.NoError(t, h.Me(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := jsonBody(t, rec)
	assert.EqualValues(t, 42, body["user_id"])
	assert.EqualValues(t, 7, body["tenant_id"])
}

func TestDeleteUserScopedToCallerTenant(t *testing.T) {
	h, dir, _ := newTestAuthHandler(t)
	uid, err := dir.Create(context.Background(), "victim", "a long password", "", 7, "User")
	require.NoError(t, err)

	// The caller's verified tenant differs, so the row must survive.
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/users/101", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: 1, TenantID: 99}))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("101")
	require.NoError(t, h.DeleteUser(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err = dir.GetByUsername(context.Background(), "victim")
	assert.NoError(t, err, "user %d must survive a cross-tenant delete", uid)
}
