package auth

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length, counted in
// runes after trimming surrounding whitespace.
const MinPasswordLength = 10

// dummyPassword seeds the hash used when a username lookup misses. It is
// never a valid credential; its only job is to make the miss path cost
// the same as a real verification.
const dummyPassword = "timing-attack-mitigation-constant"

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 10 characters")
)

// Hasher is the credential store: it produces and checks salted bcrypt
// hashes. The encoded output carries the cost and salt, so verification
// needs no external parameters.
type Hasher struct {
	cost  int
	dummy string
}

// NewHasher builds a Hasher with the given bcrypt cost and precomputes
// the dummy hash once. Computing it here, at process start, keeps the
// username-miss path from ever minting hashes lazily under request load.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, err
	}
	return &Hasher{cost: cost, dummy: string(dummy)}, nil
}

// Hash validates and hashes a plaintext password. The password is trimmed
// before the length check so whitespace padding cannot satisfy the floor.
func (h *Hasher) Hash(password string) (string, error) {
	p := strings.TrimSpace(password)
	if p == "" {
		return "", ErrPasswordRequired
	}
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(p), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether attempt matches storedHash. It never returns an
// error: malformed or empty inputs are simply a failed match, which keeps
// the login flow's single generic failure path honest.
func (h *Hasher) Verify(storedHash, attempt string) bool {
	if storedHash == "" || attempt == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(strings.TrimSpace(attempt))) == nil
}

// DummyHash returns the precomputed placeholder hash. Login must verify
// against this when the username lookup misses, so that a miss and a
// wrong password are indistinguishable by response time.
func (h *Hasher) DummyHash() string { return h.dummy }
