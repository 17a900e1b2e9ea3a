package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned for an otherwise valid token whose exp
	// has passed. It maps to a distinct 401 body.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers every other verification failure. The caller
	// must not learn which check failed.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims is the verified identity carried by an access token.
type Claims struct {
	UserID    uint64
	TenantID  uint64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService mints and verifies HS256 access tokens. It is stateless:
// tokens are never persisted and expire purely by clock. No leeway is
// granted on expiry; with short TTLs, exact semantics are acceptable and
// simpler to reason about than skew windows.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService validates its configuration up front so a misconfigured
// deployment fails at startup, not on the first login.
func NewTokenService(secret, issuer, audience string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is required")
	}
	if issuer == "" || audience == "" {
		return nil, errors.New("token service: issuer and audience are required")
	}
	if ttl <= 0 {
		return nil, errors.New("token service: ttl must be positive")
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}, nil
}

// Mint builds and signs an access token for the given user and tenant.
// sub and tid are stringified to survive JSON number round-trips intact.
func (s *TokenService) Mint(userID, tenantID uint64) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(userID, 10),
		"tid": strconv.FormatUint(tenantID, 10),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
		"iss": s.issuer,
		"aud": s.audience,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature first, then the registered claims, and only
// then reads identity out of the payload. A missing tid is a protocol
// violation and fails verification even when everything else is sound.
func (s *TokenService) Verify(token string) (Claims, error) {
	tok, err := jwt.Parse(token,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	iat, err := mc.GetIssuedAt()
	if err != nil || iat == nil {
		return Claims{}, ErrTokenInvalid
	}
	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, ErrTokenInvalid
	}
	uid, err := claimUint(mc, "sub")
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}
	tid, err := claimUint(mc, "tid")
	if err != nil {
		return Claims{}, ErrTokenInvalid
	}

	return Claims{
		UserID:    uid,
		TenantID:  tid,
		IssuedAt:  iat.Time,
		ExpiresAt: exp.Time,
	}, nil
}

// claimUint coerces a claim minted as a decimal string (or decoded as a
// JSON number) into a uint64.
func claimUint(mc jwt.MapClaims, name string) (uint64, error) {
	v, ok := mc[name]
	if !ok {
		return 0, fmt.Errorf("missing %s claim", name)
	}
	switch t := v.(type) {
	case string:
		return strconv.ParseUint(t, 10, 64)
	case float64:
		if t < 0 || t != float64(uint64(t)) {
			return 0, fmt.Errorf("non-integral %s claim", name)
		}
		return uint64(t), nil
	}
	return 0, fmt.Errorf("unexpected %s claim type %T", name, v)
}
