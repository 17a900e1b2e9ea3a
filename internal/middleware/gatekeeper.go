package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jterrell/freightplan/internal/auth"
)

// Gatekeeper guards every request under the protected API prefix with two
// ordered checks:
//
//  1. tenant-spoofing rejection: a request carrying the tenant field in
//     its query string or JSON body is rejected with 400 before any other
//     processing, token verification included. Tenant identity comes from
//     the verified token only, and rejecting early removes any question
//     of which value wins.
//  2. bearer verification: the Authorization header must carry a token
//     the TokenService accepts. On success the verified identity is
//     published into the request context for the scoping adapter.
//
// Requests outside the prefix pass through untouched; OPTIONS preflights
// bypass both checks.
type Gatekeeper struct {
	tokens      *auth.TokenService
	prefix      string
	tenantField string
}

func NewGatekeeper(tokens *auth.TokenService, prefix, tenantField string) *Gatekeeper {
	if prefix == "" {
		prefix = "/api/"
	}
	if tenantField == "" {
		tenantField = "tenant_id"
	}
	return &Gatekeeper{tokens: tokens, prefix: prefix, tenantField: tenantField}
}

// Middleware returns the echo middleware implementing both checks.
func (g *Gatekeeper) Middleware() echo.MiddlewareFunc {
	spoofMsg := fmt.Sprintf("Do not send %s; it is derived from auth.", g.tenantField)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, g.prefix) {
				return next(c)
			}
			if req.Method == http.MethodOptions {
				return next(c)
			}

			// Check A: tenant field in user input.
			if c.QueryParams().Has(g.tenantField) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": spoofMsg})
			}
			spoofed, err := g.bodyHasTenantField(c)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable request body"})
			}
			if spoofed {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": spoofMsg})
			}

			// Check B: bearer token.
			authz := req.Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing Authorization: Bearer token"})
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

			claims, err := g.tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			id := auth.Identity{UserID: claims.UserID, TenantID: claims.TenantID}
			c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}

// bodyHasTenantField inspects a JSON object body for the banned tenant
// field. The body is buffered and restored so downstream binding still
// works. Non-JSON and non-object bodies are left to the handlers; the
// spoof check only concerns itself with fields it can attribute.
func (g *Gatekeeper) bodyHasTenantField(c echo.Context) (bool, error) {
	req := c.Request()
	if req.Body == nil || req.Body == http.NoBody {
		return false, nil
	}
	ct := req.Header.Get(echo.HeaderContentType)
	if !strings.Contains(ct, echo.MIMEApplicationJSON) {
		return false, nil
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		return false, err
	}
	_ = req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		// Malformed or non-object JSON carries no attributable tenant
		// field; handlers will reject it on bind if it matters.
		return false, nil
	}
	_, found := obj[g.tenantField]
	return found, nil
}
