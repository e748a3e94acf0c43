package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

const claimsKey = "auth_claims"

// Guard gates requests on the session cookie. RequireAuth protects API
// routes with JSON 401 semantics; Pages protects browser navigation with
// redirect semantics. The two stay separate because their failure
// contracts differ.
type Guard struct {
	tokens     *TokenManager
	cookieName string
}

// NewGuard constructs the guard.
func NewGuard(tokens *TokenManager, cookieName string) *Guard {
	return &Guard{tokens: tokens, cookieName: cookieName}
}

// RequireAuth runs lightweight verification (signature only, no storage
// lookup) and rejects unauthenticated calls with the structured envelope.
func (g *Guard) RequireAuth(c *fiber.Ctx) error {
	token := c.Cookies(g.cookieName)
	if token == "" {
		return apperrors.NewUnauthorized("Authentication required")
	}

	claims, ok := g.tokens.Verify(token)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	c.Locals(claimsKey, claims)
	return c.Next()
}

// Pages returns the edge gate for the protected page prefix. Every request
// except the login page itself needs a verifiable cookie; failures redirect
// to the login page with the original path in the "from" query parameter.
func (g *Guard) Pages(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == loginPath || strings.TrimSuffix(path, "/") == loginPath {
			return c.Next()
		}

		if token := c.Cookies(g.cookieName); token != "" {
			if _, ok := g.tokens.Verify(token); ok {
				return c.Next()
			}
		}

		return c.Redirect(loginPath+"?from="+url.QueryEscape(path), fiber.StatusFound)
	}
}

// ClaimsFromContext retrieves the verified claims stored by RequireAuth.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
