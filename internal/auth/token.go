package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// AdminID is the sentinel subject id carried by CRM admin tokens. It never
// corresponds to a stored User document; the strict verifier short-circuits
// on it before any lookup.
const AdminID = "admin-id"

// TokenManager issues and verifies session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Claims is the session token payload. Two shapes share this envelope:
// blog users carry {id, username}, the CRM admin carries
// {id: "admin-id", username, role: "admin"}. The sentinel id, not the role
// string, is what marks a token as the admin's.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// IsAdminSentinel reports whether the claims name the hardcoded CRM admin.
func (c *Claims) IsAdminSentinel(adminUsername string) bool {
	return c.ID == AdminID && c.Username == adminUsername
}

// IssueUserToken signs a 7-day token for a persisted blog user.
func (tm *TokenManager) IssueUserToken(user *domain.User) (string, error) {
	return tm.sign(&Claims{
		ID:       user.ID.Hex(),
		Username: user.Username,
	})
}

// IssueAdminToken signs a 7-day token for the hardcoded CRM admin.
func (tm *TokenManager) IssueAdminToken(adminUsername string) (string, error) {
	return tm.sign(&Claims{
		ID:       AdminID,
		Username: adminUsername,
		Role:     string(domain.RoleAdmin),
	})
}

func (tm *TokenManager) sign(claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.ID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses and validates a token. It fails closed: signature mismatch,
// expiry and malformed input all yield ok=false, never an error to branch
// on.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, bool) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, false
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, false
	}
	return claims, true
}
