package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie builds the auth cookie carrying a freshly issued token.
// HttpOnly always; Secure only in production.
func SessionCookie(name, token string, ttl time.Duration, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
	}
}

// ExpiredSessionCookie builds the deletion cookie sent by logout. The token
// itself stays valid until its expiry; only the client copy is removed.
func ExpiredSessionCookie(name string, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   secure,
	}
}
