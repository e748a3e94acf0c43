package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	"github.com/brandoverts/brandoverts-api/internal/auth"
	"github.com/brandoverts/brandoverts-api/internal/config"
	"github.com/brandoverts/brandoverts-api/internal/service"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// AuthHandler exposes signup, login, logout and profile endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	cookieName    string
	cookieTTL     time.Duration
	secureCookies bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, authCfg config.AuthConfig, production bool) *AuthHandler {
	return &AuthHandler{
		auth:          authService,
		cookieName:    authCfg.CookieName,
		cookieTTL:     authCfg.TokenTTL(),
		secureCookies: production,
	}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Username, email, and password are required")
	}

	user, token, err := h.auth.Signup(c.Context(), req.Username, req.Email, req.Password, req.DisplayName)
	if err != nil {
		return err
	}

	c.Cookie(auth.SessionCookie(h.cookieName, token, h.cookieTTL, h.secureCookies))

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Signup successful",
		"user": fiber.Map{
			"id":          user.ID.Hex(),
			"username":    user.Username,
			"email":       user.Email,
			"displayName": user.DisplayName,
			"role":        user.Role,
		},
	})
}

// Login handles POST /api/auth/login. The body is polymorphic: the CRM form
// sends {username, password}, the blog form sends {identifier, password}.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Password == "" || (req.Username == "" && req.Identifier == "") {
		return apperrors.NewValidationError("Username and password are required")
	}

	result, err := h.auth.Login(c.Context(), req.Username, req.Identifier, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(auth.SessionCookie(h.cookieName, result.Token, h.cookieTTL, h.secureCookies))

	sessionUser := dto.SessionUser{ID: result.ID, Username: result.Username}
	if result.User == nil {
		sessionUser.Role = string(result.Role)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"user":    sessionUser,
	})
}

// Logout handles POST /api/auth/logout. Only the client cookie is removed;
// the token stays valid until its expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(auth.ExpiredSessionCookie(h.cookieName, h.secureCookies))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": dto.SessionUser{
			ID:       identity.ID,
			Username: identity.Username,
		},
	})
}

// GetProfile handles GET /api/auth/profile.
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	if identity.IsCRMAdmin() {
		return c.JSON(fiber.Map{
			"success": true,
			"user": dto.SessionUser{
				ID:       identity.ID,
				Username: identity.Username,
				Role:     string(identity.Role),
			},
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewProfileResponse(identity.User),
	})
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	user, err := h.auth.UpdateProfile(c.Context(), identity, req.DisplayName, req.Bio, req.ProfileImage)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
		"user":    dto.NewProfileResponse(user),
	})
}

func (h *AuthHandler) identity(c *fiber.Ctx) (*auth.Identity, error) {
	token := c.Cookies(h.cookieName)
	if token == "" {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	return h.auth.Verifier().Verify(c.Context(), token)
}
