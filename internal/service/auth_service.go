package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brandoverts/brandoverts-api/internal/auth"
	"github.com/brandoverts/brandoverts-api/internal/config"
	"github.com/brandoverts/brandoverts-api/internal/domain"
	"github.com/brandoverts/brandoverts-api/internal/repository"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// LoginResult is the outcome of a successful login: a signed token plus the
// identity it names. User is nil for the CRM admin.
type LoginResult struct {
	Token    string
	ID       string
	Username string
	Role     domain.Role
	User     *domain.User
}

// AuthService coordinates signup, the dual-mode login and profile flows.
type AuthService struct {
	users    repository.UserRepository
	tokens   *auth.TokenManager
	verifier *auth.Verifier
	cfg      config.AuthConfig
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())
	return &AuthService{
		users:    users,
		tokens:   tokens,
		verifier: auth.NewVerifier(tokens, users, cfg.AdminUsername),
		cfg:      cfg,
	}
}

// TokenManager exposes the underlying token manager for the route guards.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Verifier exposes the strict verifier for handlers that need a resolved
// identity.
func (s *AuthService) Verifier() *auth.Verifier {
	return s.verifier
}

// Signup creates a blog user with the blogger role, issues a session token
// and records it on the user document.
func (s *AuthService) Signup(ctx context.Context, username, email, password, displayName string) (*domain.User, string, error) {
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, "", apperrors.MapError(err)
	}
	if exists {
		return nil, "", apperrors.NewConflict("Username or email already exists")
	}

	hash, err := auth.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}

	if displayName == "" {
		displayName = username
	}
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         domain.RoleBlogger,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", apperrors.NewConflict("Username or email already exists")
		}
		return nil, "", apperrors.MapError(err)
	}

	token, err := s.tokens.IssueUserToken(user)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	if err := s.users.SaveToken(ctx, user.ID, token); err != nil {
		return nil, "", apperrors.MapError(err)
	}
	user.Token = token

	return user, token, nil
}

// Login authenticates either the hardcoded CRM admin ({username, password})
// or a blog user ({identifier, password}). Every failure collapses to the
// same generic message and status so callers cannot distinguish an unknown
// account from a wrong password.
func (s *AuthService) Login(ctx context.Context, username, identifier, password string) (*LoginResult, error) {
	if username != "" && username == s.cfg.AdminUsername {
		if password != s.cfg.AdminPassword {
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		token, err := s.tokens.IssueAdminToken(s.cfg.AdminUsername)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		return &LoginResult{
			Token:    token,
			ID:       auth.AdminID,
			Username: s.cfg.AdminUsername,
			Role:     domain.RoleAdmin,
		}, nil
	}

	if identifier == "" {
		identifier = username
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, err := s.tokens.IssueUserToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := s.users.SaveToken(ctx, user.ID, token); err != nil {
		return nil, apperrors.MapError(err)
	}
	user.Token = token

	return &LoginResult{
		Token:    token,
		ID:       user.ID.Hex(),
		Username: user.Username,
		Role:     user.Role,
		User:     user,
	}, nil
}

// UpdateProfile patches the editable profile fields of a blog user. Nil
// arguments leave the corresponding field unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, identity *auth.Identity, displayName, bio, profileImage *string) (*domain.User, error) {
	if identity.IsCRMAdmin() {
		return nil, apperrors.NewForbidden("The admin account has no profile")
	}

	user := identity.User
	if displayName != nil {
		user.DisplayName = *displayName
	}
	if bio != nil {
		user.Bio = *bio
	}
	if profileImage != nil {
		user.ProfileImage = *profileImage
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
