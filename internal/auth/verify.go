package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brandoverts/brandoverts-api/internal/domain"
	"github.com/brandoverts/brandoverts-api/internal/repository"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// Identity is the resolved caller of a strictly verified request. For blog
// users it is storage-backed; for the CRM admin it is constructed ad hoc
// from configuration and User is nil.
type Identity struct {
	ID       string
	Username string
	Role     domain.Role
	User     *domain.User
}

// IsCRMAdmin reports whether this identity is the hardcoded admin rather
// than a persisted user.
func (i *Identity) IsCRMAdmin() bool {
	return i.User == nil
}

// UserID returns the identity's id as an ObjectID. The admin sentinel has
// no valid ObjectID; callers that need one must not be reachable by the
// admin identity.
func (i *Identity) UserID() (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(i.ID)
}

// Verifier implements strict token verification: parse and verify the
// signature, then resolve the subject. Claims matching the admin sentinel
// resolve without touching storage; anything else requires the user to
// still exist.
type Verifier struct {
	tokens        *TokenManager
	users         repository.UserRepository
	adminUsername string
}

// NewVerifier builds the strict verifier.
func NewVerifier(tokens *TokenManager, users repository.UserRepository, adminUsername string) *Verifier {
	return &Verifier{tokens: tokens, users: users, adminUsername: adminUsername}
}

// Verify resolves a raw token to an identity. Invalid or expired tokens
// yield 401; a valid token whose user was deleted yields 404.
func (v *Verifier) Verify(ctx context.Context, tokenStr string) (*Identity, error) {
	claims, ok := v.tokens.Verify(tokenStr)
	if !ok {
		return nil, apperrors.NewUnauthorized("Unauthorized")
	}

	if claims.IsAdminSentinel(v.adminUsername) {
		return &Identity{
			ID:       AdminID,
			Username: v.adminUsername,
			Role:     domain.RoleAdmin,
		}, nil
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Unauthorized")
	}

	user, err := v.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, apperrors.MapError(err)
	}

	return &Identity{
		ID:       user.ID.Hex(),
		Username: user.Username,
		Role:     user.Role,
		User:     user,
	}, nil
}
