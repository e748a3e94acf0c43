package dto

import (
	"time"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// SignupRequest payload for new blog users.
type SignupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest payload for the dual-mode login endpoint. The CRM form sends
// username, the blog form sends identifier (username or email); both carry
// password.
type LoginRequest struct {
	Username   string `json:"username"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// UpdateProfileRequest carries the editable profile fields; nil leaves a
// field unchanged.
type UpdateProfileRequest struct {
	DisplayName  *string `json:"displayName"`
	Bio          *string `json:"bio"`
	ProfileImage *string `json:"profileImage"`
}

// SessionUser is the stripped identity returned by login and /me.
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
}

// ProfileResponse is the full profile minus password hash and token.
type ProfileResponse struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profileImage"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewProfileResponse maps a stored user onto the response shape.
func NewProfileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:           user.ID.Hex(),
		Username:     user.Username,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Bio:          user.Bio,
		ProfileImage: user.ProfileImage,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
}
