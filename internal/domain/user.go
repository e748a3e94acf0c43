package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role enumerates account roles for blog users.
type Role string

const (
	RoleUser    Role = "user"
	RoleBlogger Role = "blogger"
	RoleAdmin   Role = "admin"
)

// User is the persisted account for the blogging platform.
//
// Token holds the last issued session token. It is written at login and
// signup but never read back during verification; it is an audit field,
// not a revocation list.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	DisplayName  string             `bson:"displayName"`
	Bio          string             `bson:"bio"`
	ProfileImage string             `bson:"profileImage"`
	Role         Role               `bson:"role"`
	Token        string             `bson:"token,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// AuthorSummary is the subset of a user embedded in blog and comment
// responses.
type AuthorSummary struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	DisplayName  string `json:"displayName"`
	ProfileImage string `json:"profileImage"`
}

// Summary strips a user down to the fields shown next to authored content.
func (u *User) Summary() AuthorSummary {
	return AuthorSummary{
		ID:           u.ID.Hex(),
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		ProfileImage: u.ProfileImage,
	}
}
