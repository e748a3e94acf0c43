package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in its parent blog document.
type Comment struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Content   string               `bson:"content"`
	Author    primitive.ObjectID   `bson:"author"`
	Likes     []primitive.ObjectID `bson:"likes"`
	CreatedAt time.Time            `bson:"createdAt"`
}

// Blog is the aggregate for posts. Likes hold user ids with set semantics;
// membership is enforced by the repository ($addToSet), not by the slice.
type Blog struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty"`
	Title      string               `bson:"title"`
	Content    string               `bson:"content"`
	Author     primitive.ObjectID   `bson:"author"`
	CoverImage string               `bson:"coverImage"`
	Likes      []primitive.ObjectID `bson:"likes"`
	Comments   []Comment            `bson:"comments"`
	Tags       []string             `bson:"tags"`
	CreatedAt  time.Time            `bson:"createdAt"`
	UpdatedAt  time.Time            `bson:"updatedAt"`
}

// HasLike reports whether the user id is in the blog's likes set.
func (b *Blog) HasLike(userID primitive.ObjectID) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the embedded comment with the given id, or nil.
func (b *Blog) CommentByID(commentID primitive.ObjectID) *Comment {
	for i := range b.Comments {
		if b.Comments[i].ID == commentID {
			return &b.Comments[i]
		}
	}
	return nil
}

// HasLike reports whether the user id is in the comment's likes set.
func (c *Comment) HasLike(userID primitive.ObjectID) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
