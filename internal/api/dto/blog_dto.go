package dto

import (
	"time"

	"github.com/brandoverts/brandoverts-api/internal/domain"
)

// CreateBlogRequest payload for new posts.
type CreateBlogRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Tags       []string `json:"tags"`
}

// UpdateBlogRequest carries partial post updates; nil leaves a field
// unchanged.
type UpdateBlogRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	CoverImage *string   `json:"coverImage"`
	Tags       *[]string `json:"tags"`
}

// CreateCommentRequest payload for new comments.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Pagination mirrors the envelope's pagination block.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes the page count from a total and page size.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// BlogListItem is the listing shape: counters instead of the raw likes and
// comments arrays, plus the joined author summary.
type BlogListItem struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Content      string               `json:"content"`
	CoverImage   string               `json:"coverImage"`
	Tags         []string             `json:"tags"`
	Author       domain.AuthorSummary `json:"author"`
	LikeCount    int                  `json:"likeCount"`
	CommentCount int                  `json:"commentCount"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// CommentResponse is a comment with its author joined.
type CommentResponse struct {
	ID        string               `json:"id"`
	Content   string               `json:"content"`
	Author    domain.AuthorSummary `json:"author"`
	Likes     []string             `json:"likes"`
	LikeCount int                  `json:"likeCount"`
	CreatedAt time.Time            `json:"createdAt"`
}

// BlogResponse is the full post shape returned by single-blog reads and
// writes.
type BlogResponse struct {
	ID         string               `json:"id"`
	Title      string               `json:"title"`
	Content    string               `json:"content"`
	CoverImage string               `json:"coverImage"`
	Tags       []string             `json:"tags"`
	Author     domain.AuthorSummary `json:"author"`
	Likes      []string             `json:"likes"`
	Comments   []CommentResponse    `json:"comments"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}

// LikeResult reports the new state after a like toggle.
type LikeResult struct {
	IsLiked   bool `json:"isLiked"`
	LikeCount int  `json:"likeCount"`
}
