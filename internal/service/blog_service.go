package service

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	"github.com/brandoverts/brandoverts-api/internal/auth"
	"github.com/brandoverts/brandoverts-api/internal/domain"
	"github.com/brandoverts/brandoverts-api/internal/repository"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// BlogService coordinates the blog lifecycle: posts, embedded comments and
// like toggles, with author summaries joined from the user collection.
type BlogService struct {
	blogs repository.BlogRepository
	users repository.UserRepository
}

// NewBlogService builds the service.
func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository) *BlogService {
	return &BlogService{blogs: blogs, users: users}
}

// List returns a page of posts, newest first, with like/comment counters in
// place of the raw arrays.
func (s *BlogService) List(ctx context.Context, filter repository.BlogListFilter) ([]dto.BlogListItem, dto.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	blogs, total, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.MapError(err)
	}

	authorIDs := make([]primitive.ObjectID, 0, len(blogs))
	for _, blog := range blogs {
		authorIDs = append(authorIDs, blog.Author)
	}
	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.MapError(err)
	}

	items := make([]dto.BlogListItem, 0, len(blogs))
	for _, blog := range blogs {
		items = append(items, dto.BlogListItem{
			ID:           blog.ID.Hex(),
			Title:        blog.Title,
			Content:      blog.Content,
			CoverImage:   blog.CoverImage,
			Tags:         blog.Tags,
			Author:       summaryFor(authors, blog.Author),
			LikeCount:    len(blog.Likes),
			CommentCount: len(blog.Comments),
			CreatedAt:    blog.CreatedAt,
			UpdatedAt:    blog.UpdatedAt,
		})
	}

	return items, dto.NewPagination(total, filter.Page, filter.Limit), nil
}

// Get returns a single post with author and comment-author summaries.
func (s *BlogService) Get(ctx context.Context, idHex string) (*dto.BlogResponse, error) {
	id, err := parseBlogID(idHex)
	if err != nil {
		return nil, err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, blogNotFoundOr(err)
	}
	return s.respond(ctx, blog)
}

// Create stores a new post authored by the caller.
func (s *BlogService) Create(ctx context.Context, identity *auth.Identity, req dto.CreateBlogRequest) (*dto.BlogResponse, error) {
	authorID, err := identity.UserID()
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid author ID")
	}

	blog := &domain.Blog{
		Title:      req.Title,
		Content:    req.Content,
		Author:     authorID,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.respond(ctx, blog)
}

// Update patches a post. Only the author may update it.
func (s *BlogService) Update(ctx context.Context, identity *auth.Identity, idHex string, req dto.UpdateBlogRequest) (*dto.BlogResponse, error) {
	id, err := parseBlogID(idHex)
	if err != nil {
		return nil, err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, blogNotFoundOr(err)
	}
	if blog.Author.Hex() != identity.ID {
		return nil, apperrors.NewForbidden("Not authorized to update this blog")
	}

	updated, err := s.blogs.Update(ctx, id, repository.BlogUpdate{
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		Tags:       req.Tags,
	})
	if err != nil {
		return nil, blogNotFoundOr(err)
	}
	return s.respond(ctx, updated)
}

// Delete removes a post. The author may always delete; so may any identity
// carrying the admin role.
func (s *BlogService) Delete(ctx context.Context, identity *auth.Identity, idHex string) error {
	id, err := parseBlogID(idHex)
	if err != nil {
		return err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return blogNotFoundOr(err)
	}
	if blog.Author.Hex() != identity.ID && identity.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("Not authorized to delete this blog")
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return blogNotFoundOr(err)
	}
	return nil
}

// ToggleLike flips the caller's membership in the post's likes set and
// returns the new state with the resulting count. Membership uniqueness is
// enforced by the repository's set operations, so concurrent toggles from
// one user cannot duplicate the entry.
func (s *BlogService) ToggleLike(ctx context.Context, identity *auth.Identity, idHex string) (*dto.LikeResult, error) {
	id, err := parseBlogID(idHex)
	if err != nil {
		return nil, err
	}
	userID, err := identity.UserID()
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid user ID")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, blogNotFoundOr(err)
	}

	var updated *domain.Blog
	liked := !blog.HasLike(userID)
	if liked {
		updated, err = s.blogs.AddLike(ctx, id, userID)
	} else {
		updated, err = s.blogs.RemoveLike(ctx, id, userID)
	}
	if err != nil {
		return nil, blogNotFoundOr(err)
	}

	return &dto.LikeResult{IsLiked: liked, LikeCount: len(updated.Likes)}, nil
}

// AddComment appends a comment to a post and returns it with the author
// joined.
func (s *BlogService) AddComment(ctx context.Context, identity *auth.Identity, idHex, content string) (*dto.CommentResponse, error) {
	id, err := parseBlogID(idHex)
	if err != nil {
		return nil, err
	}
	authorID, err := identity.UserID()
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid author ID")
	}

	if _, err := s.blogs.GetByID(ctx, id); err != nil {
		return nil, blogNotFoundOr(err)
	}

	comment := &domain.Comment{Content: content, Author: authorID}
	if err := s.blogs.AddComment(ctx, id, comment); err != nil {
		return nil, blogNotFoundOr(err)
	}

	authors, err := s.users.GetByIDs(ctx, []primitive.ObjectID{authorID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	resp := commentResponse(comment, authors)
	return &resp, nil
}

// ListComments returns one page of a post's comments, newest first.
func (s *BlogService) ListComments(ctx context.Context, idHex string, page, limit int) ([]dto.CommentResponse, dto.Pagination, error) {
	id, err := parseBlogID(idHex)
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, dto.Pagination{}, blogNotFoundOr(err)
	}

	comments := make([]domain.Comment, len(blog.Comments))
	copy(comments, blog.Comments)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})

	total := int64(len(comments))
	start := (page - 1) * limit
	if start > len(comments) {
		start = len(comments)
	}
	end := start + limit
	if end > len(comments) {
		end = len(comments)
	}
	pageComments := comments[start:end]

	authorIDs := make([]primitive.ObjectID, 0, len(pageComments))
	for _, comment := range pageComments {
		authorIDs = append(authorIDs, comment.Author)
	}
	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.MapError(err)
	}

	out := make([]dto.CommentResponse, 0, len(pageComments))
	for i := range pageComments {
		out = append(out, commentResponse(&pageComments[i], authors))
	}
	return out, dto.NewPagination(total, page, limit), nil
}

// ToggleCommentLike flips the caller's membership in an embedded comment's
// likes set.
func (s *BlogService) ToggleCommentLike(ctx context.Context, identity *auth.Identity, idHex, commentIDHex string) (*dto.LikeResult, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid ID format")
	}
	commentID, err := primitive.ObjectIDFromHex(commentIDHex)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid ID format")
	}
	userID, err := identity.UserID()
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid user ID")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, blogNotFoundOr(err)
	}
	comment := blog.CommentByID(commentID)
	if comment == nil {
		return nil, apperrors.NewNotFound("Comment")
	}

	var updated *domain.Blog
	liked := !comment.HasLike(userID)
	if liked {
		updated, err = s.blogs.AddCommentLike(ctx, id, commentID, userID)
	} else {
		updated, err = s.blogs.RemoveCommentLike(ctx, id, commentID, userID)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("Comment")
		}
		return nil, apperrors.MapError(err)
	}

	current := updated.CommentByID(commentID)
	if current == nil {
		return nil, apperrors.NewNotFound("Comment")
	}
	return &dto.LikeResult{IsLiked: liked, LikeCount: len(current.Likes)}, nil
}

func (s *BlogService) respond(ctx context.Context, blog *domain.Blog) (*dto.BlogResponse, error) {
	authorIDs := []primitive.ObjectID{blog.Author}
	for _, comment := range blog.Comments {
		authorIDs = append(authorIDs, comment.Author)
	}
	authors, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	likes := make([]string, 0, len(blog.Likes))
	for _, id := range blog.Likes {
		likes = append(likes, id.Hex())
	}
	comments := make([]dto.CommentResponse, 0, len(blog.Comments))
	for i := range blog.Comments {
		comments = append(comments, commentResponse(&blog.Comments[i], authors))
	}

	return &dto.BlogResponse{
		ID:         blog.ID.Hex(),
		Title:      blog.Title,
		Content:    blog.Content,
		CoverImage: blog.CoverImage,
		Tags:       blog.Tags,
		Author:     summaryFor(authors, blog.Author),
		Likes:      likes,
		Comments:   comments,
		CreatedAt:  blog.CreatedAt,
		UpdatedAt:  blog.UpdatedAt,
	}, nil
}

func commentResponse(comment *domain.Comment, authors map[primitive.ObjectID]*domain.User) dto.CommentResponse {
	likes := make([]string, 0, len(comment.Likes))
	for _, id := range comment.Likes {
		likes = append(likes, id.Hex())
	}
	return dto.CommentResponse{
		ID:        comment.ID.Hex(),
		Content:   comment.Content,
		Author:    summaryFor(authors, comment.Author),
		Likes:     likes,
		LikeCount: len(comment.Likes),
		CreatedAt: comment.CreatedAt,
	}
}

// summaryFor tolerates deleted authors: the id survives, the rest is blank.
func summaryFor(authors map[primitive.ObjectID]*domain.User, id primitive.ObjectID) domain.AuthorSummary {
	if user, ok := authors[id]; ok {
		return user.Summary()
	}
	return domain.AuthorSummary{ID: id.Hex()}
}

func parseBlogID(idHex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewValidationError("Invalid blog ID")
	}
	return id, nil
}

func blogNotFoundOr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NewNotFound("Blog")
	}
	return apperrors.MapError(err)
}
