package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/brandoverts/brandoverts-api/internal/api/dto"
	"github.com/brandoverts/brandoverts-api/internal/auth"
	"github.com/brandoverts/brandoverts-api/internal/repository"
	"github.com/brandoverts/brandoverts-api/internal/service"
	apperrors "github.com/brandoverts/brandoverts-api/pkg/util"
)

// BlogsHandler exposes the blog endpoints. Reads are public; writes verify
// the session cookie against the user collection before acting.
type BlogsHandler struct {
	blogs      *service.BlogService
	verifier   *auth.Verifier
	cookieName string
}

// NewBlogsHandler constructs handler.
func NewBlogsHandler(blogs *service.BlogService, verifier *auth.Verifier, cookieName string) *BlogsHandler {
	return &BlogsHandler{blogs: blogs, verifier: verifier, cookieName: cookieName}
}

// List handles GET /api/blogs.
func (h *BlogsHandler) List(c *fiber.Ctx) error {
	items, pagination, err := h.blogs.List(c.Context(), repository.BlogListFilter{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       items,
		"pagination": pagination,
	})
}

// Get handles GET /api/blogs/:id.
func (h *BlogsHandler) Get(c *fiber.Ctx) error {
	blog, err := h.blogs.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": blog})
}

// Create handles POST /api/blogs.
func (h *BlogsHandler) Create(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	var req dto.CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Title == "" || req.Content == "" {
		return apperrors.NewValidationError("Title and content are required")
	}

	blog, err := h.blogs.Create(c.Context(), identity, req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Blog created successfully",
		"data":    blog,
	})
}

// Update handles PUT /api/blogs/:id.
func (h *BlogsHandler) Update(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}

	blog, err := h.blogs.Update(c.Context(), identity, c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Blog updated successfully",
		"data":    blog,
	})
}

// Delete handles DELETE /api/blogs/:id.
func (h *BlogsHandler) Delete(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	if err := h.blogs.Delete(c.Context(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Blog deleted successfully",
	})
}

// ToggleLike handles POST /api/blogs/:id/like.
func (h *BlogsHandler) ToggleLike(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	result, err := h.blogs.ToggleLike(c.Context(), identity, c.Params("id"))
	if err != nil {
		return err
	}

	message := "Blog unliked successfully"
	if result.IsLiked {
		message = "Blog liked successfully"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    result,
	})
}

// ListComments handles GET /api/blogs/:id/comments.
func (h *BlogsHandler) ListComments(c *fiber.Ctx) error {
	comments, pagination, err := h.blogs.ListComments(c.Context(), c.Params("id"), c.QueryInt("page", 1), c.QueryInt("limit", 10))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"data":       comments,
		"pagination": pagination,
	})
}

// AddComment handles POST /api/blogs/:id/comments.
func (h *BlogsHandler) AddComment(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload")
	}
	if req.Content == "" {
		return apperrors.NewValidationError("Comment content is required")
	}

	comment, err := h.blogs.AddComment(c.Context(), identity, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Comment added successfully",
		"data":    comment,
	})
}

// ToggleCommentLike handles POST /api/blogs/:id/comments/:commentId/like.
func (h *BlogsHandler) ToggleCommentLike(c *fiber.Ctx) error {
	identity, err := h.identity(c)
	if err != nil {
		return err
	}

	result, err := h.blogs.ToggleCommentLike(c.Context(), identity, c.Params("id"), c.Params("commentId"))
	if err != nil {
		return err
	}

	message := "Comment unliked successfully"
	if result.IsLiked {
		message = "Comment liked successfully"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    result,
	})
}

func (h *BlogsHandler) identity(c *fiber.Ctx) (*auth.Identity, error) {
	token := c.Cookies(h.cookieName)
	if token == "" {
		return nil, apperrors.NewUnauthorized("Authentication required")
	}
	return h.verifier.Verify(c.Context(), token)
}
