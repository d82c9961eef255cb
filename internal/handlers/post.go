package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/dto"
	apierrors "github.com/pvsouza/blog-messenger-api/internal/errors"
	"github.com/pvsouza/blog-messenger-api/internal/middleware"
	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/services"
	"github.com/pvsouza/blog-messenger-api/internal/utils"
)

// PostHandler coordinates blog post HTTP handlers.
type PostHandler struct {
	postService *services.PostService
	uploadDir   string
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService, uploadDir string) *PostHandler {
	return &PostHandler{
		postService: postService,
		uploadDir:   uploadDir,
	}
}

// ListPosts returns posts newest first, searchable via ?q= and paginated
// via ?page= and ?limit=.
func (h *PostHandler) ListPosts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	posts, total, err := h.postService.ListPosts(services.ListPostsInput{
		Query:    c.Query("q"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch posts")
		return
	}

	items := make([]dto.PostListItemDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, dto.ToPostListItemDTO(p))
	}

	c.JSON(http.StatusOK, dto.PostListResponse{
		Posts: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetPost returns a post by numeric id or slug.
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Param("id"))
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostDTO(*post))
}

// CreatePost creates a post authored by the current user. Accepts multipart
// form data (for the image upload) or JSON.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	input, ok := h.bindCreateInput(c)
	if !ok {
		return
	}
	input.AuthorID = userID

	post, err := h.postService.CreatePost(input)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostDTO(*post))
}

// UpdatePost applies a partial update to the post loaded by
// RequirePostOwner. Accepts multipart form data (to replace the image)
// or JSON.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	post, ok := postFromContext(c)
	if !ok {
		return
	}

	input, ok := h.bindUpdateInput(c)
	if !ok {
		return
	}

	updated, err := h.postService.UpdatePost(post.ID, userID, input)
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostDTO(*updated))
}

// DeletePost removes the post loaded by RequirePostOwner.
func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	post, ok := postFromContext(c)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(post.ID, userID); err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post deleted successfully",
	})
}

func (h *PostHandler) bindCreateInput(c *gin.Context) (services.CreatePostInput, bool) {
	var input services.CreatePostInput

	if c.ContentType() == "application/json" {
		type CreatePostRequest struct {
			Title       string  `json:"title" binding:"required"`
			Subtitle    string  `json:"subtitle"`
			Content     string  `json:"content" binding:"required"`
			Slug        string  `json:"slug"`
			PublishedAt *string `json:"published_at"`
		}

		var req CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return input, false
		}

		input.Title = req.Title
		input.Subtitle = req.Subtitle
		input.Content = req.Content
		input.Slug = req.Slug
		if req.PublishedAt != nil {
			publishedAt, err := time.Parse(time.RFC3339, *req.PublishedAt)
			if err != nil {
				apierrors.BadRequest(c, "Invalid published_at, expected RFC3339")
				return input, false
			}
			input.PublishedAt = &publishedAt
		}
		return input, true
	}

	// Multipart form, used when the post carries an image
	input.Title = c.PostForm("title")
	input.Subtitle = c.PostForm("subtitle")
	input.Content = c.PostForm("content")
	input.Slug = c.PostForm("slug")

	if publishedAtStr := c.PostForm("published_at"); publishedAtStr != "" {
		publishedAt, err := time.Parse(time.RFC3339, publishedAtStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid published_at, expected RFC3339")
			return input, false
		}
		input.PublishedAt = &publishedAt
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		path, err := utils.SaveUpload(c, file, h.uploadDir, "posts")
		if err != nil {
			apierrors.InternalError(c, "Failed to store image")
			return input, false
		}
		input.Image = path
	}

	return input, true
}

func (h *PostHandler) bindUpdateInput(c *gin.Context) (services.UpdatePostInput, bool) {
	var input services.UpdatePostInput

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		if title, ok := c.GetPostForm("title"); ok {
			input.Title = &title
		}
		if subtitle, ok := c.GetPostForm("subtitle"); ok {
			input.Subtitle = &subtitle
		}
		if content, ok := c.GetPostForm("content"); ok {
			input.Content = &content
		}
		if slug, ok := c.GetPostForm("slug"); ok {
			input.Slug = &slug
		}
		if publishedAtStr, ok := c.GetPostForm("published_at"); ok {
			publishedAt, err := time.Parse(time.RFC3339, publishedAtStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid published_at, expected RFC3339")
				return input, false
			}
			input.PublishedAt = &publishedAt
		}

		file, err := c.FormFile("image")
		if err == nil && file != nil {
			path, err := utils.SaveUpload(c, file, h.uploadDir, "posts")
			if err != nil {
				apierrors.InternalError(c, "Failed to store image")
				return input, false
			}
			input.Image = &path
		}

		return input, true
	}

	type UpdatePostRequest struct {
		Title       *string `json:"title"`
		Subtitle    *string `json:"subtitle"`
		Content     *string `json:"content"`
		Image       *string `json:"image"`
		Slug        *string `json:"slug"`
		PublishedAt *string `json:"published_at"`
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return input, false
	}

	input.Title = req.Title
	input.Subtitle = req.Subtitle
	input.Content = req.Content
	input.Image = req.Image
	input.Slug = req.Slug
	if req.PublishedAt != nil {
		publishedAt, err := time.Parse(time.RFC3339, *req.PublishedAt)
		if err != nil {
			apierrors.BadRequest(c, "Invalid published_at, expected RFC3339")
			return input, false
		}
		input.PublishedAt = &publishedAt
	}

	return input, true
}

func postFromContext(c *gin.Context) (models.Post, bool) {
	postInterface, exists := c.Get("post")
	if !exists {
		apierrors.InternalError(c, "Post not found in context")
		return models.Post{}, false
	}

	post, ok := postInterface.(models.Post)
	if !ok {
		apierrors.InternalError(c, "Invalid post data")
		return models.Post{}, false
	}

	return post, true
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotPostAuthor):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrContentRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSlugTaken):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
