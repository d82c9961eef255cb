package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/constants"
	"github.com/pvsouza/blog-messenger-api/internal/dto"
	apierrors "github.com/pvsouza/blog-messenger-api/internal/errors"
	"github.com/pvsouza/blog-messenger-api/internal/services"
)

// SiteHandler serves the landing and static pages.
type SiteHandler struct {
	postService *services.PostService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(postService *services.PostService) *SiteHandler {
	return &SiteHandler{
		postService: postService,
	}
}

// Home returns the most recently published posts.
func (h *SiteHandler) Home(c *gin.Context) {
	posts, _, err := h.postService.ListPosts(services.ListPostsInput{
		Page:     1,
		PageSize: constants.DefaultPageSize,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch posts")
		return
	}

	items := make([]dto.PostListItemDTO, 0, len(posts))
	for _, p := range posts {
		items = append(items, dto.ToPostListItemDTO(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": items,
	})
}

// About returns the static about payload.
func (h *SiteHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "Blog Messenger",
		"description": "A small blog with user profiles and direct messages",
	})
}
