package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/database"
	"github.com/pvsouza/blog-messenger-api/internal/models"
)

// RequirePostOwner checks that the current user authored the post named by
// the :id parameter. The loaded post is stored in the context for handlers.
func RequirePostOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		postIDStr := c.Param("id")
		postID, err := strconv.ParseUint(postIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid post ID",
			})
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var post models.Post
		if err := database.GetDB().First(&post, postID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Post not found",
			})
			c.Abort()
			return
		}

		// Posts are public, so an existence-revealing 403 is fine here
		if post.AuthorID != userID {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the author can modify this post",
			})
			c.Abort()
			return
		}

		c.Set("post", post)
		c.Next()
	}
}
