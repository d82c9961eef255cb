package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/database"
	"github.com/pvsouza/blog-messenger-api/internal/models"
)

// RequireMessageReceiver checks that the current user is the receiver of the
// message named by the :id parameter.
func RequireMessageReceiver() gin.HandlerFunc {
	return func(c *gin.Context) {
		messageIDStr := c.Param("id")
		messageID, err := strconv.ParseUint(messageIDStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid message ID",
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

		var message models.Message
		if err := database.GetDB().Preload("Sender").First(&message, messageID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Message not found",
			})
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking message existence
		if message.ReceiverID != userID {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Message not found",
			})
			c.Abort()
			return
		}

		c.Set("message", message)
		c.Next()
	}
}
