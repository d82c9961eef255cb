package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pvsouza/blog-messenger-api/internal/dto"
	apierrors "github.com/pvsouza/blog-messenger-api/internal/errors"
	"github.com/pvsouza/blog-messenger-api/internal/middleware"
	"github.com/pvsouza/blog-messenger-api/internal/models"
	"github.com/pvsouza/blog-messenger-api/internal/services"
)

// MessageHandler coordinates direct-message HTTP handlers.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// SendMessage creates a message from the current user to another user.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SendMessageRequest struct {
		ReceiverID uint64 `json:"receiver_id" binding:"required"`
		Subject    string `json:"subject"`
		Body       string `json:"body" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.SendMessage(services.SendMessageInput{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Body:       req.Body,
	})
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageDTO(*message))
}

// Inbox lists the current user's received messages, newest first.
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messages, err := h.messageService.ListInbox(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch inbox")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": dto.ToMessageDTOs(messages),
	})
}

// GetMessage returns the message loaded by RequireMessageReceiver and marks
// it read. Re-viewing an already-read message is a no-op.
func (h *MessageHandler) GetMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	messageInterface, exists := c.Get("message")
	if !exists {
		apierrors.InternalError(c, "Message not found in context")
		return
	}

	message, ok := messageInterface.(models.Message)
	if !ok {
		apierrors.InternalError(c, "Invalid message data")
		return
	}

	viewed, err := h.messageService.GetMessage(message.ID, userID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessageDTO(*viewed))
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSelfMessage),
		errors.Is(err, services.ErrBodyRequired),
		errors.Is(err, services.ErrSubjectTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrReceiverNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
