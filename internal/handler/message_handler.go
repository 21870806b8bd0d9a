package handler

import (
	"errors"

	"github.com/chirp-social/internal/middleware"
	"github.com/chirp-social/internal/repository"
	"github.com/chirp-social/internal/service"
	"github.com/chirp-social/pkg/response"
	"github.com/gin-gonic/gin"
)

// MessageHandler handles message and like requests
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Post creates a new message owned by the session identity
// POST /api/v1/messages
func (h *MessageHandler) Post(c *gin.Context) {
	var req service.PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	view, err := h.messageService.Post(middleware.GetUserID(c), &req)
	if err != nil {
		response.InternalError(c, "failed to post message")
		return
	}

	response.Created(c, view)
}

// Get shows a single message. Anonymous visitors may view.
// GET /api/v1/messages/:id
func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.messageService.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			response.NotFound(c, "message not found")
			return
		}
		response.InternalError(c, "failed to load message")
		return
	}

	response.Success(c, view)
}

// Delete removes a message. Only the owner may delete it; anyone else
// gets a forbidden response and the message stays.
// DELETE /api/v1/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.Delete(middleware.GetUserID(c), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrMessageNotFound):
			response.NotFound(c, "message not found")
		case errors.Is(err, service.ErrNotMessageOwner):
			response.Forbidden(c, "message belongs to another user")
		default:
			response.InternalError(c, "failed to delete message")
		}
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// Like adds a like to a message. Liking your own message is rejected;
// repeating a like changes nothing.
// POST /api/v1/messages/:id/like
func (h *MessageHandler) Like(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.Like(middleware.GetUserID(c), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrMessageNotFound):
			response.NotFound(c, "message not found")
		case errors.Is(err, service.ErrCannotLikeOwn):
			response.BadRequest(c, "cannot like your own message")
		default:
			response.InternalError(c, "failed to like message")
		}
		return
	}

	response.Success(c, gin.H{"liked": true})
}

// Unlike removes a like from a message
// DELETE /api/v1/messages/:id/like
func (h *MessageHandler) Unlike(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.messageService.Unlike(middleware.GetUserID(c), id); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			response.NotFound(c, "message not found")
			return
		}
		response.InternalError(c, "failed to unlike message")
		return
	}

	response.Success(c, gin.H{"liked": false})
}

// RegisterRoutes registers message routes. Viewing a message is public;
// posting, deleting and likes need a session.
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	messages := rg.Group("/messages")
	{
		messages.GET("/:id", h.Get)

		messages.POST("", authMiddleware, h.Post)
		messages.DELETE("/:id", authMiddleware, h.Delete)
		messages.POST("/:id/like", authMiddleware, h.Like)
		messages.DELETE("/:id/like", authMiddleware, h.Unlike)
	}
}
