package handler

import (
	"net/http"

	"github.com/chirp-social/internal/hub"
	"github.com/chirp-social/internal/middleware"
	"github.com/chirp-social/internal/service"
	"github.com/chirp-social/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler handles timeline requests and the live feed stream
type FeedHandler struct {
	messageService *service.MessageService
	feedHub        *hub.Hub
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(messageService *service.MessageService, feedHub *hub.Hub) *FeedHandler {
	return &FeedHandler{
		messageService: messageService,
		feedHub:        feedHub,
	}
}

// Home returns the session identity's home timeline: own messages plus
// messages of everyone it follows, newest first, capped.
// GET /api/v1/feed
func (h *FeedHandler) Home(c *gin.Context) {
	views, err := h.messageService.HomeFeed(middleware.GetUserID(c))
	if err != nil {
		response.InternalError(c, "failed to load feed")
		return
	}

	response.Success(c, views)
}

// Public returns the newest messages across all users. Anonymous OK.
// GET /api/v1/feed/public
func (h *FeedHandler) Public(c *gin.Context) {
	views, err := h.messageService.PublicFeed()
	if err != nil {
		response.InternalError(c, "failed to load public feed")
		return
	}

	response.Success(c, views)
}

// Live upgrades to a websocket and streams each new message whose author
// the session identity follows (or is)
// GET /api/v1/feed/live
func (h *FeedHandler) Live(c *gin.Context) {
	userID := middleware.GetUserID(c)

	authors, err := h.messageService.FeedAuthors(userID)
	if err != nil {
		response.InternalError(c, "failed to load feed authors")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response
		return
	}

	sub := h.feedHub.Subscribe(userID, authors)

	// Clients send nothing meaningful; read only to notice the close frame
	go func() {
		defer h.feedHub.Unsubscribe(sub)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for view := range sub.C() {
		if err := conn.WriteJSON(view); err != nil {
			break
		}
	}
	h.feedHub.Unsubscribe(sub)
	_ = conn.Close()
}

// RegisterRoutes registers feed routes. The public timeline is open;
// home and live feeds need a session.
func (h *FeedHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	feed := rg.Group("/feed")
	{
		feed.GET("/public", h.Public)

		feed.GET("", authMiddleware, h.Home)
		feed.GET("/live", authMiddleware, h.Live)
	}
}
