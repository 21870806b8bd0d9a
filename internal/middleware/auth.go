package middleware

import (
	"strings"

	"github.com/chirp-social/internal/service"
	"github.com/chirp-social/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyUsername is the key for username in gin context
	ContextKeyUsername = "username"
	// ContextKeySessionToken is the key for the raw session token in gin context
	ContextKeySessionToken = "session_token"
)

// SessionToken extracts the session token from the cookie or, failing
// that, from a Bearer authorization header
func SessionToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// AuthMiddleware creates a session authentication middleware. The session
// must resolve to a live user; a token whose user row was deleted counts
// as anonymous.
func AuthMiddleware(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Identity may already be resolved by OptionalAuthMiddleware
		// earlier in the chain
		if _, exists := c.Get(ContextKeyUserID); exists {
			c.Next()
			return
		}

		token := SessionToken(c, cookieName)
		if token == "" {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}

		user, ok, err := authService.CurrentUser(c.Request.Context(), token)
		if err != nil {
			response.InternalError(c, "failed to resolve session")
			c.Abort()
			return
		}
		if !ok {
			response.Unauthorized(c, "invalid or expired session")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Set(ContextKeySessionToken, token)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the session identity when one is
// present but never rejects the request. Used on routes viewable by
// anonymous visitors.
func OptionalAuthMiddleware(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c, cookieName)
		if token != "" {
			user, ok, err := authService.CurrentUser(c.Request.Context(), token)
			if err == nil && ok {
				c.Set(ContextKeyUserID, user.ID)
				c.Set(ContextKeyUsername, user.Username)
				c.Set(ContextKeySessionToken, token)
			}
		}
		c.Next()
	}
}

// GetUserID gets the user ID from the gin context
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	return userID.(uint)
}

// GetUsername gets the username from the gin context
func GetUsername(c *gin.Context) string {
	username, exists := c.Get(ContextKeyUsername)
	if !exists {
		return ""
	}
	return username.(string)
}

// GetSessionToken gets the raw session token from the gin context
func GetSessionToken(c *gin.Context) string {
	token, exists := c.Get(ContextKeySessionToken)
	if !exists {
		return ""
	}
	return token.(string)
}
