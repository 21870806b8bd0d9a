package handler

import (
	"errors"
	"strconv"

	"github.com/chirp-social/internal/middleware"
	"github.com/chirp-social/internal/repository"
	"github.com/chirp-social/internal/service"
	"github.com/chirp-social/pkg/response"
	"github.com/gin-gonic/gin"
)

// UserHandler handles profile and follow graph requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// GetProfile shows a public profile. Anonymous visitors may view.
// GET /api/v1/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to load profile")
		return
	}

	response.Success(c, profile)
}

// UpdateProfile edits the session identity's own profile. The current
// password must be re-entered; a mismatch mutates nothing.
// PUT /api/v1/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.BadRequest(c, "current password does not match")
		case errors.Is(err, service.ErrUsernameTaken):
			response.BadRequest(c, "username already taken")
		case errors.Is(err, service.ErrEmailTaken):
			response.BadRequest(c, "email already taken")
		case errors.Is(err, repository.ErrUserNotFound):
			response.NotFound(c, "user not found")
		default:
			response.InternalError(c, "failed to update profile")
		}
		return
	}

	response.Success(c, user.Profile())
}

// DeleteAccount removes the session identity's account, messages and edges
// DELETE /api/v1/profile
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	err := h.userService.DeleteAccount(
		c.Request.Context(),
		middleware.GetUserID(c),
		middleware.GetSessionToken(c),
	)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to delete account")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

// Follow adds a follow edge to the target user
// POST /api/v1/users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Follow(middleware.GetUserID(c), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			response.NotFound(c, "user not found")
		case errors.Is(err, service.ErrCannotFollowSelf):
			response.BadRequest(c, "cannot follow yourself")
		default:
			response.InternalError(c, "failed to follow user")
		}
		return
	}

	response.Success(c, gin.H{"following": true})
}

// Unfollow removes the follow edge to the target user
// DELETE /api/v1/users/:id/follow
func (h *UserHandler) Unfollow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Unfollow(middleware.GetUserID(c), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to unfollow user")
		return
	}

	response.Success(c, gin.H{"following": false})
}

// Following lists the users the target follows. Public.
// GET /api/v1/users/:id/following
func (h *UserHandler) Following(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	users, err := h.userService.Following(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to load following")
		return
	}

	response.Success(c, users)
}

// Followers lists the users following the target. Public.
// GET /api/v1/users/:id/followers
func (h *UserHandler) Followers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	users, err := h.userService.Followers(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to load followers")
		return
	}

	response.Success(c, users)
}

// Likes lists the messages the target user has liked. Requires a session.
// GET /api/v1/users/:id/likes
func (h *UserHandler) Likes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	views, err := h.userService.LikedMessages(id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c, "failed to load likes")
		return
	}

	response.Success(c, views)
}

// RegisterRoutes registers user routes. Profiles and follow lists are
// public; everything mutating, plus the likes list, needs a session.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.GET("/:id", h.GetProfile)
		users.GET("/:id/following", h.Following)
		users.GET("/:id/followers", h.Followers)

		users.GET("/:id/likes", authMiddleware, h.Likes)
		users.POST("/:id/follow", authMiddleware, h.Follow)
		users.DELETE("/:id/follow", authMiddleware, h.Unfollow)
	}

	profile := rg.Group("/profile", authMiddleware)
	{
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteAccount)
	}
}
