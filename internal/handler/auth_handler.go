package handler

import (
	"errors"

	"github.com/chirp-social/internal/config"
	"github.com/chirp-social/internal/middleware"
	"github.com/chirp-social/internal/service"
	"github.com/chirp-social/pkg/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and logout requests
type AuthHandler struct {
	authService *service.AuthService
	sessionCfg  config.SessionConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessionCfg:  sessionCfg,
	}
}

// Signup handles user registration
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req service.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.BadRequest(c, "username already taken")
			return
		}
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(c, "email already taken")
			return
		}
		response.InternalError(c, "failed to sign up")
		return
	}

	h.setSessionCookie(c, token)
	response.Created(c, gin.H{
		"token": token,
		"user":  user.Profile(),
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, "invalid username or password")
			return
		}
		response.InternalError(c, "failed to login")
		return
	}

	h.setSessionCookie(c, token)
	response.Success(c, gin.H{
		"token": token,
		"user":  user.Profile(),
	})
}

// Logout drops the current session. Logging out while anonymous is still
// a success with nothing to confirm.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c, h.sessionCfg.CookieName)

	loggedIn := false
	if token != "" {
		if _, ok, err := h.authService.CurrentUser(c.Request.Context(), token); err == nil && ok {
			loggedIn = true
		}
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			response.InternalError(c, "failed to logout")
			return
		}
	}

	h.clearSessionCookie(c)
	if loggedIn {
		response.Success(c, gin.H{"logged_out": true})
		return
	}
	response.Success(c, nil)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	maxAge := h.sessionCfg.TTLHours * 3600
	c.SetCookie(h.sessionCfg.CookieName, token, maxAge, "/", "", false, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", false, true)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}
