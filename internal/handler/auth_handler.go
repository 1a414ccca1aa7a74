package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sitediary/internal/config"
	"sitediary/internal/service"
)

// AuthHandler handles session endpoints.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	cfg         config.JWTConfig
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, cfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, cfg: cfg}
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Authenticate with username and password. The session token is returned and also set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response{data=SessionResponse} "Session issued"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		return
	}

	session, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.setSessionCookie(c, session.Token, int(time.Until(session.ExpiresAt).Seconds()))
	RespondOK(c, session)
}

// Logout handles POST /api/v1/auth/logout
// @Summary Log out
// @Description Clear the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} Response{data=MessageResponse} "Logged out"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	RespondOK(c, gin.H{"message": "logged out"})
}

// Me handles GET /api/v1/auth/me
// @Summary Current user
// @Description Return the user behind the current session
// @Tags auth
// @Produce json
// @Success 200 {object} Response{data=domain.User} "Current user"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "User no longer exists"
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	user, err := h.userService.Current(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, value, maxAge, "/", "", h.cfg.CookieSecure, true)
}
