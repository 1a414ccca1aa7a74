package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitediary/internal/service"
)

// UserHandler handles app user and settings endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /api/v1/users
// @Summary Create a user
// @Description Create a new app user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User details"
// @Success 201 {object} Response{data=domain.User} "User created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 409 {object} ErrorResponseBody "Username already exists"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var input service.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, user)
}

// Settings handles GET /api/v1/settings
// @Summary Get settings
// @Description Return the current user's profile
// @Tags settings
// @Produce json
// @Success 200 {object} Response{data=domain.User} "Current user"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "User no longer exists"
// @Security BearerAuth
// @Router /settings [get]
func (h *UserHandler) Settings(c *gin.Context) {
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

// UpdateSettings handles PUT /api/v1/settings
// @Summary Update settings
// @Description Update the current user's name, email and phone number. Empty strings clear a field.
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Profile fields"
// @Success 200 {object} Response{data=domain.User} "Updated user"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /settings [put]
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}
