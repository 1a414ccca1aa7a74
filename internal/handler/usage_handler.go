package handler

import (
	"github.com/gin-gonic/gin"

	"sitediary/internal/service"
)

// UsageHandler reports metered API usage.
type UsageHandler struct {
	usageService service.UsageService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usageService service.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// ForMonth handles GET /api/v1/usage
// @Summary API usage for a month
// @Description Call counters per metered provider (admin only). Defaults to the current month.
// @Tags usage
// @Produce json
// @Param month query string false "Month as YYYY-MM"
// @Success 200 {object} Response{data=[]domain.APIUsage} "Usage counters"
// @Failure 400 {object} ErrorResponseBody "Invalid month"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /usage [get]
func (h *UsageHandler) ForMonth(c *gin.Context) {
	usage, err := h.usageService.ForMonth(c.Request.Context(), c.Query("month"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, usage)
}
