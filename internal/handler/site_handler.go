package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sitediary/internal/port"
	"sitediary/internal/service"
)

// SiteHandler handles construction site endpoints.
type SiteHandler struct {
	siteService service.SiteService
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(siteService service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// Create handles POST /api/v1/sites
// @Summary Create a site
// @Tags sites
// @Accept json
// @Produce json
// @Param request body SiteRequest true "Site details"
// @Success 201 {object} Response{data=domain.Site} "Site created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /sites [post]
func (h *SiteHandler) Create(c *gin.Context) {
	var input service.SiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	site, err := h.siteService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, site)
}

// List handles GET /api/v1/sites
// @Summary List sites
// @Description Active sites first, then by title. Archived sites are hidden unless include_archived is set.
// @Tags sites
// @Produce json
// @Param q query string false "Matches title or address"
// @Param include_archived query bool false "Include archived sites" default(false)
// @Success 200 {object} Response{data=[]domain.Site,meta=ListMeta} "List of sites"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /sites [get]
func (h *SiteHandler) List(c *gin.Context) {
	includeArchived, _ := strconv.ParseBool(c.DefaultQuery("include_archived", "false"))
	filter := port.SiteFilter{
		Query:           strings.TrimSpace(c.Query("q")),
		IncludeArchived: includeArchived,
	}

	sites, err := h.siteService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondList(c, sites, ListMeta{Total: len(sites)})
}

// GetByID handles GET /api/v1/sites/:id
// @Summary Get a site
// @Tags sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} Response{data=domain.Site} "Site"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [get]
func (h *SiteHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	site, err := h.siteService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, site)
}

// Update handles PUT /api/v1/sites/:id
// @Summary Update a site
// @Tags sites
// @Accept json
// @Produce json
// @Param id path string true "Site ID"
// @Param request body SiteRequest true "Site details"
// @Success 200 {object} Response{data=domain.Site} "Updated site"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [put]
func (h *SiteHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.SiteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	site, err := h.siteService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, site)
}

// ToggleArchived handles POST /api/v1/sites/:id/archive
// @Summary Archive or restore a site
// @Description Flips the archived flag
// @Tags sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} Response{data=domain.Site} "Updated site"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id}/archive [post]
func (h *SiteHandler) ToggleArchived(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	site, err := h.siteService.ToggleArchived(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, site)
}

// Delete handles DELETE /api/v1/sites/:id
// @Summary Delete a site
// @Description Deletes the site and, through cascade, its diaries (admin only)
// @Tags sites
// @Produce json
// @Param id path string true "Site ID"
// @Success 200 {object} Response{data=MessageResponse} "Site deleted"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /sites/{id} [delete]
func (h *SiteHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.siteService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "site deleted"})
}
