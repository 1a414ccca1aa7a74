package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sitediary/internal/csvexport"
	"sitediary/internal/port"
	"sitediary/internal/service"
)

// PartnerHandler handles the partner directory endpoints.
type PartnerHandler struct {
	partnerService service.PartnerService
	now            func() time.Time
}

// NewPartnerHandler creates a new PartnerHandler.
func NewPartnerHandler(partnerService service.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService, now: time.Now}
}

func partnerFilter(c *gin.Context) port.PartnerFilter {
	return port.PartnerFilter{
		Query:     strings.TrimSpace(c.Query("q")),
		Specialty: strings.TrimSpace(c.Query("specialty")),
	}
}

// Create handles POST /api/v1/partners
// @Summary Create a partner
// @Description The Google Maps link defaults to a search for the address.
// @Tags partners
// @Accept json
// @Produce json
// @Param request body PartnerRequest true "Partner details"
// @Success 201 {object} Response{data=domain.Partner} "Partner created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /partners [post]
func (h *PartnerHandler) Create(c *gin.Context) {
	var input service.PartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	partner, err := h.partnerService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, partner)
}

// List handles GET /api/v1/partners
// @Summary List partners
// @Tags partners
// @Produce json
// @Param q query string false "Matches company, contact names or email"
// @Param specialty query string false "Exact specialty, case-insensitive"
// @Success 200 {object} Response{data=[]domain.Partner,meta=ListMeta} "List of partners"
// @Security BearerAuth
// @Router /partners [get]
func (h *PartnerHandler) List(c *gin.Context) {
	partners, err := h.partnerService.List(c.Request.Context(), partnerFilter(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondList(c, partners, ListMeta{Total: len(partners)})
}

// Specialties handles GET /api/v1/partners/specialties
// @Summary List specialties
// @Description Distinct specialties in use, sorted
// @Tags partners
// @Produce json
// @Success 200 {object} Response{data=[]string} "Specialties"
// @Security BearerAuth
// @Router /partners/specialties [get]
func (h *PartnerHandler) Specialties(c *gin.Context) {
	specialties, err := h.partnerService.Specialties(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, specialties)
}

// GetByID handles GET /api/v1/partners/:id
// @Summary Get a partner
// @Tags partners
// @Produce json
// @Param id path string true "Partner ID"
// @Success 200 {object} Response{data=domain.Partner} "Partner"
// @Failure 404 {object} ErrorResponseBody "Partner not found"
// @Security BearerAuth
// @Router /partners/{id} [get]
func (h *PartnerHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	partner, err := h.partnerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, partner)
}

// Update handles PUT /api/v1/partners/:id
// @Summary Update a partner
// @Tags partners
// @Accept json
// @Produce json
// @Param id path string true "Partner ID"
// @Param request body PartnerRequest true "Partner details"
// @Success 200 {object} Response{data=domain.Partner} "Updated partner"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Partner not found"
// @Security BearerAuth
// @Router /partners/{id} [put]
func (h *PartnerHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.PartnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	partner, err := h.partnerService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, partner)
}

// Delete handles DELETE /api/v1/partners/:id
// @Summary Delete a partner
// @Description Admin only
// @Tags partners
// @Produce json
// @Param id path string true "Partner ID"
// @Success 200 {object} Response{data=MessageResponse} "Partner deleted"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Partner not found"
// @Security BearerAuth
// @Router /partners/{id} [delete]
func (h *PartnerHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.partnerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "partner deleted"})
}

// ExportCSV handles GET /api/v1/partners/export
// @Summary Export partners as CSV
// @Description UTF-8 CSV with BOM, honouring the same filters as the list endpoint
// @Tags partners
// @Produce text/csv
// @Param q query string false "Matches company, contact names or email"
// @Param specialty query string false "Exact specialty, case-insensitive"
// @Success 200 {file} file "CSV file"
// @Security BearerAuth
// @Router /partners/export [get]
func (h *PartnerHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.partnerService.ExportCSV(c.Request.Context(), &buf, partnerFilter(c)); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("partners", h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Import handles POST /api/v1/partners/import
// @Summary Import partners from a spreadsheet
// @Description Bulk insert from an .xlsx file whose header row names the columns (admin only). Rows without a company are skipped.
// @Tags partners
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet (.xlsx)"
// @Success 200 {object} Response{data=service.ImportResult} "Import summary"
// @Failure 400 {object} ErrorResponseBody "Missing or unreadable file"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /partners/import [post]
func (h *PartnerHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if ext := strings.ToLower(path.Ext(header.Filename)); ext != ".xlsx" && ext != ".xlsm" {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: xlsx")
		return
	}

	result, err := h.partnerService.Import(c.Request.Context(), file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
