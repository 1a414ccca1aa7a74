package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"sitediary/internal/domain"
	"sitediary/internal/service"
)

// ScanHandler handles business-card scanning and partner enrichment.
type ScanHandler struct {
	scanService   service.ScanService
	enrichService service.EnrichService
	maxImageBytes int64
}

// NewScanHandler creates a new ScanHandler. Uploads larger than maxImageBytes
// are rejected before they are read in full; zero disables the limit.
func NewScanHandler(scanService service.ScanService, enrichService service.EnrichService, maxImageBytes int64) *ScanHandler {
	return &ScanHandler{scanService: scanService, enrichService: enrichService, maxImageBytes: maxImageBytes}
}

// Scan handles POST /api/v1/partners/scan
// @Summary Scan a business card
// @Description Recognize the text on a card photo and parse it into contact fields and a partner draft
// @Tags partners
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Card photo (jpg, png, webp)"
// @Success 200 {object} Response{data=ScanResponse} "Parsed card"
// @Failure 400 {object} ErrorResponseBody "Missing or unsupported image"
// @Failure 413 {object} ErrorResponseBody "Image too large"
// @Failure 422 {object} ErrorResponseBody "No text recognized"
// @Failure 429 {object} ErrorResponseBody "Quota exceeded"
// @Failure 502 {object} ErrorResponseBody "OCR or parsing failed"
// @Security BearerAuth
// @Router /partners/scan [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image field is required")
		return
	}
	defer func() { _ = file.Close() }()

	if h.maxImageBytes > 0 && header.Size > h.maxImageBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	var src io.Reader = file
	if h.maxImageBytes > 0 {
		src = io.LimitReader(file, h.maxImageBytes+1)
	}
	image, err := io.ReadAll(src)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image could not be read")
		return
	}
	if h.maxImageBytes > 0 && int64(len(image)) > h.maxImageBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}
	if len(image) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image is empty")
		return
	}

	result, err := h.scanService.ScanCard(c.Request.Context(), image)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ParseText handles POST /api/v1/partners/parse-text
// @Summary Parse card text
// @Description Parse already recognized text into contact fields and a partner draft
// @Tags partners
// @Accept json
// @Produce json
// @Param request body ParseTextRequest true "Card text"
// @Success 200 {object} Response{data=ScanResponse} "Parsed card"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 502 {object} ErrorResponseBody "Parsing failed"
// @Security BearerAuth
// @Router /partners/parse-text [post]
func (h *ScanHandler) ParseText(c *gin.Context) {
	var req ParseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "text is required")
		return
	}

	result, err := h.scanService.ParseText(c.Request.Context(), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Enrich handles POST /api/v1/partners/enrich
// @Summary Look up missing partner details
// @Description Ask the language model for the missing fields given the known ones. Only partner keys are returned.
// @Tags partners
// @Accept json
// @Produce json
// @Param request body EnrichRequestBody true "Known and missing fields"
// @Success 200 {object} Response{data=EnrichResponse} "Suggested values"
// @Failure 400 {object} ErrorResponseBody "Nothing known"
// @Failure 429 {object} ErrorResponseBody "Quota exceeded"
// @Failure 502 {object} ErrorResponseBody "Enrichment failed"
// @Failure 503 {object} ErrorResponseBody "Enrichment not configured"
// @Security BearerAuth
// @Router /partners/enrich [post]
func (h *ScanHandler) Enrich(c *gin.Context) {
	var req service.EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.enrichService.Enrich(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}
