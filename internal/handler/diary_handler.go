package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sitediary/internal/domain"
	"sitediary/internal/port"
	"sitediary/internal/service"
)

const maxDiaryListLimit = 500

// DiaryHandler handles site diary and photo endpoints.
type DiaryHandler struct {
	diaryService service.DiaryService
}

// NewDiaryHandler creates a new DiaryHandler.
func NewDiaryHandler(diaryService service.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaryService: diaryService}
}

// Create handles POST /api/v1/diaries
// @Summary Create a diary entry
// @Description Create a daily log for a site. The date defaults to today.
// @Tags diaries
// @Accept json
// @Produce json
// @Param request body DiaryRequest true "Diary details"
// @Success 201 {object} Response{data=domain.Diary} "Diary created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Site not found"
// @Security BearerAuth
// @Router /diaries [post]
func (h *DiaryHandler) Create(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var input service.DiaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	diary, err := h.diaryService.Create(c.Request.Context(), id.UserID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, diary)
}

// List handles GET /api/v1/diaries
// @Summary List diary entries
// @Description Newest date first, optionally limited to one site
// @Tags diaries
// @Produce json
// @Param site_id query string false "Site ID"
// @Param limit query int false "Maximum number of entries" default(50)
// @Success 200 {object} Response{data=[]domain.Diary,meta=ListMeta} "List of diaries"
// @Failure 400 {object} ErrorResponseBody "Invalid site_id"
// @Security BearerAuth
// @Router /diaries [get]
func (h *DiaryHandler) List(c *gin.Context) {
	var filter port.DiaryFilter
	if raw := c.Query("site_id"); raw != "" {
		siteID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid site_id format")
			return
		}
		filter.SiteID = &siteID
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		filter.Limit = min(limit, maxDiaryListLimit)
	}

	diaries, err := h.diaryService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondList(c, diaries, ListMeta{Total: len(diaries), Limit: filter.Limit})
}

// GetByID handles GET /api/v1/diaries/:id
// @Summary Get a diary entry
// @Description Returns the diary with its site and photos. Photo URLs expire after a few minutes.
// @Tags diaries
// @Produce json
// @Param id path string true "Diary ID"
// @Success 200 {object} Response{data=service.DiaryDetail} "Diary"
// @Failure 404 {object} ErrorResponseBody "Diary not found"
// @Security BearerAuth
// @Router /diaries/{id} [get]
func (h *DiaryHandler) GetByID(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	detail, err := h.diaryService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Update handles PUT /api/v1/diaries/:id
// @Summary Update a diary entry
// @Tags diaries
// @Accept json
// @Produce json
// @Param id path string true "Diary ID"
// @Param request body DiaryRequest true "Diary details"
// @Success 200 {object} Response{data=domain.Diary} "Updated diary"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Diary not found"
// @Security BearerAuth
// @Router /diaries/{id} [put]
func (h *DiaryHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input service.DiaryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	diary, err := h.diaryService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, diary)
}

// Delete handles DELETE /api/v1/diaries/:id
// @Summary Delete a diary entry
// @Description Deletes the diary and its photos (admin only)
// @Tags diaries
// @Produce json
// @Param id path string true "Diary ID"
// @Success 200 {object} Response{data=MessageResponse} "Diary deleted"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 404 {object} ErrorResponseBody "Diary not found"
// @Security BearerAuth
// @Router /diaries/{id} [delete]
func (h *DiaryHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.diaryService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "diary deleted"})
}

// UploadPhotos handles POST /api/v1/diaries/:id/photos
// @Summary Upload diary photos
// @Description Upload one or more images (jpg, png, webp). Files that fail are reported and skipped.
// @Tags diaries
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Diary ID"
// @Param photos formData file true "Images to upload"
// @Success 201 {object} Response{data=service.UploadPhotosResult} "Photos uploaded"
// @Failure 400 {object} ErrorResponseBody "No photos"
// @Failure 404 {object} ErrorResponseBody "Diary not found"
// @Failure 500 {object} ErrorResponseBody "Every upload failed"
// @Security BearerAuth
// @Router /diaries/{id}/photos [post]
func (h *DiaryHandler) UploadPhotos(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil || len(form.File["photos"]) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_PHOTOS", "photos field is required")
		return
	}

	headers := form.File["photos"]
	files := make([]service.PhotoFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_UPLOAD", "could not read "+fh.Filename)
			return
		}
		opened = append(opened, f)
		files = append(files, service.PhotoFile{Filename: fh.Filename, Size: fh.Size, Content: f})
	}

	result, err := h.diaryService.UploadPhotos(c.Request.Context(), id, files)
	if err != nil {
		if errors.Is(err, domain.ErrUploadFailed) && result != nil {
			status, code, msg := MapDomainError(err)
			c.JSON(status, APIResponse{Success: false, Data: result, Error: &APIError{Code: code, Message: msg}})
			return
		}
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// PhotoURLs handles GET /api/v1/diaries/:id/photo-urls
// @Summary Sign photo URLs
// @Description Map of storage path to a short-lived download URL. Photos that cannot be signed are left out.
// @Tags diaries
// @Produce json
// @Param id path string true "Diary ID"
// @Success 200 {object} Response{data=map[string]string} "Signed URLs"
// @Failure 404 {object} ErrorResponseBody "Diary not found"
// @Security BearerAuth
// @Router /diaries/{id}/photo-urls [get]
func (h *DiaryHandler) PhotoURLs(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	urls, err := h.diaryService.PhotoURLs(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, urls)
}

// DeletePhoto handles DELETE /api/v1/diaries/:id/photos/:photoID
// @Summary Delete a diary photo
// @Tags diaries
// @Produce json
// @Param id path string true "Diary ID"
// @Param photoID path string true "Photo ID"
// @Success 200 {object} Response{data=MessageResponse} "Photo deleted"
// @Failure 404 {object} ErrorResponseBody "Photo not found"
// @Security BearerAuth
// @Router /diaries/{id}/photos/{photoID} [delete]
func (h *DiaryHandler) DeletePhoto(c *gin.Context) {
	diaryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	photoID, ok := pathUUID(c, "photoID")
	if !ok {
		return
	}

	if err := h.diaryService.DeletePhoto(c.Request.Context(), diaryID, photoID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "photo deleted"})
}
