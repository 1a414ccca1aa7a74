package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sitediary/internal/domain"
	"sitediary/internal/middleware"
	"sitediary/internal/parser"
	"sitediary/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta holds list metadata.
type ListMeta struct {
	Total int `json:"total"`
	Limit int `json:"limit,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondList sends a 200 success response with list metadata.
func RespondList(c *gin.Context, data interface{}, meta ListMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rle *parser.RateLimitError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict, "DUPLICATE_USERNAME", "username already exists"
	case errors.Is(err, domain.ErrUsernameRequired),
		errors.Is(err, domain.ErrPasswordTooShort),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrSiteTitleRequired),
		errors.Is(err, domain.ErrDiarySiteRequired),
		errors.Is(err, domain.ErrInvalidDiaryDate),
		errors.Is(err, domain.ErrCompanyRequired),
		errors.Is(err, domain.ErrNothingKnown),
		errors.Is(err, domain.ErrInvalidMonth):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrSiteNotFound):
		return http.StatusNotFound, "SITE_NOT_FOUND", "site not found"
	case errors.Is(err, domain.ErrDiaryNotFound):
		return http.StatusNotFound, "DIARY_NOT_FOUND", "diary not found"
	case errors.Is(err, domain.ErrPhotoNotFound):
		return http.StatusNotFound, "PHOTO_NOT_FOUND", "photo not found"
	case errors.Is(err, domain.ErrPartnerNotFound):
		return http.StatusNotFound, "PARTNER_NOT_FOUND", "partner not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrNoPhotos):
		return http.StatusBadRequest, "NO_PHOTOS", "at least one image is required"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: jpg, png, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrInvalidSpreadsheet):
		return http.StatusBadRequest, "INVALID_SPREADSHEET", "spreadsheet could not be read; expected .xlsx with a company column"
	case errors.Is(err, domain.ErrNoTextFound):
		return http.StatusUnprocessableEntity, "NO_TEXT_FOUND", "no text was recognized in the image"
	case errors.Is(err, domain.ErrQuotaExceeded), errors.As(err, &rle):
		return http.StatusTooManyRequests, "QUOTA_EXCEEDED", "monthly API quota exceeded or provider rate limited; try again later"
	case errors.Is(err, domain.ErrRecognitionFailed):
		return http.StatusBadGateway, "OCR_FAILED", "text recognition failed"
	case errors.Is(err, domain.ErrContactParseFailed):
		return http.StatusBadGateway, "PARSE_FAILED", "contact could not be parsed"
	case errors.Is(err, domain.ErrEnrichDisabled):
		return http.StatusServiceUnavailable, "ENRICH_DISABLED", "partner enrichment is not configured"
	case errors.Is(err, domain.ErrEnrichFailed):
		return http.StatusBadGateway, "ENRICH_FAILED", "partner enrichment failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Error("handler: request failed",
			zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}

// identity returns the authenticated caller.
// Returns false if auth context is missing (error response already written).
func identity(c *gin.Context) (*service.Identity, bool) {
	id, err := middleware.GetIdentity(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing session")
		return nil, false
	}
	return id, true
}

// pathUUID parses the named path parameter.
// Returns false if it is not a UUID (error response already written).
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
