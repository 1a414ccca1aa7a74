package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserInactive        = errors.New("user is inactive")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrUsernameRequired    = errors.New("username is required")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrInvalidRole         = errors.New("invalid role")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")

	ErrSiteNotFound       = errors.New("site not found")
	ErrSiteTitleRequired  = errors.New("site title is required")
	ErrDiaryNotFound      = errors.New("diary not found")
	ErrDiarySiteRequired  = errors.New("diary site is required")
	ErrInvalidDiaryDate   = errors.New("diary date must be YYYY-MM-DD")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrNoPhotos           = errors.New("no photos provided")
	ErrPartnerNotFound    = errors.New("partner not found")
	ErrCompanyRequired    = errors.New("partner company is required")
	ErrInvalidSpreadsheet = errors.New("spreadsheet could not be read")

	ErrNoTextFound        = errors.New("no text recognized in image")
	ErrRecognitionFailed  = errors.New("text recognition failed")
	ErrContactParseFailed = errors.New("contact could not be parsed")
	ErrEnrichFailed       = errors.New("partner enrichment failed")
	ErrEnrichDisabled     = errors.New("partner enrichment is not configured")
	ErrNothingKnown       = errors.New("at least one known field is required")
	ErrQuotaExceeded      = errors.New("monthly API quota exceeded")
	ErrInvalidMonth       = errors.New("month must be YYYY-MM")
)
