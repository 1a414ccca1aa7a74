package domain

// PhotoType represents the image formats accepted for diary photos and card scans.
type PhotoType string

const (
	PhotoTypeJPG  PhotoType = "jpg"
	PhotoTypePNG  PhotoType = "png"
	PhotoTypeWEBP PhotoType = "webp"
)

// AllowedPhotoTypes maps PhotoType to its MIME content type.
var AllowedPhotoTypes = map[PhotoType]string{
	PhotoTypeJPG:  "image/jpeg",
	PhotoTypePNG:  "image/png",
	PhotoTypeWEBP: "image/webp",
}

// AllowedContentTypes maps MIME content types back to PhotoType.
var AllowedContentTypes = map[string]PhotoType{
	"image/jpeg": PhotoTypeJPG,
	"image/png":  PhotoTypePNG,
	"image/webp": PhotoTypeWEBP,
}

// AllowedExtensions maps file extensions (without dot) to PhotoType.
var AllowedExtensions = map[string]PhotoType{
	"jpg":  PhotoTypeJPG,
	"jpeg": PhotoTypeJPG,
	"png":  PhotoTypePNG,
	"webp": PhotoTypeWEBP,
}

// UserRole defines what an app user may do.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// ValidRole reports whether r is a known role.
func ValidRole(r UserRole) bool {
	return r == RoleAdmin || r == RoleUser
}

// Metered provider names used as api_usage keys.
const (
	ProviderVision    = "google-vision"
	ProviderTesseract = "tesseract"
	ProviderClaude    = "claude"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderLocal     = "local"
	ProviderEnrich    = "gemini-enrich"
)
