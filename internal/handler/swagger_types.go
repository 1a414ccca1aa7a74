package handler

import (
	"time"

	"sitediary/internal/contact"
	"sitediary/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"maria"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required" example:"nikos"`
	Password string          `json:"password" binding:"required" example:"securepassword123"`
	Name     string          `json:"name" example:"Nikos Georgiou"`
	Role     domain.UserRole `json:"role" example:"user"`
}

// UpdateSettingsRequest represents the settings update request body.
type UpdateSettingsRequest struct {
	Name        *string `json:"name" example:"Maria Papadopoulou"`
	Email       *string `json:"email" example:"maria@example.gr"`
	PhoneNumber *string `json:"phone_number" example:"6941234567"`
}

// SiteRequest represents the create/update site request body.
type SiteRequest struct {
	Title     string  `json:"title" binding:"required" example:"Kifisias 12 renovation"`
	Address   *string `json:"address" example:"Leof. Kifisias 12, Athens"`
	Employer  *string `json:"employer" example:"Acme Developments"`
	MapsURL   *string `json:"maps_url" example:"https://maps.google.com/?q=Kifisias+12"`
	VAT       *string `json:"vat" example:"099999999"`
	TaxOffice *string `json:"tax_office" example:"DOY Amarousiou"`
	Archived  *bool   `json:"archived" example:"false"`
}

// DiaryRequest represents the create/update diary request body.
type DiaryRequest struct {
	SiteID     string  `json:"site_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Date       string  `json:"date" example:"2025-03-14"`
	Weather    *string `json:"weather" example:"sunny, 18C"`
	Activities *string `json:"activities" example:"Formwork for the first floor slab"`
	Notes      *string `json:"notes" example:"Concrete delivery moved to Monday"`
}

// PartnerRequest represents the create/update partner request body.
type PartnerRequest struct {
	Company          string  `json:"company" binding:"required" example:"Alfa Plumbing OE"`
	ContactFirstName *string `json:"contact_first_name" example:"Giorgos"`
	ContactLastName  *string `json:"contact_last_name" example:"Papadakis"`
	Specialty        *string `json:"specialty" example:"Plumbing"`
	Email            *string `json:"email" example:"info@alfa.gr"`
	PhoneBusiness    *string `json:"phone_business" example:"2101234567"`
	PhoneCell        *string `json:"phone_cell" example:"6941234567"`
	Address          *string `json:"address" example:"Ermou 5, Athens"`
	GoogleMapsURL    *string `json:"google_maps_url" example:""`
}

// ParseTextRequest represents the parse-text request body.
type ParseTextRequest struct {
	Text string `json:"text" binding:"required" example:"ALFA PLUMBING OE\nGiorgos Papadakis\n694 123 4567"`
}

// EnrichRequestBody represents the enrich request body.
type EnrichRequestBody struct {
	Known   map[string]string `json:"known" binding:"required"`
	Missing []string          `json:"missing" example:"email,website"`
}

// --- Response Types ---

// SessionResponse represents the login response.
type SessionResponse struct {
	Token     string       `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time    `json:"expires_at" example:"2025-01-15T10:30:00Z"`
	User      *domain.User `json:"user"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// ScanResponse represents a scanned business card.
type ScanResponse struct {
	Text        string                `json:"text"`
	OCRProvider string                `json:"ocr_provider" example:"google-vision"`
	Contact     contact.ParsedContact `json:"contact"`
	Draft       PartnerRequest        `json:"draft"`
	ModelUsed   string                `json:"model_used" example:"local"`
}

// EnrichResponse represents the enrichment result.
type EnrichResponse struct {
	Fields    map[string]string `json:"fields"`
	Message   string            `json:"message,omitempty" example:"no extra information found"`
	ModelUsed string            `json:"model_used" example:"gemini-2.5-pro"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
