package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a row of app_users.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         *string   `db:"name" json:"name"`
	Email        *string   `db:"email" json:"email"`
	PhoneNumber  *string   `db:"phone_number" json:"phone_number"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Site is a construction site that diaries are recorded against.
type Site struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Address   *string   `db:"address" json:"address"`
	Employer  *string   `db:"employer" json:"employer"`
	MapsURL   *string   `db:"maps_url" json:"maps_url"`
	VAT       *string   `db:"vat" json:"vat"`
	TaxOffice *string   `db:"tax_office" json:"tax_office"`
	Archived  bool      `db:"archived" json:"archived"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Diary is a single day's record for a site.
type Diary struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	SiteID     uuid.UUID  `db:"site_id" json:"site_id"`
	Date       string     `db:"date" json:"date"`
	Weather    *string    `db:"weather" json:"weather"`
	Activities *string    `db:"activities" json:"activities"`
	Notes      *string    `db:"notes" json:"notes"`
	CreatedBy  *uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// DiaryPhoto references an object in the diary photo bucket.
type DiaryPhoto struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DiaryID     uuid.UUID `db:"diary_id" json:"diary_id"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	ContentType string    `db:"content_type" json:"content_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Partner is a subcontractor or supplier.
type Partner struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Company          string    `db:"company" json:"company"`
	ContactLastName  *string   `db:"contact_last_name" json:"contact_last_name"`
	ContactFirstName *string   `db:"contact_first_name" json:"contact_first_name"`
	Specialty        *string   `db:"specialty" json:"specialty"`
	Email            *string   `db:"email" json:"email"`
	PhoneBusiness    *string   `db:"phone_business" json:"phone_business"`
	PhoneCell        *string   `db:"phone_cell" json:"phone_cell"`
	Address          *string   `db:"address" json:"address"`
	GoogleMapsURL    *string   `db:"google_maps_url" json:"google_maps_url"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// APIUsage is the call counter of one metered provider for one calendar month.
type APIUsage struct {
	Month     string    `db:"month" json:"month"`
	Provider  string    `db:"provider" json:"provider"`
	Calls     int       `db:"calls" json:"calls"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UsageMonth formats t as the YYYY-MM key used by api_usage.
func UsageMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}
