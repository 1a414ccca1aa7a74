// Package csvexport writes the partner directory as a spreadsheet-friendly CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"sitediary/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Company",
	"Contact Last Name",
	"Contact First Name",
	"Specialty",
	"Email",
	"Phone Business",
	"Phone Cell",
	"Address",
	"Google Maps URL",
	"Created At",
}

// Writer wraps csv.Writer for exporting partners as CSV.
type Writer struct {
	out io.Writer
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w, csv: csv.NewWriter(w)}
}

// WriteHeader writes the BOM followed by the header row.
func (w *Writer) WriteHeader() error {
	if _, err := w.out.Write(BOM); err != nil {
		return err
	}
	return w.csv.Write(columns)
}

// WritePartners converts partners to CSV rows and writes them.
func (w *Writer) WritePartners(partners []domain.Partner) error {
	for i := range partners {
		if err := w.csv.Write(partnerToRow(&partners[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func partnerToRow(p *domain.Partner) []string {
	return []string{
		p.Company,
		str(p.ContactLastName),
		str(p.ContactFirstName),
		str(p.Specialty),
		str(p.Email),
		str(p.PhoneBusiness),
		str(p.PhoneCell),
		str(p.Address),
		str(p.GoogleMapsURL),
		p.CreatedAt.Format(time.RFC3339),
	}
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Anything
// but ASCII letters, digits, hyphen and underscore becomes _, and the result
// is capped at 100 bytes.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.csv.
func BuildFilename(name string, at time.Time) string {
	return fmt.Sprintf("%s_%s.csv", SanitizeFilename(name), at.Format("2006-01-02"))
}
