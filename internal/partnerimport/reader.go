// Package partnerimport reads partner rows from an .xlsx workbook.
//
// The first sheet is used. Its first non-empty row is the header; columns
// are recognised by English or Greek titles in any case, with or without
// accents. Unknown columns are ignored.
package partnerimport

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Column identifies a partner field in the sheet.
type Column string

const (
	ColCompany       Column = "company"
	ColLastName      Column = "contact_last_name"
	ColFirstName     Column = "contact_first_name"
	ColSpecialty     Column = "specialty"
	ColEmail         Column = "email"
	ColPhoneBusiness Column = "phone_business"
	ColPhoneCell     Column = "phone_cell"
	ColAddress       Column = "address"
	ColMapsURL       Column = "google_maps_url"
)

// headerAliases maps normalised header titles to columns.
var headerAliases = map[string]Column{
	"company":            ColCompany,
	"company name":       ColCompany,
	"εταιρεια":           ColCompany,
	"επωνυμια":           ColCompany,
	"contact last name":  ColLastName,
	"contact_last_name":  ColLastName,
	"last name":          ColLastName,
	"surname":            ColLastName,
	"επωνυμο":            ColLastName,
	"contact first name": ColFirstName,
	"contact_first_name": ColFirstName,
	"first name":         ColFirstName,
	"ονομα":              ColFirstName,
	"specialty":          ColSpecialty,
	"speciality":         ColSpecialty,
	"ειδικοτητα":         ColSpecialty,
	"email":              ColEmail,
	"e-mail":             ColEmail,
	"phone":              ColPhoneBusiness,
	"phone business":     ColPhoneBusiness,
	"phone_business":     ColPhoneBusiness,
	"τηλεφωνο":           ColPhoneBusiness,
	"τηλ. εργασιας":      ColPhoneBusiness,
	"mobile":             ColPhoneCell,
	"phone cell":         ColPhoneCell,
	"phone_cell":         ColPhoneCell,
	"κινητο":             ColPhoneCell,
	"address":            ColAddress,
	"διευθυνση":          ColAddress,
	"google maps":        ColMapsURL,
	"google maps url":    ColMapsURL,
	"google_maps_url":    ColMapsURL,
	"χαρτης":             ColMapsURL,
}

// ErrNoHeader is returned when no recognisable header row is found.
var ErrNoHeader = errors.New("no header row with a company column")

// Record is one data row. Line is the 1-based sheet row number.
type Record struct {
	Line   int
	Values map[Column]string
}

// Get returns the trimmed value of col.
func (r Record) Get(col Column) string {
	return strings.TrimSpace(r.Values[col])
}

// Read parses the workbook in r.
func Read(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoHeader
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	headerAt, cols := findHeader(rows)
	if headerAt < 0 {
		return nil, ErrNoHeader
	}

	var records []Record
	for i := headerAt + 1; i < len(rows); i++ {
		rec := Record{Line: i + 1, Values: map[Column]string{}}
		empty := true
		for idx, col := range cols {
			if idx >= len(rows[i]) {
				continue
			}
			v := strings.TrimSpace(rows[i][idx])
			if v == "" {
				continue
			}
			rec.Values[col] = v
			empty = false
		}
		if !empty {
			records = append(records, rec)
		}
	}
	return records, nil
}

// findHeader returns the index of the header row and its column mapping,
// or -1 when no row names a company column.
func findHeader(rows [][]string) (int, map[int]Column) {
	for i, row := range rows {
		cols := map[int]Column{}
		hasCompany := false
		for idx, cell := range row {
			col, ok := headerAliases[NormalizeHeader(cell)]
			if !ok {
				continue
			}
			cols[idx] = col
			if col == ColCompany {
				hasCompany = true
			}
		}
		if hasCompany {
			return i, cols
		}
	}
	return -1, nil
}

// NormalizeHeader lowercases s, strips accents and collapses whitespace.
func NormalizeHeader(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
