package service

import "strings"

// cleanString trims s and maps blanks and spreadsheet placeholders such as
// "nan" or "null" to nil.
func cleanString(s string) *string {
	v := strings.TrimSpace(s)
	switch strings.ToLower(v) {
	case "", "nan", "null", "undefined":
		return nil
	}
	return &v
}

// cleanPtr applies cleanString to an optional value.
func cleanPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return cleanString(*s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
