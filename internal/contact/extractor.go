package contact

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extract runs every field matcher over text and assembles a ParsedContact.
// When two or more distinct person names are found, AlternateContacts holds
// one record per name and the primary record uses the first of them.
func Extract(text string) ParsedContact {
	prepared := prepare(text)
	clean := collapse(prepared)

	company := MatchCompany(prepared)
	phones := MatchPhones(prepared)

	base := ParsedContact{
		RawText:  text,
		Language: DetectLanguage(clean),
		Company:  stringField(company),
		Title:    stringField(MatchTitle(clean)),
		Email:    stringField(MatchEmail(clean)),
		Phones:   phonesField(phones),
		Address:  stringField(MatchAddress(prepared)),
		Website:  stringField(MatchWebsite(clean)),
	}

	names := MatchNames(prepared)
	primary := withName(base, names, 0)
	if len(names) < 2 {
		return primary
	}

	primary.AlternateContacts = make([]ParsedContact, 0, len(names))
	for i := range names {
		alt := withName(base, names, i)
		alt.Phones = phonesField(slices.Clone(phones))
		primary.AlternateContacts = append(primary.AlternateContacts, alt)
	}
	return primary
}

func withName(c ParsedContact, names []Name, i int) ParsedContact {
	if i >= len(names) {
		return c
	}
	c.FirstName = stringField(names[i].First)
	c.LastName = stringField(names[i].Last)
	return c
}

// prepare repairs invalid UTF-8, composes accented letters and turns the
// escaped "\n" some OCR clients emit into real line breaks.
func prepare(text string) string {
	text = strings.ToValidUTF8(text, "")
	text = strings.ReplaceAll(text, `\n`, "\n")
	return norm.NFC.String(text)
}

func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// splitLines returns the non-empty lines of text with inner whitespace
// collapsed.
func splitLines(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = collapse(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
