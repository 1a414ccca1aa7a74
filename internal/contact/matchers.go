package contact

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailRe   = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRe   = regexp.MustCompile(`\+?\d[\d \t-]{7,}\d`)
	websiteRe = regexp.MustCompile(`(?i)www\.[A-Z0-9.-]+`)
	nameRe    = regexp.MustCompile(`\p{Lu}\p{Ll}+ \p{Lu}\p{Ll}+`)

	// Longer alternatives come first so the leftmost match is also the longest.
	titleRe = regexp.MustCompile(`(?i)Σύμβουλος\s+[\p{L}\p{N}_]+|Πωλήσεων|Διευθυντής|Διευθύντρια|Υπεύθυνος|Μηχανικός|Manager|Sales|Engineer|Consultant|Supervisor|Director|Architect`)

	addressSpanRe   = regexp.MustCompile(`(?i)\d+\s?(?:ο\.?|χλμ\.?)[^,]+,[^@]*?(?:Χαλκίδα|Αθήνα|Θεσσαλονίκη|Τ\.Κ\.|T\.K\.|ΤΚ|TK|Greece)(?:\s*\d{3}\s?\d{2})?`)
	addressMarkerRe = regexp.MustCompile(`(?i)` + addressMarkers)
	addressWordRe   = regexp.MustCompile(`(?i)^(?:` + addressMarkers + `)$`)
	postcodeRe      = regexp.MustCompile(`\d{3}\s?\d{2}`)

	legalSuffixRe = regexp.MustCompile(`(?i)Α\.?Ε\.?Β\.?Ε|Ε\.?Π\.?Ε|Ι\.?Κ\.?Ε|Α\.?Ε|Ο\.?Ε|Ε\.?Ε|E\.?P\.?E|I\.?K\.?E|A\.?E|O\.?E|S\.?A|LTD|LIMITED|INC|GMBH|LLC|COMPANY|CO\.`)
)

const addressMarkers = `οδός|οδού|οδος|οδ\.|λεωφόρος|λεωφ|πλατεία|χλμ|τ\.κ\.|τκ|αθήνα|χαλκίδα|θεσσαλονίκη|πειραιάς|ελλάδα|leoforos|leof|odos|street|str\.|st\.|avenue|ave\.|road|rd\.|km|t\.k\.|tk|p\.o\.|athens|thessaloniki|piraeus|chalkida|greece`

// roleWords are single vocabulary words that never form part of a person name.
var roleWords = map[string]bool{
	"σύμβουλος": true, "πωλήσεων": true, "διευθυντής": true, "διευθύντρια": true,
	"υπεύθυνος": true, "μηχανικός": true, "manager": true, "sales": true,
	"engineer": true, "consultant": true, "supervisor": true, "director": true,
	"architect": true,
}

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15

	minCompanyLen = 3
	maxCompanyLen = 40
	capsRatio     = 0.6
)

// Name is a two-token person name.
type Name struct {
	First string
	Last  string
}

// MatchEmail returns the first e-mail address in text, or "".
func MatchEmail(text string) string {
	return emailRe.FindString(text)
}

// MatchPhones returns every phone-shaped substring, deduplicated in order of
// first appearance. A phone never spans a line break, and a run of digit
// groups too long for one number is split into several.
func MatchPhones(text string) []string {
	var phones []string
	seen := make(map[string]bool)
	for _, run := range phoneRe.FindAllString(text, -1) {
		for _, m := range splitPhoneRun(strings.TrimSpace(run)) {
			if seen[m] {
				continue
			}
			seen[m] = true
			phones = append(phones, m)
		}
	}
	return phones
}

// splitPhoneRun cuts a blank-separated run such as "2101234567 6941234567"
// into numbers of at least minPhoneDigits digits each.
func splitPhoneRun(run string) []string {
	if countDigits(run) <= maxPhoneDigits {
		return []string{run}
	}
	var (
		out   []string
		group []string
		n     int
	)
	for _, tok := range strings.Fields(run) {
		group = append(group, tok)
		n += countDigits(tok)
		if n >= minPhoneDigits {
			out = append(out, strings.Join(group, " "))
			group, n = nil, 0
		}
	}
	if n >= minPhoneDigits-2 {
		out = append(out, strings.Join(group, " "))
	}
	return out
}

// MatchWebsite returns the first www. address in text, or "".
func MatchWebsite(text string) string {
	return strings.TrimRight(websiteRe.FindString(text), ".-")
}

// MatchTitle returns the leftmost role word in text, or "".
func MatchTitle(text string) string {
	if m := findBounded(titleRe, text); m != nil {
		return text[m[0]:m[1]]
	}
	return ""
}

// MatchNames returns the distinct "Capitalized Capitalized" names in text in
// order of appearance. Names never span a line break. Address lines, matches
// inside an e-mail address and role or street words such as "Sales Manager"
// are not names.
func MatchNames(text string) []Name {
	var names []Name
	seen := make(map[Name]bool)
	for _, line := range splitLines(text) {
		if isAddressLine(line) {
			continue
		}
		emails := emailRe.FindAllStringIndex(line, -1)
		for _, m := range findAllBounded(nameRe, line) {
			if overlapsAny(m, emails) {
				continue
			}
			first, last, _ := strings.Cut(line[m[0]:m[1]], " ")
			if !isNameWord(first) || !isNameWord(last) {
				continue
			}
			n := Name{First: first, Last: last}
			if seen[n] {
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

func isNameWord(tok string) bool {
	return !roleWords[strings.ToLower(tok)] && !addressWordRe.MatchString(tok)
}

func overlapsAny(m []int, spans [][]int) bool {
	for _, sp := range spans {
		if m[0] < sp[1] && sp[0] < m[1] {
			return true
		}
	}
	return false
}

// MatchAddress returns a postal address found in text, or "".
// A "<number>ο / χλμ ..., <city|TK>" span wins; otherwise the first line that
// has both an address marker and a digit is used, together with directly
// following lines that continue it.
func MatchAddress(text string) string {
	if span := addressSpanRe.FindString(collapse(text)); span != "" {
		return strings.TrimSpace(span)
	}

	lines := splitLines(text)
	for i, line := range lines {
		if !isAddressLine(line) {
			continue
		}
		parts := []string{line}
		for _, next := range lines[i+1:] {
			if !isAddressLine(next) && !isPostcodeLine(next) {
				break
			}
			parts = append(parts, next)
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// MatchCompany picks the organisation name from the lines of text. A line
// carrying a legal-entity suffix wins over the first upper-case-heavy line.
// Stray single capitals that OCR glues in front of the name are removed.
func MatchCompany(text string) string {
	var caps string
	for _, line := range splitLines(text) {
		if !isCompanyCandidate(line) {
			continue
		}
		if findBounded(legalSuffixRe, line) != nil {
			return stripLeadingNoise(line)
		}
		if caps == "" && upperRatio(line) >= capsRatio {
			caps = line
		}
	}
	return stripLeadingNoise(caps)
}

func isAddressLine(line string) bool {
	if strings.Contains(line, "@") || !containsDigit(line) {
		return false
	}
	return findBounded(addressMarkerRe, line) != nil
}

func isPostcodeLine(line string) bool {
	if strings.Contains(line, "@") || phoneRe.MatchString(line) {
		return false
	}
	return findBounded(postcodeRe, line) != nil
}

func isCompanyCandidate(line string) bool {
	n := utf8.RuneCountInString(line)
	if n < minCompanyLen || n > maxCompanyLen {
		return false
	}
	if strings.Contains(line, "@") || strings.Contains(strings.ToLower(line), "www.") {
		return false
	}
	return !containsDigit(line)
}

func stripLeadingNoise(s string) string {
	fields := strings.Fields(s)
	for len(fields) > 1 && isStrayCapital(fields[0]) && isWord(fields[1]) {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

func isStrayCapital(tok string) bool {
	r, size := utf8.DecodeRuneInString(tok)
	return size == len(tok) && unicode.IsUpper(r)
}

func isWord(tok string) bool {
	letters := 0
	for _, r := range tok {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 2
}

func upperRatio(s string) float64 {
	var letters, upper int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters < 2 {
		return 0
	}
	return float64(upper) / float64(letters)
}

func containsDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// findBounded returns the first match of re in s that is not glued to a
// neighbouring letter or digit.
func findBounded(re *regexp.Regexp, s string) []int {
	all := scanBounded(re, s, 1)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func findAllBounded(re *regexp.Regexp, s string) [][]int {
	return scanBounded(re, s, -1)
}

func scanBounded(re *regexp.Regexp, s string, limit int) [][]int {
	var out [][]int
	pos := 0
	for pos <= len(s) && (limit < 0 || len(out) < limit) {
		loc := re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if isBoundary(s, start, end) {
			out = append(out, []int{start, end})
			pos = end
			continue
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		if size == 0 {
			break
		}
		pos = start + size
	}
	return out
}

func isBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
