// Package contact turns raw OCR text from a business card into a
// confidence-scored contact suggestion.
//
// Extraction is a pure function of its input: it performs no I/O, keeps no
// state between calls and is safe for concurrent use. Every field matcher
// reports "no match" instead of failing, so Extract never returns an error.
package contact

// Language is the dominant script of a text.
type Language string

const (
	LanguageGreek   Language = "el"
	LanguageEnglish Language = "en"
	LanguageMixed   Language = "mixed"
)

// Field is an extracted value and the weight of the pattern that produced it.
// Confidence is 0 exactly when the value is absent.
type Field[T any] struct {
	Value      T       `json:"value,omitempty"`
	Confidence float64 `json:"confidence"`
}

// Present reports whether the field holds a matched value.
func (f Field[T]) Present() bool {
	return f.Confidence > 0
}

// ParsedContact is the structured suggestion built from one OCR text.
// It is never persisted; callers copy the fields they accept onto a form.
type ParsedContact struct {
	RawText   string          `json:"text"`
	Language  Language        `json:"lang"`
	Company   Field[string]   `json:"company"`
	FirstName Field[string]   `json:"first_name"`
	LastName  Field[string]   `json:"last_name"`
	Title     Field[string]   `json:"title"`
	Email     Field[string]   `json:"email"`
	Phones    Field[[]string] `json:"phones"`
	Address   Field[string]   `json:"address"`
	Website   Field[string]   `json:"website"`

	// AlternateContacts holds one record per distinct person name when the
	// text names more than one person. Shared fields are repeated in each.
	AlternateContacts []ParsedContact `json:"alternate_contacts,omitempty"`
}

func stringField(v string) Field[string] {
	return Field[string]{Value: v, Confidence: Score(v != "")}
}

func phonesField(v []string) Field[[]string] {
	if len(v) == 0 {
		return Field[[]string]{}
	}
	return Field[[]string]{Value: v, Confidence: Score(len(v) > 0)}
}
