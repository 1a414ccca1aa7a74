package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"sitediary/internal/contact"
)

type wireText struct {
	Value      *string  `json:"value"`
	Confidence *float64 `json:"confidence"`
}

type wireList struct {
	Value      []string `json:"value"`
	Confidence *float64 `json:"confidence"`
}

type wireContact struct {
	Lang              *string       `json:"lang"`
	Company           wireText      `json:"company"`
	FirstName         wireText      `json:"first_name"`
	LastName          wireText      `json:"last_name"`
	Title             wireText      `json:"title"`
	Email             wireText      `json:"email"`
	Phones            wireList      `json:"phones"`
	Address           wireText      `json:"address"`
	Website           wireText      `json:"website"`
	AlternateContacts []wireContact `json:"alternate_contacts"`
}

// ExtractJSON strips markdown code fences and any prose around the first
// JSON object in an LLM answer.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	if i := strings.Index(s, "{"); i >= 0 {
		s = s[i:]
	}
	if j := strings.LastIndex(s, "}"); j >= 0 {
		s = s[:j+1]
	}
	return strings.TrimSpace(s)
}

// DecodeContact validates an AI provider answer and converts it into a
// ParsedContact for text. Confidences are clamped to [0,1], forced to 0 for
// empty values and default to contact.DefaultConfidence when a value comes
// without one.
func DecodeContact(raw, text string) (*contact.ParsedContact, error) {
	body := ExtractJSON(raw)

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v (raw: %s)", ErrInvalidOutput, err, truncate(raw, 500))
	}
	if err := ValidateContactJSON(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	var wc wireContact
	if err := json.Unmarshal([]byte(body), &wc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	c := toContact(wc, text)
	if len(wc.AlternateContacts) > 1 {
		for _, alt := range wc.AlternateContacts {
			ac := toContact(alt, text)
			ac.Language = c.Language
			c.AlternateContacts = append(c.AlternateContacts, ac)
		}
	}
	return &c, nil
}

func toContact(wc wireContact, text string) contact.ParsedContact {
	return contact.ParsedContact{
		RawText:   text,
		Language:  language(wc.Lang, text),
		Company:   textField(wc.Company),
		FirstName: textField(wc.FirstName),
		LastName:  textField(wc.LastName),
		Title:     textField(wc.Title),
		Email:     textField(wc.Email),
		Phones:    listField(wc.Phones),
		Address:   textField(wc.Address),
		Website:   textField(wc.Website),
	}
}

func language(lang *string, text string) contact.Language {
	if lang != nil {
		switch l := contact.Language(strings.ToLower(strings.TrimSpace(*lang))); l {
		case contact.LanguageGreek, contact.LanguageEnglish, contact.LanguageMixed:
			return l
		}
	}
	return contact.DetectLanguage(text)
}

func textField(w wireText) contact.Field[string] {
	if w.Value == nil {
		return contact.Field[string]{}
	}
	v := strings.TrimSpace(*w.Value)
	if v == "" {
		return contact.Field[string]{}
	}
	return contact.Field[string]{Value: v, Confidence: confidence(w.Confidence)}
}

func listField(w wireList) contact.Field[[]string] {
	var values []string
	seen := make(map[string]bool)
	for _, v := range w.Value {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	if len(values) == 0 {
		return contact.Field[[]string]{}
	}
	return contact.Field[[]string]{Value: values, Confidence: confidence(w.Confidence)}
}

func confidence(c *float64) float64 {
	if c == nil || *c <= 0 {
		return contact.DefaultConfidence
	}
	return min(*c, 1)
}
