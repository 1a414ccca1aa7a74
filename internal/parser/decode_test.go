package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitediary/internal/contact"
	"sitediary/internal/parser"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading prose", "Here is the JSON:\n{\"a\":1}\nHope it helps", `{"a":1}`},
		{"no object", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.ExtractJSON(tt.raw))
		})
	}
}

func TestDecodeContact_Valid(t *testing.T) {
	raw := "```json\n" + `{
		"lang": "el",
		"company": {"value": " ΑΛΦΑ ΑΕ ", "confidence": 1.7},
		"first_name": {"value": "Γιώργος", "confidence": 0.8},
		"last_name": {"value": "", "confidence": 0.9},
		"title": {"value": null, "confidence": null},
		"email": {"value": "g@alfa.gr"},
		"phones": {"value": ["210 1234567", "210 1234567", " "], "confidence": 0.7}
	}` + "\n```"

	c, err := parser.DecodeContact(raw, "ocr text")
	require.NoError(t, err)

	assert.Equal(t, "ocr text", c.RawText)
	assert.Equal(t, contact.LanguageGreek, c.Language)
	assert.Equal(t, "ΑΛΦΑ ΑΕ", c.Company.Value)
	assert.Equal(t, 1.0, c.Company.Confidence)
	assert.Equal(t, 0.8, c.FirstName.Confidence)
	assert.False(t, c.LastName.Present())
	assert.Zero(t, c.LastName.Confidence)
	assert.False(t, c.Title.Present())
	assert.Equal(t, contact.DefaultConfidence, c.Email.Confidence)
	assert.Equal(t, []string{"210 1234567"}, c.Phones.Value)
	assert.False(t, c.Website.Present())
	assert.Empty(t, c.AlternateContacts)
}

func TestDecodeContact_UnknownLanguageIsDetected(t *testing.T) {
	c, err := parser.DecodeContact(`{"lang":"de","company":{"value":"ACME"}}`, "ACME Construction")
	require.NoError(t, err)

	assert.Equal(t, contact.LanguageEnglish, c.Language)
}

func TestDecodeContact_Alternates(t *testing.T) {
	raw := `{
		"company": {"value": "ACME", "confidence": 0.9},
		"first_name": {"value": "John", "confidence": 0.9},
		"alternate_contacts": [
			{"company": {"value": "ACME"}, "first_name": {"value": "John"}},
			{"company": {"value": "ACME"}, "first_name": {"value": "Mary"}}
		]
	}`

	c, err := parser.DecodeContact(raw, "text")
	require.NoError(t, err)

	require.Len(t, c.AlternateContacts, 2)
	assert.Equal(t, "Mary", c.AlternateContacts[1].FirstName.Value)
	assert.Equal(t, c.Language, c.AlternateContacts[1].Language)
}

func TestDecodeContact_SingleAlternateDropped(t *testing.T) {
	raw := `{"first_name": {"value": "John"}, "alternate_contacts": [{"first_name": {"value": "John"}}]}`

	c, err := parser.DecodeContact(raw, "text")
	require.NoError(t, err)

	assert.Empty(t, c.AlternateContacts)
}

func TestDecodeContact_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I could not read the card"},
		{"wrong type", `{"company": "ACME"}`},
		{"phones not a list", `{"phones": {"value": "210"}}`},
		{"empty object", `{}`},
		{"array", `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.DecodeContact(tt.raw, "text")
			require.Error(t, err)
			assert.True(t, errors.Is(err, parser.ErrInvalidOutput))
		})
	}
}
