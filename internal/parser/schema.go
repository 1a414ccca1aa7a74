package parser

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// contactSchemaJSON describes the JSON every AI provider must return.
// Values may be null; unknown keys are ignored.
const contactSchemaJSON = `{
  "$defs": {
    "text": {
      "type": "object",
      "properties": {
        "value": {"type": ["string", "null"]},
        "confidence": {"type": ["number", "null"]}
      }
    },
    "list": {
      "type": "object",
      "properties": {
        "value": {"type": ["array", "null"], "items": {"type": "string"}},
        "confidence": {"type": ["number", "null"]}
      }
    },
    "person": {
      "type": "object",
      "properties": {
        "company": {"$ref": "#/$defs/text"},
        "first_name": {"$ref": "#/$defs/text"},
        "last_name": {"$ref": "#/$defs/text"},
        "title": {"$ref": "#/$defs/text"},
        "email": {"$ref": "#/$defs/text"},
        "phones": {"$ref": "#/$defs/list"},
        "address": {"$ref": "#/$defs/text"},
        "website": {"$ref": "#/$defs/text"}
      }
    }
  },
  "type": "object",
  "minProperties": 1,
  "allOf": [{"$ref": "#/$defs/person"}],
  "properties": {
    "lang": {"type": ["string", "null"]},
    "alternate_contacts": {
      "type": ["array", "null"],
      "items": {"$ref": "#/$defs/person"}
    }
  }
}`

var contactSchema = jsonschema.MustCompileString("contact.schema.json", contactSchemaJSON)

// ValidateContactJSON checks a decoded JSON document against the contact schema.
func ValidateContactJSON(doc any) error {
	return contactSchema.Validate(doc)
}
