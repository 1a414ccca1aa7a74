package parser

// BuildContactPrompt returns the extraction prompt for OCR text of a business card.
func BuildContactPrompt(text string) string {
	return `You are a contact extraction assistant for a Greek construction company. The text below was read by OCR from one business card. It may be in Greek, English or both, and OCR may have split or merged lines.

Extract the contact into the following JSON structure:
{
  "lang": "el" | "en" | "mixed",
  "company":    {"value": "", "confidence": 0.0},
  "first_name": {"value": "", "confidence": 0.0},
  "last_name":  {"value": "", "confidence": 0.0},
  "title":      {"value": "", "confidence": 0.0},
  "email":      {"value": "", "confidence": 0.0},
  "phones":     {"value": [], "confidence": 0.0},
  "address":    {"value": "", "confidence": 0.0},
  "website":    {"value": "", "confidence": 0.0},
  "alternate_contacts": []
}

RULES:
- Copy values exactly as they appear in the text. Do not translate or transliterate.
- Keep every phone number, in the order it appears, without duplicates.
- If the card names more than one person, put one object per person in "alternate_contacts", each with the structure above and the shared company details repeated.
- confidence is a number between 0.0 and 1.0. Use an empty value and 0.0 for anything not present.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation.

OCR TEXT:
` + text
}
