package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sitediary/internal/config"
	"sitediary/internal/contact"
	"sitediary/internal/domain"
	"sitediary/internal/ocr"
	"sitediary/internal/port"
)

// ScanResult is a parsed business card together with a partner draft.
type ScanResult struct {
	Text        string                 `json:"text"`
	OCRProvider string                 `json:"ocr_provider,omitempty"`
	Contact     *contact.ParsedContact `json:"contact"`
	Draft       PartnerInput           `json:"draft"`
	ModelUsed   string                 `json:"model_used"`
}

// ScanService turns business-card images or their text into contacts.
type ScanService interface {
	ScanCard(ctx context.Context, image []byte) (*ScanResult, error)
	ParseText(ctx context.Context, text string) (*ScanResult, error)
}

type scanService struct {
	recognizer port.TextRecognizer
	parser     port.ContactParser
	cfg        *config.OCRConfig
}

// NewScanService creates a ScanService. recognizer may be nil when no OCR
// provider is configured; ScanCard then fails with ErrRecognitionFailed.
func NewScanService(recognizer port.TextRecognizer, parser port.ContactParser, cfg *config.OCRConfig) ScanService {
	return &scanService{recognizer: recognizer, parser: parser, cfg: cfg}
}

func (s *scanService) ScanCard(ctx context.Context, image []byte) (*ScanResult, error) {
	if len(image) == 0 {
		return nil, domain.ErrNoPhotos
	}
	if limit := int64(s.cfg.MaxImageSizeMB) * 1024 * 1024; limit > 0 && int64(len(image)) > limit {
		return nil, domain.ErrFileTooLarge
	}
	if s.recognizer == nil {
		return nil, fmt.Errorf("%w: no OCR provider configured", domain.ErrRecognitionFailed)
	}

	prepared, contentType, err := ocr.Preprocess(image, s.cfg.MaxDimension)
	if err != nil {
		return nil, err
	}

	out, err := s.recognizer.Recognize(ctx, port.RecognizeInput{Image: prepared, ContentType: contentType})
	if err != nil {
		zap.L().Error("scanService.ScanCard: recognition failed", zap.Error(err))
		return nil, err
	}
	if strings.TrimSpace(out.Text) == "" {
		return nil, domain.ErrNoTextFound
	}

	result, err := s.ParseText(ctx, out.Text)
	if err != nil {
		return nil, err
	}
	result.OCRProvider = out.Provider
	return result, nil
}

func (s *scanService) ParseText(ctx context.Context, text string) (*ScanResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoTextFound
	}

	out, err := s.parser.Parse(ctx, port.ParseInput{Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrContactParseFailed, err)
	}

	zap.L().Info("scanService.ParseText: parsed",
		zap.String("model", out.ModelUsed),
		zap.String("language", string(out.Contact.Language)),
		zap.Int("alternates", len(out.Contact.AlternateContacts)))

	return &ScanResult{
		Text:      text,
		Contact:   out.Contact,
		Draft:     DraftPartner(out.Contact),
		ModelUsed: out.ModelUsed,
	}, nil
}

// DraftPartner maps a parsed contact onto partner fields. Greek mobile
// numbers go to PhoneCell and the first other number to PhoneBusiness.
func DraftPartner(c *contact.ParsedContact) PartnerInput {
	draft := PartnerInput{}
	if c == nil {
		return draft
	}
	field := func(f contact.Field[string]) *string {
		if !f.Present() {
			return nil
		}
		return cleanString(f.Value)
	}

	draft.Company = c.Company.Value
	draft.ContactFirstName = field(c.FirstName)
	draft.ContactLastName = field(c.LastName)
	draft.Email = field(c.Email)
	draft.Address = field(c.Address)
	for _, phone := range c.Phones.Value {
		if IsGreekMobile(phone) {
			if draft.PhoneCell == nil {
				draft.PhoneCell = cleanString(phone)
			}
			continue
		}
		if draft.PhoneBusiness == nil {
			draft.PhoneBusiness = cleanString(phone)
		}
	}
	if draft.Address != nil {
		draft.GoogleMapsURL = MapsURL(*draft.Address)
	}
	return draft
}

// IsGreekMobile reports whether phone is a Greek mobile number (69xxxxxxxx,
// optionally prefixed with 30, +30 or 0030).
func IsGreekMobile(phone string) bool {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	for _, prefix := range []string{"0030", "30"} {
		if len(digits) == 10+len(prefix) && strings.HasPrefix(digits, prefix) {
			digits = digits[len(prefix):]
			break
		}
	}
	return len(digits) == 10 && strings.HasPrefix(digits, "69")
}
