// Package gemini fills in missing partner details with a Gemini model.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"sitediary/internal/config"
	"sitediary/internal/domain"
	"sitediary/internal/parser"
	"sitediary/internal/port"
)

const defaultModel = "gemini-2.5-pro"

// NoInfoMessage is what the model answers when it has nothing to add.
const NoInfoMessage = "no extra information found"

// Generator sends a prompt to a model and returns its text answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Enricher implements port.PartnerEnricher.
type Enricher struct {
	gen     Generator
	model   string
	timeout time.Duration
	closer  func() error
}

// New creates an Enricher backed by the Gemini API.
func New(ctx context.Context, cfg *config.EnrichConfig, opts ...option.ClientOption) (*Enricher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini.New: api key is not set")
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini.New: %w", err)
	}

	m := client.GenerativeModel(model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.2),
		ResponseMIMEType: "application/json",
	}

	e := NewWithGenerator(&modelGenerator{model: m}, model, time.Duration(cfg.TimeoutSecs)*time.Second)
	e.closer = client.Close
	return e, nil
}

// NewWithGenerator creates an Enricher around any Generator.
func NewWithGenerator(gen Generator, model string, timeout time.Duration) *Enricher {
	return &Enricher{gen: gen, model: model, timeout: timeout}
}

// Close releases the underlying client.
func (e *Enricher) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer()
}

func (e *Enricher) Enrich(ctx context.Context, input port.EnrichInput) (*port.EnrichOutput, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	prompt, err := BuildPrompt(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEnrichFailed, err)
	}

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEnrichFailed, err)
	}

	out, err := decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEnrichFailed, err)
	}
	out.ModelUsed = e.model
	return out, nil
}

// BuildPrompt renders the enrichment prompt for input.
func BuildPrompt(input port.EnrichInput) (string, error) {
	known, err := json.Marshal(input.Known)
	if err != nil {
		return "", fmt.Errorf("marshaling known fields: %w", err)
	}
	missing := input.Missing
	if missing == nil {
		missing = []string{}
	}
	missingJSON, err := json.Marshal(missing)
	if err != nil {
		return "", fmt.Errorf("marshaling missing fields: %w", err)
	}

	return `You are an AI assistant that enriches supplier or subcontractor information.
Known fields: ` + string(known) + `
Missing fields: ` + string(missingJSON) + `

Search the public web conceptually (no private data) and return a JSON object
filling as many missing fields as possible:
{
  "company": "...",
  "first_name": "...",
  "last_name": "...",
  "title": "...",
  "email": "...",
  "phone": "...",
  "address": "...",
  "website": "..."
}
Return only JSON. If nothing new found, return {"message": "` + NoInfoMessage + `"}.`, nil
}

func decode(text string) (*port.EnrichOutput, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(parser.ExtractJSON(text)), &raw); err != nil {
		return nil, fmt.Errorf("parsing model output: %w", err)
	}

	out := &port.EnrichOutput{Fields: map[string]string{}}
	for _, key := range port.EnrichFields {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s == "" || s == "..." {
			continue
		}
		out.Fields[key] = s
	}

	if len(out.Fields) == 0 {
		out.Message = NoInfoMessage
		if msg, ok := raw["message"].(string); ok && msg != "" {
			out.Message = msg
		}
	}
	return out, nil
}

type modelGenerator struct {
	model *genai.GenerativeModel
}

func (g *modelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
