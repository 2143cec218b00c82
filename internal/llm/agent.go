package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/expense"
)

// StructuringAgent turns raw receipt text into an expense record by calling
// Gemini with a constrained JSON response schema.
type StructuringAgent struct {
	cfg *config.Config
	log zerolog.Logger

	// generate is swapped out in tests.
	generate func(ctx context.Context, text string) (string, error)
}

// NewStructuringAgent creates a StructuringAgent backed by the configured
// Gemini model.
func NewStructuringAgent(cfg *config.Config, log zerolog.Logger) *StructuringAgent {
	a := &StructuringAgent{cfg: cfg, log: log}
	a.generate = a.generateContent
	return a
}

func (a *StructuringAgent) generateContent(ctx context.Context, text string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  a.cfg.GoogleAPIKey,
		Backend: genai.BackendGeminiAPI,
		// API version v1 is what docs use for current Gemini models.
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: text}},
		},
	}
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   expenseSchema(),
	}

	resp, err := client.Models.GenerateContent(ctx, a.cfg.Model, contents, genConfig)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// Structure sends the OCR text to the model and decodes the reply into a
// normalized expense record.
func (a *StructuringAgent) Structure(ctx context.Context, text string) (*expense.Record, error) {
	a.log.Debug().
		Str("model", a.cfg.Model).
		Int("text_length", len(text)).
		Msg("sending receipt text to model")

	raw, err := a.generate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuringFailed, err)
	}
	if raw == "" {
		return nil, fmt.Errorf("%w: empty model response", ErrStructuringFailed)
	}

	record, err := decodeRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStructuringFailed, err)
	}

	a.log.Debug().
		Float64("amount", record.Amount).
		Str("category", record.Category).
		Msg("structuring complete")
	return record, nil
}
