package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/config"
)

func newTestAgent(generate func(ctx context.Context, text string) (string, error)) *StructuringAgent {
	cfg := &config.Config{GoogleAPIKey: "test-key", Model: config.DefaultModel}
	a := NewStructuringAgent(cfg, zerolog.Nop())
	a.generate = generate
	return a
}

func TestStructure_Success(t *testing.T) {
	var gotText string
	a := newTestAgent(func(ctx context.Context, text string) (string, error) {
		gotText = text
		return `{
			"amount": 8.00,
			"date": "02-11-2023",
			"description": "Cafe Mocha, coffee",
			"category": "Food",
			"subcategory": "Cafes",
			"paymentMethod": "Cash"
		}`, nil
	})

	ocrText := "CAFE MOCHA\nCoffee      8.00\nTotal: 8.00\n02-11-2023\nPaid: Cash"
	record, err := a.Structure(context.Background(), ocrText)
	if err != nil {
		t.Fatalf("Expected record, got error: %v", err)
	}

	if gotText != ocrText {
		t.Errorf("Expected OCR text to be passed to the model, got %q", gotText)
	}
	if record.Amount != 8.00 {
		t.Errorf("Expected amount 8.00, got %v", record.Amount)
	}
	if record.Date != "2023-11-02T00:00:00" {
		t.Errorf("Expected normalized date, got %q", record.Date)
	}
	if record.PaymentMethod == nil || *record.PaymentMethod != "Cash" {
		t.Errorf("Expected payment method Cash, got %v", record.PaymentMethod)
	}
	if record.Category != "Food" {
		t.Errorf("Expected category Food, got %q", record.Category)
	}
	if record.Companions == nil || len(record.Companions) != 0 {
		t.Errorf("Expected empty companions list, got %v", record.Companions)
	}
}

func TestStructure_GenerateError(t *testing.T) {
	a := newTestAgent(func(ctx context.Context, text string) (string, error) {
		return "", errors.New("quota exceeded")
	})

	_, err := a.Structure(context.Background(), "some receipt text")
	if !errors.Is(err, ErrStructuringFailed) {
		t.Fatalf("Expected ErrStructuringFailed, got %v", err)
	}
}

func TestStructure_EmptyResponse(t *testing.T) {
	a := newTestAgent(func(ctx context.Context, text string) (string, error) {
		return "", nil
	})

	_, err := a.Structure(context.Background(), "some receipt text")
	if !errors.Is(err, ErrStructuringFailed) {
		t.Fatalf("Expected ErrStructuringFailed, got %v", err)
	}
}

func TestStructure_InvalidModelOutput(t *testing.T) {
	a := newTestAgent(func(ctx context.Context, text string) (string, error) {
		return "I could not find any expense data", nil
	})

	_, err := a.Structure(context.Background(), "some receipt text")
	if !errors.Is(err, ErrStructuringFailed) {
		t.Fatalf("Expected ErrStructuringFailed, got %v", err)
	}
}
