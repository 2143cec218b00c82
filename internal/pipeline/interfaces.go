package pipeline

import (
	"context"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/expense"
)

// TextExtractor provides an interface for OCR text extraction.
// This interface enables mocking and testing of the Vision-backed extractor.
type TextExtractor interface {
	// ExtractText runs text detection over raw image bytes and returns the
	// aggregate text, or an empty string when the image holds none.
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Structurer provides an interface for AI-powered receipt structuring.
// This interface enables mocking and testing of the Gemini-backed agent.
type Structurer interface {
	// Structure sends receipt text to an AI model and returns the parsed
	// expense record.
	Structure(ctx context.Context, text string) (*expense.Record, error)
}
