package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Kshitij9438/OCR-DATA-PARSER/internal/expense"
)

// cleanModelJSON strips Markdown fences and surrounding prose the model may
// emit despite the JSON response mode.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			// Single-line weirdness; just return as-is.
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there's still junk around the JSON object,
	// try to keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = s[start : end+1]
			s = strings.TrimSpace(s)
		}
	}

	return s
}

// decodeRecord parses the model output into an expense record, enforces the
// required fields, and applies the schema defaults.
func decodeRecord(raw string) (*expense.Record, error) {
	clean := cleanModelJSON(raw)

	var probe struct {
		Amount *float64 `json:"amount"`
		Date   *string  `json:"date"`
	}
	if err := json.Unmarshal([]byte(clean), &probe); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}
	if probe.Amount == nil {
		return nil, fmt.Errorf("model output missing required field amount")
	}
	if probe.Date == nil {
		return nil, fmt.Errorf("model output missing required field date")
	}

	var record expense.Record
	if err := json.Unmarshal([]byte(clean), &record); err != nil {
		return nil, fmt.Errorf("unmarshal model output: %w", err)
	}

	record.Normalize()
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return &record, nil
}
