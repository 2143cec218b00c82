package expense

import (
	"fmt"
	"strings"
	"time"
)

// DefaultCategory is assigned when no category can be inferred.
const DefaultCategory = "Other"

// CanonicalDateLayout is the preferred form for Record.Date.
const CanonicalDateLayout = "2006-01-02T15:04:05"

// Record is the structured expense extracted from one receipt. It is a
// pure output value: built once by the structuring agent, never mutated
// afterwards, and owned by the caller that receives it. The JSON field
// names are the external contract and must not change.
type Record struct {
	Amount float64 `json:"amount"`

	// Date holds the canonical "YYYY-MM-DDTHH:MM:SS" form when the
	// receipt's date could be parsed, otherwise the raw text as the
	// model reported it.
	Date string `json:"date"`

	// Companions is rarely populated; it is always a slice, never null.
	Companions []string `json:"companions"`

	Description string `json:"description"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`

	// PaymentMethod is nil when the receipt gives no hint, which
	// serializes as an explicit JSON null.
	PaymentMethod *string `json:"paymentMethod"`
}

// dateLayouts are the receipt date forms we recognize, tried in order.
var dateLayouts = []string{
	CanonicalDateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"01/02/2006",
}

// NormalizeDate converts a recognized date string to the canonical
// layout. Date-only inputs gain a midnight time component. Unrecognized
// inputs are returned unchanged; the field tolerates free-form text.
func NormalizeDate(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(CanonicalDateLayout)
		}
	}
	return s
}

// Normalize applies the schema defaults in place: a nil companions list
// becomes an empty slice, a blank category falls back to DefaultCategory,
// and the date is canonicalized when possible. It is idempotent and must
// run before a record is handed to a caller.
func (r *Record) Normalize() {
	if r.Companions == nil {
		r.Companions = []string{}
	}
	if strings.TrimSpace(r.Category) == "" {
		r.Category = DefaultCategory
	}
	r.Date = NormalizeDate(r.Date)
}

// Validate reports whether the record satisfies the schema constraints
// that have no sensible default.
func (r *Record) Validate() error {
	if r.Amount < 0 {
		return fmt.Errorf("amount must not be negative, got %v", r.Amount)
	}
	if strings.TrimSpace(r.Date) == "" {
		return fmt.Errorf("date is required")
	}
	return nil
}
