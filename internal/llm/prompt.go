package llm

import "google.golang.org/genai"

// systemPrompt instructs the model how to read raw receipt OCR text. The
// response shape itself is enforced separately via the JSON response schema.
const systemPrompt = "You are an expert receipt-parsing AI. Your task is to extract structured data " +
	"from the raw OCR text of a receipt and format it as a JSON object matching the expense schema.\n\n" +
	"Rules and Heuristics:\n" +
	"1. \"amount\": Find the final total amount. Look for keywords like \"Total\", \"BIL-TOT\", " +
	"or the largest monetary value near the bottom.\n" +
	"2. \"date\": Find the date. If a time is present, combine them. " +
	"Format the output as \"YYYY-MM-DDTHH:MM:SS\".\n" +
	"3. \"paymentMethod\": Look for \"Cash\", \"Credit Card\", \"UPI\", \"Card\". If not found, set to null.\n" +
	"4. \"category\" & \"subcategory\": Infer these from the merchant's name " +
	"(e.g., \"Biryani Mahal\" -> category: \"Food\", subcategory: \"Dining\").\n" +
	"5. \"description\": Create a concise summary including the merchant's name and the first few items.\n" +
	"6. \"companions\": This is almost never on a receipt. Leave as an empty list [] " +
	"unless specific names are clearly mentioned.\n"

// expenseSchema constrains the model response to the expense record shape.
// Only amount and date are required; everything else has a schema default.
func expenseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"amount": {
				Type:        genai.TypeNumber,
				Description: "The total amount of the expense",
			},
			"date": {
				Type:        genai.TypeString,
				Description: "The date of the expense in YYYY-MM-DDTHH:MM:SS format",
			},
			"companions": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of companions, if any",
			},
			"description": {
				Type:        genai.TypeString,
				Description: "A brief description of the expense",
			},
			"category": {
				Type:        genai.TypeString,
				Description: "The category of the expense",
			},
			"subcategory": {
				Type:        genai.TypeString,
				Description: "The sub-category of the expense",
			},
			"paymentMethod": {
				Type:        genai.TypeString,
				Nullable:    genai.Ptr(true),
				Description: "The payment method used",
			},
		},
		Required: []string{"amount", "date"},
	}
}
