// Package statement extracts transaction records from bank-statement images
// using a multimodal Gemini call constrained by a response schema.
package statement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/himasha0421/FinTracker/internal/domain"
)

// DefaultModelName is the Gemini model used for statement extraction.
const DefaultModelName = "gemini-2.5-pro-exp-03-25"

// fallbackMIMEType is used when the image format cannot be detected from the
// byte signature.
const fallbackMIMEType = "image/png"

const systemInstruction = `You are a expert finance analyzer. You will be given a screen shot of a account statement. Your task is to read the required data preciously. You should response in the given JSON format.

JSON Schema keys:
- description ( concise description maximum 3 words, make this lower case as well )
- amount
- date (format the transaction date in YYYY-MM-DD, use 2025 as default year if couldn't found)
- category
- type
- icon
- accountId (set the value always to 2)

Must Follow Rules:
* Don't provide any explanations.
* Just output the transactions as a list of JSON objects.
* specially disregard the payment with description PAYMENT THANK YOU (they are credit card payments)`

// Reader extracts transactions from a statement image. Implementations always
// return a typed ordered slice, possibly empty; a nil error with an empty
// slice means the model call failed and was masked.
type Reader interface {
	ReadStatement(ctx context.Context, image []byte, customerMessage string) ([]domain.TransactionRecord, error)
}

// GeminiReader is the Reader backed by the Gemini API.
type GeminiReader struct {
	client *genai.Client
	model  string
	log    zerolog.Logger
}

// NewGeminiReader creates a reader with its own API client. The client is
// created once at startup and reused for the process lifetime.
func NewGeminiReader(ctx context.Context, apiKey string, log zerolog.Logger) (*GeminiReader, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiReader{client: client, model: DefaultModelName, log: log}, nil
}

// transactionsSchema constrains the model output to a JSON object with a
// "transactions" array of records with enumerated field values.
func transactionsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"transactions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"description": {Type: genai.TypeString},
						"amount":      {Type: genai.TypeNumber},
						"date":        {Type: genai.TypeString},
						"category":    {Type: genai.TypeString, Enum: domain.TransactionCategories},
						"type":        {Type: genai.TypeString, Enum: domain.TransactionTypes},
						"icon":        {Type: genai.TypeString, Enum: domain.TransactionIcons},
						"accountId":   {Type: genai.TypeString, Enum: []string{domain.DefaultAccountID}},
					},
				},
			},
		},
	}
}

// ReadStatement sends the image and the customer's message to the model and
// decodes the schema-conformant response. A model-call failure is masked with
// an empty result; a malformed response is a real error and propagates.
func (r *GeminiReader) ReadStatement(ctx context.Context, image []byte, customerMessage string) ([]domain.TransactionRecord, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{
					InlineData: &genai.Blob{
						MIMEType: detectImageMIMEType(image),
						Data:     image,
					},
				},
				{Text: customerMessage},
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   transactionsSchema(),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		r.log.Error().Err(err).Msg("Statement extraction call failed, returning empty transactions")
		return []domain.TransactionRecord{}, nil
	}

	return decodeTransactions(resp.Text())
}

// decodeTransactions parses the model's JSON response into records. The model
// is asked for raw JSON but occasionally wraps it in Markdown fences anyway.
func decodeTransactions(raw string) ([]domain.TransactionRecord, error) {
	clean := cleanModelJSON(raw)

	var out struct {
		Transactions []domain.TransactionRecord `json:"transactions"`
	}
	if err := json.Unmarshal([]byte(clean), &out); err != nil {
		return nil, fmt.Errorf("decoding model response: %w\nraw response: %s", err, raw)
	}
	if out.Transactions == nil {
		out.Transactions = []domain.TransactionRecord{}
	}
	return out.Transactions, nil
}

// cleanModelJSON strips Markdown fences and any junk around the top-level
// JSON object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}

// detectImageMIMEType sniffs the image format from the byte signature,
// defaulting to PNG when the content is not a recognizable image.
func detectImageMIMEType(image []byte) string {
	mimeType := http.DetectContentType(image)
	if !strings.HasPrefix(mimeType, "image/") {
		return fallbackMIMEType
	}
	return mimeType
}
