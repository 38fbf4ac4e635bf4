// Package gemini reads statement tables with a Gemini model.
//
// It is an alternative to the geometric extraction of package pdftable for
// statements whose layout defeats it: the model is given the PDF and asked
// for the physical lines of the transaction table, which then go through the
// same row reconstruction.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rivsoncs/nova2k"
	"github.com/rivsoncs/nova2k/pdftable"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("empty response from model")

const instruction = `You read the transaction table of NovaDAX account statements.

Output every physical line of the table, on every page, in reading order, as
a STRICT JSON array of arrays of 5 strings: Data, Tipo, Moeda, Valor, Status.

Rules:
- Copy the text of each cell verbatim: keep accents, signs, separators and
  annotations like "(≈R$ 10,00)".
- A transaction broken over several lines is output as several arrays, the
  cells of the continuation lines that are empty are "".
- Include the table header lines.
- Do not output anything that is not in the table.
- Return ONLY raw JSON, no Markdown, no code fences.`

// generateFunc is the signature of genai.Models.GenerateContent.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Extractor implements nova2k.TableExtractor with a Gemini model.
type Extractor struct {
	Model    string
	generate generateFunc
}

// NewClient returns a Gemini API client. An empty apiKey lets the client use
// the GEMINI_API_KEY or GOOGLE_API_KEY environment variables.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create Gemini client: %w", err)
	}
	return client, nil
}

// New returns an Extractor asking model through client.
func New(client *genai.Client, model string) *Extractor {
	if model == "" {
		model = DefaultModel
	}
	return &Extractor{Model: model, generate: client.Models.GenerateContent}
}

// Extract implements nova2k.TableExtractor. All lines are returned as a
// single page.
func (e *Extractor) Extract(ctx context.Context, path string) ([]nova2k.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.ExtractBytes(ctx, data)
}

// ExtractBytes is Extract for an in-memory PDF.
func (e *Extractor) ExtractBytes(ctx context.Context, pdfBytes []byte) ([]nova2k.Page, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: "Extract the transaction table of this statement."},
				{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: pdfBytes}},
			},
		},
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
	}

	resp, err := e.generate(ctx, e.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	raw := resp.Text()
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	pages, err := pdftable.DecodeDump(strings.NewReader(cleanModelJSON(raw)), "$")
	if err != nil {
		return nil, fmt.Errorf("unexpected model response: %w", err)
	}
	return pages, nil
}

// cleanModelJSON strips the Markdown fences and the text models sometimes
// put around the JSON array.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end > start {
			s = s[start : end+1]
		}
	}
	return s
}
