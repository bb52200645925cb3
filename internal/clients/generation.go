package clients

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// Generator is the upstream text-generation provider as seen by the
// orchestrator: one prompt in, one generated text out. Implementations must
// honor ctx cancellation; the orchestrator additionally races every call
// against its own deadline so a hung provider cannot outlive the lock lease.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// systemInstruction keeps the model on task; the per-request prompt carries
// all match data and the output-format contract.
const systemInstruction = "You are a football analytics assistant. Answer in the language of the prompt."

// GeminiGenerator implements Generator on the Gemini API. The genai client
// is constructed once at startup and injected.
type GeminiGenerator struct {
	Client *genai.Client
	Model  string
}

// NewGeminiGenerator binds a generator to an existing client and model name.
func NewGeminiGenerator(client *genai.Client, model string) *GeminiGenerator {
	return &GeminiGenerator{Client: client, Model: model}
}

// Generate sends the prompt and returns the trimmed generated text.
// Provider failures are classified into the package's upstream error
// categories where the response allows it; anything unrecognized is
// propagated as-is.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.Client.Models.GenerateContent(
		ctx,
		g.Model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		},
	)
	if err != nil {
		return "", classifyGenerationError(err)
	}
	return strings.TrimSpace(result.Text()), nil
}

// classifyGenerationError maps provider API errors onto the stable upstream
// taxonomy. 429 responses are a throttle unless the provider message names
// an exhausted quota; 401/403 are credential problems.
func classifyGenerationError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	msg := strings.ToLower(apiErr.Message)
	switch apiErr.Code {
	case 429:
		if strings.Contains(msg, "quota") || strings.Contains(apiErr.Status, "RESOURCE_EXHAUSTED") {
			return ErrQuotaExhausted
		}
		return ErrRateLimited
	case 402:
		return ErrQuotaExhausted
	case 401, 403:
		return ErrInvalidCredentials
	default:
		return err
	}
}
