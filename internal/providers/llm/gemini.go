package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

// Gemini is the slower/higher-quality path used for one-shot scoring calls.
// It does not stream; the gateway degrades to a single whole-result chunk.
type Gemini struct {
	client *genai.Client
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Gemini{client: client}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Close() error { return g.client.Close() }

func (g *Gemini) GenerateContent(ctx context.Context, prompt string, opts Options) (string, error) {
	model := g.client.GenerativeModel(geminiModel)

	if opts.Temperature != 0 {
		t := float32(opts.Temperature)
		model.Temperature = &t
	}
	if opts.MaxTokens != 0 {
		mt := int32(opts.MaxTokens)
		model.MaxOutputTokens = &mt
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("gemini: no text content in response")
	}
	return sb.String(), nil
}
