package llm

import "context"

// Options tune a single generation call. Zero values mean provider defaults.
type Options struct {
	// PreferFast selects the provider's cheaper/faster model where one exists.
	PreferFast  bool
	Temperature float64
	MaxTokens   int
}

// Provider is one upstream text-generation backend.
type Provider interface {
	Name() string
	GenerateContent(ctx context.Context, prompt string, opts Options) (string, error)
	Close() error
}

// StreamingProvider is implemented by providers that can deliver output
// incrementally. The gateway falls back to a whole-result chunk for
// providers that cannot.
type StreamingProvider interface {
	Provider
	GenerateStreamingContent(ctx context.Context, prompt string, onChunk func(chunk string), opts Options) error
}
