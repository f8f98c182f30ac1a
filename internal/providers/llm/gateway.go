package llm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrUnknownProvider is returned when a caller requests a provider name that
// is not in the registry.
type ErrUnknownProvider struct {
	Name string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown AI provider: %s", e.Name)
}

// GatewayOptions extend Options with an explicit provider override.
type GatewayOptions struct {
	Options
	// Provider forces a specific registry entry; empty means the primary.
	Provider string
}

// Gateway routes generation requests between providers with a single
// immediate fallback on failure. No retries, no backoff, no circuit breaker:
// the two providers differ in latency/cost, and the gateway exists only to
// decouple call sites from that choice and to survive a single outage.
type Gateway struct {
	providers map[string]Provider
	primary   string
	fallback  string
	log       *logrus.Logger
}

func NewGateway(log *logrus.Logger, primary, fallback Provider) *Gateway {
	g := &Gateway{
		providers: map[string]Provider{},
		log:       log,
	}
	if primary != nil {
		g.providers[primary.Name()] = primary
		g.primary = primary.Name()
	}
	if fallback != nil {
		g.providers[fallback.Name()] = fallback
		g.fallback = fallback.Name()
	}
	return g
}

func (g *Gateway) resolve(name string) (Provider, error) {
	if name == "" {
		name = g.primary
	}
	p, ok := g.providers[name]
	if !ok {
		return nil, &ErrUnknownProvider{Name: name}
	}
	return p, nil
}

// GenerateContent calls the selected provider; on any error it makes one
// attempt against the fallback with the same prompt and options, then
// propagates the last error.
func (g *Gateway) GenerateContent(ctx context.Context, prompt string, opts GatewayOptions) (string, error) {
	p, err := g.resolve(opts.Provider)
	if err != nil {
		return "", err
	}

	out, err := p.GenerateContent(ctx, prompt, opts.Options)
	if err == nil {
		return out, nil
	}

	fb, ok := g.providers[g.fallback]
	if !ok || fb.Name() == p.Name() {
		return "", err
	}

	if g.log != nil {
		g.log.WithFields(logrus.Fields{
			"provider": p.Name(),
			"fallback": fb.Name(),
		}).WithError(err).Warn("primary AI provider failed, falling back")
	}
	return fb.GenerateContent(ctx, prompt, opts.Options)
}

// GenerateStreamingContent is the streaming counterpart with the same
// one-shot fallback policy. A provider without incremental delivery gets a
// full non-streaming call whose result is delivered as one chunk.
func (g *Gateway) GenerateStreamingContent(ctx context.Context, prompt string, onChunk func(chunk string), opts GatewayOptions) error {
	p, err := g.resolve(opts.Provider)
	if err != nil {
		return err
	}

	sp, ok := p.(StreamingProvider)
	if !ok {
		out, err := g.GenerateContent(ctx, prompt, opts)
		if err != nil {
			return err
		}
		onChunk(out)
		return nil
	}

	if err := sp.GenerateStreamingContent(ctx, prompt, onChunk, opts.Options); err == nil {
		return nil
	} else if g.log != nil {
		g.log.WithField("provider", p.Name()).WithError(err).Warn("streaming failed, trying fallback")
	}

	if fb, ok := g.providers[g.fallback]; ok && fb.Name() != p.Name() {
		if sfb, ok := fb.(StreamingProvider); ok {
			return sfb.GenerateStreamingContent(ctx, prompt, onChunk, opts.Options)
		}
		out, err := fb.GenerateContent(ctx, prompt, opts.Options)
		if err != nil {
			return err
		}
		onChunk(out)
		return nil
	}

	out, err := p.GenerateContent(ctx, prompt, opts.Options)
	if err != nil {
		return err
	}
	onChunk(out)
	return nil
}

// Close releases every registered provider.
func (g *Gateway) Close() error {
	var first error
	for _, p := range g.providers {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
