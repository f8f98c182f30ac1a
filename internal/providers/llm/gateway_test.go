package llm

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) GenerateContent(context.Context, string, Options) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func (p *stubProvider) Close() error { return nil }

type stubStreamingProvider struct {
	stubProvider
	chunks []string
}

func (p *stubStreamingProvider) GenerateStreamingContent(_ context.Context, _ string, onChunk func(string), _ Options) error {
	p.calls++
	if p.err != nil {
		return p.err
	}
	for _, c := range p.chunks {
		onChunk(c)
	}
	return nil
}

func TestGatewayUsesPrimary(t *testing.T) {
	primary := &stubProvider{name: "a", reply: "from a"}
	secondary := &stubProvider{name: "b", reply: "from b"}
	g := NewGateway(nil, primary, secondary)

	out, err := g.GenerateContent(context.Background(), "prompt", GatewayOptions{})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if out != "from a" {
		t.Fatalf("out = %q, want primary's reply", out)
	}
	if secondary.calls != 0 {
		t.Fatal("secondary should not be called when primary succeeds")
	}
}

func TestGatewayFallsBackOnce(t *testing.T) {
	primary := &stubProvider{name: "a", err: errors.New("a down")}
	secondary := &stubProvider{name: "b", reply: "from b"}
	g := NewGateway(nil, primary, secondary)

	out, err := g.GenerateContent(context.Background(), "prompt", GatewayOptions{})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if out != "from b" {
		t.Fatalf("out = %q, want fallback's reply", out)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("calls = a:%d b:%d, want one each", primary.calls, secondary.calls)
	}
}

func TestGatewayPropagatesLastError(t *testing.T) {
	errB := errors.New("b down")
	primary := &stubProvider{name: "a", err: errors.New("a down")}
	secondary := &stubProvider{name: "b", err: errB}
	g := NewGateway(nil, primary, secondary)

	_, err := g.GenerateContent(context.Background(), "prompt", GatewayOptions{})
	if !errors.Is(err, errB) {
		t.Fatalf("expected the secondary's error, got %v", err)
	}
}

func TestGatewayUnknownProvider(t *testing.T) {
	g := NewGateway(nil, &stubProvider{name: "a"}, nil)

	_, err := g.GenerateContent(context.Background(), "prompt", GatewayOptions{Provider: "nope"})
	var unknown *ErrUnknownProvider
	if !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestGatewayExplicitProviderSelection(t *testing.T) {
	primary := &stubProvider{name: "a", reply: "from a"}
	secondary := &stubProvider{name: "b", reply: "from b"}
	g := NewGateway(nil, primary, secondary)

	out, err := g.GenerateContent(context.Background(), "prompt", GatewayOptions{Provider: "b"})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if out != "from b" {
		t.Fatalf("out = %q, want provider b", out)
	}
}

func TestStreamingDeliversChunks(t *testing.T) {
	primary := &stubStreamingProvider{
		stubProvider: stubProvider{name: "a"},
		chunks:       []string{"hel", "lo"},
	}
	g := NewGateway(nil, primary, nil)

	var got []string
	err := g.GenerateStreamingContent(context.Background(), "prompt", func(c string) { got = append(got, c) }, GatewayOptions{})
	if err != nil {
		t.Fatalf("GenerateStreamingContent: %v", err)
	}
	if len(got) != 2 || got[0] != "hel" || got[1] != "lo" {
		t.Fatalf("chunks = %v", got)
	}
}

func TestStreamingDegradesToSingleChunk(t *testing.T) {
	// non-streaming provider: whole reply arrives as one chunk
	primary := &stubProvider{name: "a", reply: "whole reply"}
	g := NewGateway(nil, primary, nil)

	var got []string
	err := g.GenerateStreamingContent(context.Background(), "prompt", func(c string) { got = append(got, c) }, GatewayOptions{})
	if err != nil {
		t.Fatalf("GenerateStreamingContent: %v", err)
	}
	if len(got) != 1 || got[0] != "whole reply" {
		t.Fatalf("chunks = %v, want one whole-reply chunk", got)
	}
}

func TestStreamingFallsBackToNonStreamingProvider(t *testing.T) {
	primary := &stubStreamingProvider{
		stubProvider: stubProvider{name: "a", err: errors.New("a down")},
	}
	secondary := &stubProvider{name: "b", reply: "from b"}
	g := NewGateway(nil, primary, secondary)

	var got []string
	err := g.GenerateStreamingContent(context.Background(), "prompt", func(c string) { got = append(got, c) }, GatewayOptions{})
	if err != nil {
		t.Fatalf("GenerateStreamingContent: %v", err)
	}
	if len(got) != 1 || got[0] != "from b" {
		t.Fatalf("chunks = %v, want fallback's reply as one chunk", got)
	}
}
