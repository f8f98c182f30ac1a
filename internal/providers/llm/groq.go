package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	groqBaseURL   = "https://api.groq.com/openai/v1"
	groqModel     = "llama-3.3-70b-versatile"
	groqFastModel = "llama-3.1-8b-instant"

	groqSystemPrompt = "You are a helpful AI assistant. Provide clear, concise, and helpful responses."
)

// Groq speaks the OpenAI-compatible chat completions API, including SSE
// streaming. It is the fast/cheap path for live conversational turns.
type Groq struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewGroq(apiKey string) *Groq {
	return &Groq{
		apiKey:  apiKey,
		baseURL: groqBaseURL,
		http:    &http.Client{Timeout: 90 * time.Second},
	}
}

func (g *Groq) Name() string { return "groq" }

func (g *Groq) Close() error { return nil }

func (g *Groq) model(preferFast bool) string {
	if preferFast {
		return groqFastModel
	}
	return groqModel
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream,omitempty"`
}

type groqChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

type groqResponse struct {
	Choices []groqChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (g *Groq) newRequest(ctx context.Context, prompt string, opts Options, stream bool) (*http.Request, error) {
	temp := opts.Temperature
	if temp == 0 {
		temp = 0.7
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 && !stream {
		maxTokens = 1024
	}

	body := groqRequest{
		Model: g.model(opts.PreferFast),
		Messages: []groqMessage{
			{Role: "system", Content: groqSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: temp,
		MaxTokens:   maxTokens,
		Stream:      stream,
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	return req, nil
}

func (g *Groq) GenerateContent(ctx context.Context, prompt string, opts Options) (string, error) {
	req, err := g.newRequest(ctx, prompt, opts, false)
	if err != nil {
		return "", err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var out groqResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("groq: unexpected response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return "", fmt.Errorf("groq: %s (%s)", out.Error.Message, out.Error.Type)
		}
		return "", fmt.Errorf("groq: status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("groq: empty choices in response")
	}
	return out.Choices[0].Message.Content, nil
}

func (g *Groq) GenerateStreamingContent(ctx context.Context, prompt string, onChunk func(chunk string), opts Options) error {
	req, err := g.newRequest(ctx, prompt, opts, true)
	if err != nil {
		return err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("groq stream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
		return fmt.Errorf("groq: stream status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	// OpenAI-style SSE: "data: {json}" lines, terminated by "data: [DONE]".
	br := bufio.NewReader(resp.Body)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			return nil
		}

		var chunk groqResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			onChunk(chunk.Choices[0].Delta.Content)
		}
	}
}
