package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	app_errors "news-agent/internal/errors"
)

// DefaultClarifaiBaseURL is Clarifai's OpenAI-compatible API root.
const DefaultClarifaiBaseURL = "https://api.clarifai.com/v2/ext/openai/v1"

// StreamChunk is a single fragment of a streamed completion.
type StreamChunk struct {
	Content string
	Done    bool
	Error   string
}

// Provider defines the interface for interacting with a language model.
type Provider interface {
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
	CompleteStream(ctx context.Context, req *CompletionRequest, ch chan<- StreamChunk) error
}

// Message is one role/content pair of a chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the OpenAI-compatible chat completion body.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

type CompletionResponse struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}

// ClarifaiProvider talks to Clarifai through its OpenAI-compatible endpoint.
// The completion call has no client timeout; callers bound it with ctx.
type ClarifaiProvider struct {
	client  *http.Client
	baseURL string
	pat     string
}

func NewClarifaiProvider(baseURL, pat string) *ClarifaiProvider {
	if baseURL == "" {
		baseURL = DefaultClarifaiBaseURL
	}
	return &ClarifaiProvider{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		pat:     pat,
	}
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
}

func (p *ClarifaiProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	body := *req
	body.Stream = false
	resp, err := p.post(ctx, &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read response body: %v", app_errors.ErrUpstream, err)
	}
	var chatResp chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, fmt.Errorf("%w: could not decode response: %s", app_errors.ErrUpstream, string(bodyBytes))
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("%w: completion returned no choices", app_errors.ErrUpstream)
	}
	return &CompletionResponse{
		Model:   chatResp.Model,
		Content: chatResp.Choices[0].Message.Content,
	}, nil
}

// CompleteStream forwards content deltas to ch and closes it. The stream
// must end with `[DONE]` or a finish_reason; a connection closed before
// either is reported as ErrUpstream.
func (p *ClarifaiProvider) CompleteStream(ctx context.Context, req *CompletionRequest, ch chan<- StreamChunk) error {
	defer close(ch)
	body := *req
	body.Stream = true
	resp, err := p.post(ctx, &body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	finished := false
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			finished = true
			break
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return fmt.Errorf("%w: failed to decode stream chunk: %v", app_errors.ErrUpstream, err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if choice.FinishReason != nil && *choice.FinishReason != "" {
			finished = true
		}
		if choice.Delta.Content == "" {
			continue
		}

		select {
		case ch <- StreamChunk{Content: choice.Delta.Content}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: stream read failed: %v", app_errors.ErrUpstream, err)
	}
	if !finished {
		return fmt.Errorf("%w: stream ended before completion", app_errors.ErrUpstream)
	}

	select {
	case ch <- StreamChunk{Done: true}:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Ping sends a tiny completion to check that the PAT and model path work.
func (p *ClarifaiProvider) Ping(ctx context.Context, model string) error {
	resp, err := p.Complete(ctx, &CompletionRequest{
		Model:     model,
		Messages:  []Message{{Role: "user", Content: "Hello, can you respond?"}},
		MaxTokens: 20,
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return fmt.Errorf("%w: connection test returned an empty reply", app_errors.ErrUpstream)
	}
	return nil
}

func (p *ClarifaiProvider) post(ctx context.Context, req *CompletionRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.pat)
	if req.Stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: http request failed: %v", app_errors.ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: api returned non-2xx status %d: %s", app_errors.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}
	return resp, nil
}
