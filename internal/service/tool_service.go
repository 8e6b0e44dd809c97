package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	app_errors "news-agent/internal/errors"
	"news-agent/internal/model"
	"news-agent/internal/search"
	"news-agent/internal/validation"
)

// Tool names exposed by ToolService.
const (
	ToolGoogleSearch     = "google_search"
	ToolGoogleNewsSearch = "google_news_search"
	ToolNewsSummarize    = "news_summarize"
)

// ToolInfo describes one tool. Parameters is a JSON schema object.
type ToolInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolCatalog is the full tool listing served to clients.
type ToolCatalog struct {
	Tools        []ToolInfo `json:"tools"`
	Version      string     `json:"version"`
	Description  string     `json:"description"`
	Capabilities []string   `json:"capabilities"`
}

// ToolResult is the markdown output of one tool call.
type ToolResult struct {
	Tool   string `json:"tool"`
	Output string `json:"output"`
}

// NewsSearchParams are the parameters of google_news_search.
type NewsSearchParams struct {
	Query      string `json:"query" validate:"required,min=1,max=500"`
	NumResults int    `json:"num_results" validate:"omitempty,min=1,max=20"`
}

// Article is one input record of news_summarize. Content wins over Snippet.
type Article struct {
	Title   string `json:"title" validate:"max=500"`
	Content string `json:"content"`
	Snippet string `json:"snippet"`
	Source  string `json:"source" validate:"max=200"`
}

// SummarizeParams are the parameters of news_summarize.
type SummarizeParams struct {
	Articles []Article `json:"articles" validate:"required,min=1,max=50,dive"`
	Focus    string    `json:"focus" validate:"max=100"`
}

type tool struct {
	info ToolInfo
	run  func(ctx context.Context, raw json.RawMessage) (string, error)
}

// ToolService exposes the search tools and the summarizer under stable
// names with JSON-schema parameters, for clients that drive them directly.
type ToolService struct {
	search *SearchService
	tools  []tool
}

func NewToolService(searchService *SearchService) *ToolService {
	s := &ToolService{search: searchService}
	s.tools = []tool{
		{info: googleSearchInfo, run: s.googleSearch},
		{info: googleNewsSearchInfo, run: s.googleNewsSearch},
		{info: newsSummarizeInfo, run: s.newsSummarize},
	}
	return s
}

// List returns every tool with its parameter schema.
func (s *ToolService) List() *ToolCatalog {
	infos := make([]ToolInfo, 0, len(s.tools))
	names := make([]string, 0, len(s.tools))
	for _, t := range s.tools {
		infos = append(infos, t.info)
		names = append(names, t.info.Name)
	}
	return &ToolCatalog{
		Tools:        infos,
		Version:      "1.0.0",
		Description:  "News Agent tools with Serper API integration",
		Capabilities: names,
	}
}

// Execute runs the named tool. params is the tool's JSON argument object;
// empty params count as {}.
func (s *ToolService) Execute(ctx context.Context, name string, params json.RawMessage) (*ToolResult, error) {
	for _, t := range s.tools {
		if t.info.Name != name {
			continue
		}
		if len(bytes.TrimSpace(params)) == 0 {
			params = json.RawMessage("{}")
		}
		output, err := t.run(ctx, params)
		if err != nil {
			slog.Warn("Tool execution failed", "tool", name, "error", err)
			return nil, err
		}
		return &ToolResult{Tool: name, Output: output}, nil
	}
	return nil, fmt.Errorf("%w: unknown tool %q", app_errors.ErrNotFound, name)
}

func (s *ToolService) googleSearch(ctx context.Context, raw json.RawMessage) (string, error) {
	var p SearchRequest
	if err := decodeParams(raw, &p); err != nil {
		return "", err
	}
	resp, err := s.search.Search(ctx, &p)
	if err != nil {
		return "", err
	}
	return resp.Markdown, nil
}

func (s *ToolService) googleNewsSearch(ctx context.Context, raw json.RawMessage) (string, error) {
	var p NewsSearchParams
	if err := decodeParams(raw, &p); err != nil {
		return "", err
	}
	resp, err := s.search.SearchNews(ctx, &SearchRequest{Query: p.Query, NumResults: p.NumResults})
	if err != nil {
		return "", err
	}
	return resp.Markdown, nil
}

func (s *ToolService) newsSummarize(_ context.Context, raw json.RawMessage) (string, error) {
	var p SummarizeParams
	if err := decodeParams(raw, &p); err != nil {
		return "", err
	}
	articles := make([]model.SearchResult, 0, len(p.Articles))
	for _, a := range p.Articles {
		snippet := a.Content
		if snippet == "" {
			snippet = a.Snippet
		}
		articles = append(articles, model.SearchResult{Title: a.Title, Snippet: snippet, Source: a.Source})
	}
	return search.Summarize(articles, p.Focus), nil
}

// decodeParams rejects unknown fields so a misspelled parameter is reported
// instead of silently ignored.
func decodeParams(raw json.RawMessage, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid tool parameters: %v", app_errors.ErrValidation, err)
	}
	return validation.Struct(dst)
}

var googleSearchInfo = ToolInfo{
	Name:        ToolGoogleSearch,
	Description: "Search Google using Serper API for web results, news, and information",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The search query to execute",
			},
			"num_results": map[string]any{
				"type":        "integer",
				"description": "Number of results to return (default: 10)",
				"default":     search.DefaultResults,
				"minimum":     1,
				"maximum":     20,
			},
			"location": map[string]any{
				"type":        "string",
				"description": "Geographic location for search (optional, e.g., 'us', 'uk', 'ca')",
			},
		},
		"required": []string{"query"},
	},
}

var googleNewsSearchInfo = ToolInfo{
	Name:        ToolGoogleNewsSearch,
	Description: "Search Google News using Serper API for latest news articles and current events",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "The news search query to execute",
			},
			"num_results": map[string]any{
				"type":        "integer",
				"description": "Number of news results to return (default: 10)",
				"default":     search.DefaultResults,
				"minimum":     1,
				"maximum":     20,
			},
		},
		"required": []string{"query"},
	},
}

var newsSummarizeInfo = ToolInfo{
	Name:        ToolNewsSummarize,
	Description: "Summarize multiple news articles into key points",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"articles": map[string]any{
				"type":        "array",
				"description": "Array of news articles to summarize",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":   map[string]any{"type": "string"},
						"content": map[string]any{"type": "string"},
						"snippet": map[string]any{"type": "string"},
						"source":  map[string]any{"type": "string"},
					},
				},
			},
			"focus": map[string]any{
				"type":        "string",
				"description": "Specific aspect to focus on (optional)",
				"default":     search.DefaultFocus,
			},
		},
		"required": []string{"articles"},
	},
}
