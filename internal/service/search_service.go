package service

import (
	"context"
	"fmt"
	"log/slog"

	app_errors "news-agent/internal/errors"
	"news-agent/internal/model"
	"news-agent/internal/search"
)

// SearchRequest is the body of the raw search endpoints.
type SearchRequest struct {
	Query      string `json:"query" validate:"required,min=1,max=500" example:"semiconductor export controls"`
	NumResults int    `json:"num_results" validate:"omitempty,min=1,max=20" example:"10"`
	Location   string `json:"location" validate:"max=100" example:"us"`
}

// SearchResponse holds the normalized results and their markdown rendering.
type SearchResponse struct {
	Query    string               `json:"query"`
	Results  []model.SearchResult `json:"results"`
	Markdown string               `json:"markdown"`
}

// SearchService runs search queries without the completion step.
type SearchService struct {
	searcher search.Searcher
}

// NewSearchService accepts a nil searcher, in which case every call fails
// with ErrNotConfigured.
func NewSearchService(searcher search.Searcher) *SearchService {
	return &SearchService{searcher: searcher}
}

// Search runs a general web search.
func (s *SearchService) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if s.searcher == nil {
		return nil, fmt.Errorf("%w: SERPER_API_KEY is not set", app_errors.ErrNotConfigured)
	}
	resp, err := s.searcher.Search(ctx, req.Query, search.Options{NumResults: req.NumResults, Location: req.Location})
	if err != nil {
		slog.Warn("Web search failed", "query", req.Query, "error", err)
		return nil, err
	}
	return newSearchResponse(req.Query, resp), nil
}

// SearchNews runs a news search.
func (s *SearchService) SearchNews(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if s.searcher == nil {
		return nil, fmt.Errorf("%w: SERPER_API_KEY is not set", app_errors.ErrNotConfigured)
	}
	resp, err := s.searcher.SearchNews(ctx, req.Query, req.NumResults)
	if err != nil {
		slog.Warn("News search failed", "query", req.Query, "error", err)
		return nil, err
	}
	return newSearchResponse(req.Query, resp), nil
}

func newSearchResponse(query string, resp *search.Response) *SearchResponse {
	return &SearchResponse{Query: query, Results: resp.Results(), Markdown: search.FormatResults(resp)}
}
