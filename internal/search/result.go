package search

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"news-agent/internal/model"
)

// Response mirrors the Serper JSON body. Every section is optional.
type Response struct {
	SearchParameters  *SearchParameters  `json:"searchParameters,omitempty"`
	SearchInformation *SearchInformation `json:"searchInformation,omitempty"`
	Organic           []OrganicResult    `json:"organic,omitempty"`
	News              []NewsResult       `json:"news,omitempty"`
	PeopleAlsoAsk     []Question         `json:"peopleAlsoAsk,omitempty"`
	RelatedSearches   []RelatedSearch    `json:"relatedSearches,omitempty"`
}

type SearchParameters struct {
	Q    string `json:"q"`
	Type string `json:"type,omitempty"`
}

type SearchInformation struct {
	TotalResults string `json:"totalResults,omitempty"`
}

type OrganicResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Date     string `json:"date,omitempty"`
	Position int    `json:"position,omitempty"`
}

type NewsResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
	Date    string `json:"date"`
}

type Question struct {
	Question string `json:"question"`
	Snippet  string `json:"snippet,omitempty"`
	Link     string `json:"link,omitempty"`
}

type RelatedSearch struct {
	Query string `json:"query"`
}

// Results flattens the news and organic sections into SearchResults, news first.
func (r *Response) Results() []model.SearchResult {
	if r == nil {
		return nil
	}
	results := make([]model.SearchResult, 0, len(r.News)+len(r.Organic))
	for _, n := range r.News {
		results = append(results, model.SearchResult{
			Title:     n.Title,
			URL:       n.Link,
			Snippet:   n.Snippet,
			Source:    n.Source,
			Published: n.Date,
		})
	}
	for _, o := range r.Organic {
		results = append(results, model.SearchResult{
			Title:     o.Title,
			URL:       o.Link,
			Snippet:   o.Snippet,
			Source:    hostOf(o.Link),
			Published: o.Date,
		})
	}
	return results
}

func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "Unknown source"
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// Status tags how an Outcome's results were obtained.
type Status string

const (
	// StatusOK means the results came from the provider.
	StatusOK Status = "ok"
	// StatusDegraded means the provider was unavailable and the results are placeholders.
	StatusDegraded Status = "degraded"
	// StatusFailed means no results could be produced.
	StatusFailed Status = "failed"
)

// Outcome is the tagged result of a search step, so callers can tell real
// answers from filler without inspecting the records.
type Outcome struct {
	Status  Status               `json:"status"`
	Results []model.SearchResult `json:"results"`
	Reason  string               `json:"reason,omitempty"`
}

func OK(results []model.SearchResult) Outcome {
	return Outcome{Status: StatusOK, Results: results}
}

func Degraded(results []model.SearchResult, reason string) Outcome {
	return Outcome{Status: StatusDegraded, Results: results, Reason: reason}
}

func Failed(reason string) Outcome {
	return Outcome{Status: StatusFailed, Reason: reason}
}

// PublishedLayout is the timestamp format used for placeholder records.
const PublishedLayout = "2006-01-02 15:04:05"

// Placeholders builds up to three deterministic stand-in records for query.
func Placeholders(query string, n int, now time.Time) []model.SearchResult {
	published := now.Format(PublishedLayout)
	all := []model.SearchResult{
		{
			Title:     fmt.Sprintf("Breaking: Latest developments in %s", query),
			URL:       "https://example.com/news1",
			Snippet:   fmt.Sprintf("Recent updates and analysis about %s. Stay informed with the latest information...", query),
			Source:    "News Source 1",
			Published: published,
		},
		{
			Title:     fmt.Sprintf("Analysis: Understanding %s trends", query),
			URL:       "https://example.com/news2",
			Snippet:   fmt.Sprintf("Expert analysis on %s and its implications for the future...", query),
			Source:    "News Source 2",
			Published: published,
		},
		{
			Title:     fmt.Sprintf("Global impact of %s", query),
			URL:       "https://example.com/news3",
			Snippet:   fmt.Sprintf("How %s is affecting markets and communities worldwide...", query),
			Source:    "International News",
			Published: published,
		},
	}
	if n >= 0 && n < len(all) {
		return all[:n]
	}
	return all
}
