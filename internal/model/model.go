package model

import (
	"time"
	"unicode/utf8"
)

// Roles a ChatMessage can carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// SearchResult is a single article or page returned by the search provider.
type SearchResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Snippet   string `json:"snippet"`
	Source    string `json:"source"`
	Published string `json:"published"`
}

// Conversation stores metadata about a chat session.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is a single entry in a conversation log. Assistant messages
// carry the usage of the completion call that produced them.
type ChatMessage struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Usage     *UsageStats    `json:"usage,omitempty"`
	Sources   []SearchResult `json:"sources,omitempty"`
}

// FullConversation includes the conversation metadata and all its messages.
type FullConversation struct {
	Conversation
	Messages []ChatMessage `json:"messages"`
}

// UsageStats returns the usage entry of every assistant message, in order.
// Entries are nil where no completion ran.
func (c *FullConversation) UsageStats() []*UsageStats {
	var stats []*UsageStats
	for _, m := range c.Messages {
		if m.Role == RoleAssistant {
			stats = append(stats, m.Usage)
		}
	}
	return stats
}

// UsageStats is an approximate account of one completion call. Token counts
// are characters divided by four, not the output of a tokenizer.
type UsageStats struct {
	Model           string  `json:"model"`
	PromptTokens    int     `json:"prompt_tokens"`
	ResponseTokens  int     `json:"response_tokens"`
	DurationSeconds float64 `json:"duration_seconds"`
	TokensPerSecond float64 `json:"tokens_per_second"`
}

// EstimateTokens approximates a token count as one token per four characters.
func EstimateTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

// NewUsageStats derives UsageStats from the prompt and response text.
func NewUsageStats(model, prompt, response string, elapsed time.Duration) *UsageStats {
	stats := &UsageStats{
		Model:           model,
		PromptTokens:    EstimateTokens(prompt),
		ResponseTokens:  EstimateTokens(response),
		DurationSeconds: elapsed.Seconds(),
	}
	if stats.DurationSeconds > 0 {
		stats.TokensPerSecond = float64(stats.ResponseTokens) / stats.DurationSeconds
	}
	return stats
}

// StreamResponse is the structure for a single chunk in a streaming response.
// The final chunk has Done set and carries the sources and usage of the turn.
type StreamResponse struct {
	Content string         `json:"content"`
	Done    bool           `json:"done"`
	Sources []SearchResult `json:"sources,omitempty"`
	Usage   *UsageStats    `json:"usage,omitempty"`
	Error   string         `json:"error,omitempty"`
}
