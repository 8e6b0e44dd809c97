package agent

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"news-agent/internal/model"
)

var sample = []model.SearchResult{
	{Title: "A", URL: "https://a.example", Snippet: "sa", Source: "SA", Published: "p1"},
	{Title: "B", URL: "https://b.example", Snippet: "sb", Source: "SB", Published: "p2"},
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("energy", sample)

	assert.True(t, strings.HasPrefix(prompt, `Based on the following news articles about "energy"`))
	assert.Contains(t, prompt, "1. **A**\n   Source: SA\n   Summary: sa\n   Published: p1\n")
	assert.Contains(t, prompt, "2. **B**")
	for _, instruction := range []string{
		"1. A summary of the key developments",
		"2. Analysis of the main trends and patterns",
		"3. Potential implications or future outlook",
		"4. Any important context or background information",
	} {
		assert.Contains(t, prompt, instruction)
	}
}

func TestSourcesFooter(t *testing.T) {
	footer := SourcesFooter(sample)
	assert.Equal(t, "\n\n---\n\n**📰 Sources:**\n1. [A](https://a.example) - SA\n2. [B](https://b.example) - SB\n", footer)
}

func TestBasicResponse(t *testing.T) {
	t.Run("With results", func(t *testing.T) {
		out := BasicResponse("energy", sample, NotConfiguredNote)
		assert.Contains(t, out, "## 📰 News Results for: energy")
		assert.Contains(t, out, "Found 2 recent articles:")
		assert.Contains(t, out, "[Read more](https://b.example)")
		assert.True(t, strings.HasSuffix(out, NotConfiguredNote))
	})

	t.Run("Without results", func(t *testing.T) {
		out := BasicResponse("energy", nil, NotConfiguredNote)
		assert.Contains(t, out, NoResultsMessage)
		assert.NotContains(t, out, NotConfiguredNote)
	})
}

func TestErrorMessage(t *testing.T) {
	assert.True(t, strings.HasPrefix(ErrorMessage(errors.New("x")), "❌ Sorry, I encountered an error while processing your request: x"))
}
