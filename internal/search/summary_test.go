package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"news-agent/internal/model"
)

func TestSummarize(t *testing.T) {
	t.Run("Groups by source in first-seen order", func(t *testing.T) {
		out := Summarize([]model.SearchResult{
			{Title: "Chip exports rise", Snippet: "Exports grew", Source: "Wire"},
			{Title: "Fab opens in Ohio", Snippet: "New plant", Source: "Daily"},
			{Title: "Tariffs loom", Snippet: "Policy shift", Source: "Wire"},
			{Snippet: "Orphan"},
		}, "supply chain")

		assert.True(t, strings.HasPrefix(out, "📰 **News Summary** (Supply Chain Focus)\n"+strings.Repeat("=", 50)+"\n"))
		wire := strings.Index(out, "**Wire:**\n• Chip exports rise\n  💡 Exports grew\n• Tariffs loom\n  💡 Policy shift\n")
		daily := strings.Index(out, "**Daily:**\n• Fab opens in Ohio\n")
		unknown := strings.Index(out, "**Unknown:**\n• No title\n  💡 Orphan\n")
		assert.True(t, wire >= 0 && daily > wire && unknown > daily, out)
		assert.True(t, strings.HasSuffix(out, "• Total articles analyzed: 4\n• Sources covered: 3\n• Focus area: supply chain"))
	})

	t.Run("Defaults", func(t *testing.T) {
		out := Summarize([]model.SearchResult{{Title: "Quiet day"}}, "")
		assert.Contains(t, out, "(General Focus)")
		assert.Contains(t, out, "  💡 No content\n")
		assert.Contains(t, out, "• Focus area: general")
	})

	t.Run("No articles", func(t *testing.T) {
		assert.Equal(t, "❌ No articles provided for summarization", Summarize(nil, "general"))
	})
}

func TestExcerpt(t *testing.T) {
	short := strings.Repeat("a", 100)
	assert.Equal(t, short, excerpt(short))

	medium := strings.Repeat("b", 150)
	assert.Equal(t, medium+"...", excerpt(medium))

	long := strings.Repeat("é", 250)
	assert.Equal(t, strings.Repeat("é", 200)+"...", excerpt(long))
}
