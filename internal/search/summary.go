package search

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"news-agent/internal/model"
)

// DefaultFocus is used by Summarize when no focus is given.
const DefaultFocus = "general"

// Summarize groups articles by source, in first-seen order, and closes with
// a short statistics block. Snippets longer than 100 characters are cut to
// 200 and marked with an ellipsis.
func Summarize(articles []model.SearchResult, focus string) string {
	if len(articles) == 0 {
		return "❌ No articles provided for summarization"
	}
	if strings.TrimSpace(focus) == "" {
		focus = DefaultFocus
	}

	var order []string
	bySource := make(map[string][]model.SearchResult)
	for _, a := range articles {
		source := orDefault(a.Source, "Unknown")
		if _, seen := bySource[source]; !seen {
			order = append(order, source)
		}
		bySource[source] = append(bySource[source], a)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📰 **News Summary** (%s Focus)\n", cases.Title(language.English).String(focus))
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n")

	for _, source := range order {
		fmt.Fprintf(&b, "\n**%s:**\n", source)
		for _, a := range bySource[source] {
			fmt.Fprintf(&b, "• %s\n", orDefault(a.Title, "No title"))
			fmt.Fprintf(&b, "  💡 %s\n", excerpt(orDefault(a.Snippet, "No content")))
		}
	}

	b.WriteString("\n**🔍 Key Insights:**\n")
	fmt.Fprintf(&b, "• Total articles analyzed: %d\n", len(articles))
	fmt.Fprintf(&b, "• Sources covered: %d\n", len(order))
	fmt.Fprintf(&b, "• Focus area: %s", focus)
	return b.String()
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= 100 {
		return s
	}
	if len(runes) > 200 {
		runes = runes[:200]
	}
	return string(runes) + "..."
}
