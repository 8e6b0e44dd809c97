package search

import (
	"fmt"
	"strings"
)

// FormatResults renders a Serper response as markdown. Section caps follow
// what fits in a chat bubble: 10 web results, 5 news, 3 questions, 5 related.
func FormatResults(r *Response) string {
	if r == nil {
		return "❌ Search Error: empty response"
	}

	var b strings.Builder

	if r.SearchParameters != nil {
		total := "N/A"
		if r.SearchInformation != nil && r.SearchInformation.TotalResults != "" {
			total = r.SearchInformation.TotalResults
		}
		fmt.Fprintf(&b, "🔍 **Search Query:** %s\n", orDefault(r.SearchParameters.Q, "N/A"))
		fmt.Fprintf(&b, "📊 **Results Found:** %s\n\n", total)
	}

	if len(r.Organic) > 0 {
		b.WriteString("## 🌐 Web Results\n")
		for i, res := range capped(r.Organic, 10) {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, orDefault(res.Title, "No title"))
			fmt.Fprintf(&b, "🔗 **URL:** %s\n", res.Link)
			fmt.Fprintf(&b, "📝 **Description:** %s\n\n", orDefault(res.Snippet, "No description available"))
		}
	}

	if len(r.News) > 0 {
		b.WriteString("## 📰 News Results\n")
		for i, article := range capped(r.News, 5) {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, orDefault(article.Title, "No title"))
			fmt.Fprintf(&b, "📰 **Source:** %s\n", orDefault(article.Source, "Unknown source"))
			fmt.Fprintf(&b, "📅 **Date:** %s\n", orDefault(article.Date, "No date"))
			fmt.Fprintf(&b, "🔗 **URL:** %s\n", article.Link)
			fmt.Fprintf(&b, "📝 **Summary:** %s\n\n", orDefault(article.Snippet, "No description available"))
		}
	}

	if len(r.PeopleAlsoAsk) > 0 {
		b.WriteString("## ❓ People Also Ask\n")
		for i, q := range capped(r.PeopleAlsoAsk, 3) {
			fmt.Fprintf(&b, "%d. %s\n", i+1, orDefault(q.Question, "No question"))
			if q.Snippet != "" {
				fmt.Fprintf(&b, "   💡 %s\n", q.Snippet)
			}
		}
		b.WriteString("\n")
	}

	if len(r.RelatedSearches) > 0 {
		b.WriteString("## 🔗 Related Searches\n")
		for _, rel := range capped(r.RelatedSearches, 5) {
			if rel.Query != "" {
				fmt.Fprintf(&b, "• %s\n", rel.Query)
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatError renders a failed search the way FormatResults renders a good one.
func FormatError(err error) string {
	return fmt.Sprintf("❌ Search Error: %v", err)
}

func capped[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
