package agent

import (
	"fmt"
	"strings"

	"news-agent/internal/model"
)

// BuildContext renders the search results as the numbered article list the
// completion prompt embeds.
func BuildContext(results []model.SearchResult) string {
	var b strings.Builder
	b.WriteString("Recent news articles:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, r.Title)
		fmt.Fprintf(&b, "   Source: %s\n", r.Source)
		fmt.Fprintf(&b, "   Summary: %s\n", r.Snippet)
		fmt.Fprintf(&b, "   Published: %s\n\n", r.Published)
	}
	return b.String()
}

// BuildPrompt wraps the context block with the fixed analysis instructions.
func BuildPrompt(query string, results []model.SearchResult) string {
	return fmt.Sprintf(`Based on the following news articles about "%s", provide a comprehensive analysis:

%s

Please provide:
1. A summary of the key developments
2. Analysis of the main trends and patterns
3. Potential implications or future outlook
4. Any important context or background information

Format your response in a clear, engaging way that helps the user understand the current situation.`, query, BuildContext(results))
}

// SourcesHeading opens the footer appended to AI answers.
const SourcesHeading = "**📰 Sources:**"

// SourcesFooter lists every result as a markdown link.
func SourcesFooter(results []model.SearchResult) string {
	var b strings.Builder
	b.WriteString("\n\n---\n\n")
	b.WriteString(SourcesHeading)
	b.WriteString("\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. [%s](%s) - %s\n", i+1, r.Title, r.URL, r.Source)
	}
	return b.String()
}

// NoResultsMessage is shown instead of an analysis when the search came back empty.
const NoResultsMessage = "No recent news articles found for this query. Please try a different search term."

// Notes appended to the basic response explaining why there is no analysis.
const (
	NotConfiguredNote = "💡 *Set your CLARIFAI_PAT in the .env file to enable AI-powered analysis and insights.*"
	UnavailableNote   = "⚠️ *AI analysis is temporarily unavailable. Showing the raw search results instead.*"
)

// BasicResponse lists the raw results without AI commentary.
func BasicResponse(query string, results []model.SearchResult, note string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 📰 News Results for: %s\n\n", query)

	if len(results) == 0 {
		b.WriteString(NoResultsMessage)
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d recent articles:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "**Source:** %s | **Published:** %s\n\n", r.Source, r.Published)
		fmt.Fprintf(&b, "%s\n\n", r.Snippet)
		fmt.Fprintf(&b, "[Read more](%s)\n\n---\n\n", r.URL)
	}
	b.WriteString(note)
	return b.String()
}

// ErrorMessage is the user-facing text for a failure nothing else handled.
func ErrorMessage(err error) string {
	return fmt.Sprintf("❌ Sorry, I encountered an error while processing your request: %v\n\nPlease try again or check your configuration.", err)
}
