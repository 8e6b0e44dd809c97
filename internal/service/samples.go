package service

// SampleQuery is a quick-start prompt offered to new users.
type SampleQuery struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Query       string `json:"query"`
}

var sampleQueries = []SampleQuery{
	{
		Title:       "🌍 World News",
		Description: "Latest global news and events",
		Query:       "What are the top 5 world news stories today?",
	},
	{
		Title:       "💼 Tech & Business",
		Description: "Technology and business updates",
		Query:       "What are the latest developments in AI and technology?",
	},
	{
		Title:       "🏥 Health & Science",
		Description: "Health and scientific breakthroughs",
		Query:       "What are the recent medical and scientific discoveries?",
	},
}

// SampleQueries returns a copy of the quick-start queries.
func SampleQueries() []SampleQuery {
	out := make([]SampleQuery, len(sampleQueries))
	copy(out, sampleQueries)
	return out
}
