package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	app_errors "news-agent/internal/errors"
	"news-agent/internal/llm"
	"news-agent/internal/model"
	"news-agent/internal/search"
)

// State is the agent's processing state.
type State int32

const (
	StateIdle State = iota
	StateProcessing
)

func (s State) String() string {
	if s == StateProcessing {
		return "processing"
	}
	return "idle"
}

// Config holds the generation parameters of an Agent.
type Config struct {
	Model       llm.ModelInfo
	MaxTokens   int
	Temperature float64
	NumResults  int
}

// Agent runs the search → prompt → completion → format pipeline. It processes
// one query at a time; concurrent callers wait their turn or give up when
// their context ends.
type Agent struct {
	searcher search.Searcher
	provider llm.Provider
	cfg      Config
	now      func() time.Time

	turn  chan struct{}
	state atomic.Int32
}

// Option customizes an Agent.
type Option func(*Agent)

// WithClock replaces time.Now, which stamps placeholder results and times completions.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

// New builds an Agent. A nil searcher or provider marks that stage as
// unavailable and the fallback paths are used instead.
func New(searcher search.Searcher, provider llm.Provider, cfg Config, opts ...Option) *Agent {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 800
	}
	if cfg.NumResults <= 0 {
		cfg.NumResults = 5
	}
	if cfg.Model.Path == "" {
		cfg.Model.Path = llm.DefaultModelPath
	}
	a := &Agent{searcher: searcher, provider: provider, cfg: cfg, now: time.Now, turn: make(chan struct{}, 1)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model returns the model this agent generates with.
func (a *Agent) Model() llm.ModelInfo { return a.cfg.Model }

// State reports whether a query is currently being processed.
func (a *Agent) State() State { return State(a.state.Load()) }

// Answer is the result of one pipeline run.
type Answer struct {
	Query string
	// Content is what the user sees: the analysis plus sources footer, or a fallback text.
	Content string
	// Analysis is the raw completion text, empty when no completion succeeded.
	Analysis string
	Outcome  search.Outcome
	Usage    *model.UsageStats
	// Err is the error that forced a fallback: a failed or empty completion,
	// or the context ending before the query could run.
	Err error
}

// Sources returns the search results the answer is based on.
func (a *Answer) Sources() []model.SearchResult { return a.Outcome.Results }

// SearchAndAnalyze returns a non-empty markdown answer for query.
func (a *Agent) SearchAndAnalyze(ctx context.Context, query string) string {
	return a.Run(ctx, query).Content
}

// SearchAndAnalyzeStream forwards answer fragments to ch and closes it.
// Unlike SearchAndAnalyze, no sources footer is sent.
func (a *Agent) SearchAndAnalyzeStream(ctx context.Context, query string, ch chan<- string) {
	a.RunStream(ctx, query, ch)
}

// Run executes the blocking pipeline and returns the full Answer.
func (a *Agent) Run(ctx context.Context, query string) (answer *Answer) {
	release, err := a.acquire(ctx)
	if err != nil {
		return interrupted(query, err)
	}
	defer release()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic in search pipeline", "query", query, "panic", r)
			answer = &Answer{Query: query, Content: ErrorMessage(fmt.Errorf("%v", r))}
		}
	}()

	b := a.prepare(ctx, query)
	return a.analyze(ctx, b)
}

// RunStream executes the streaming pipeline. Fragments go to ch, which is
// closed before RunStream returns; the returned Answer's Content is their
// concatenation.
func (a *Agent) RunStream(ctx context.Context, query string, ch chan<- string) (answer *Answer) {
	defer close(ch)
	release, err := a.acquire(ctx)
	if err != nil {
		return interrupted(query, err)
	}
	defer release()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic in streaming search pipeline", "query", query, "panic", r)
			msg := ErrorMessage(fmt.Errorf("%v", r))
			send(ctx, ch, msg)
			answer = &Answer{Query: query, Content: msg}
		}
	}()

	b := a.prepare(ctx, query)
	return a.analyzeStream(ctx, b, ch)
}

// acquire waits for the agent's single turn slot.
func (a *Agent) acquire(ctx context.Context) (func(), error) {
	select {
	case a.turn <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	a.state.Store(int32(StateProcessing))
	return func() {
		a.state.Store(int32(StateIdle))
		<-a.turn
	}, nil
}

// interrupted is the answer for a query whose context ended before it ran.
func interrupted(query string, err error) *Answer {
	slog.Warn("Query abandoned before processing", "query", query, "error", err)
	return &Answer{Query: query, Outcome: search.Failed(err.Error()), Content: ErrorMessage(err), Err: err}
}

// briefing is the state between the search and completion steps.
type briefing struct {
	query   string
	outcome search.Outcome
	prompt  string
}

func (a *Agent) prepare(ctx context.Context, query string) *briefing {
	q := strings.TrimSpace(query)
	if q == "" {
		return &briefing{outcome: search.OK(nil)}
	}

	b := &briefing{query: q, outcome: a.gather(ctx, q)}
	if len(b.outcome.Results) > 0 {
		b.prompt = BuildPrompt(q, b.outcome.Results)
	}
	return b
}

func (a *Agent) gather(ctx context.Context, query string) search.Outcome {
	n := a.cfg.NumResults
	if a.searcher == nil {
		slog.Info("Search provider unavailable, using placeholder results", "query", query)
		return search.Degraded(search.Placeholders(query, n, a.now()), "search provider not configured")
	}

	resp, err := a.searcher.SearchNews(ctx, query, n)
	if err != nil && ctx.Err() != nil {
		// Nobody is waiting for placeholders any more.
		slog.Warn("News search abandoned", "query", query, "error", err)
		return search.Failed(ctx.Err().Error())
	}
	if err != nil {
		slog.Warn("News search failed, using placeholder results", "query", query, "error", err)
		return search.Degraded(search.Placeholders(query, n, a.now()), err.Error())
	}

	results := resp.Results()
	if len(results) > n {
		results = results[:n]
	}
	return search.OK(results)
}

func (a *Agent) request(prompt string) *llm.CompletionRequest {
	temp := a.cfg.Temperature
	return &llm.CompletionRequest{
		Model:       a.cfg.Model.Path,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: &temp,
	}
}

// fallback returns the basic answer when no completion should or could run.
// The second result is false when the completion step must be attempted.
func (a *Agent) fallback(b *briefing) (*Answer, bool) {
	results := b.outcome.Results
	switch {
	case b.outcome.Status == search.StatusFailed:
		err := errors.New(b.outcome.Reason)
		return &Answer{Query: b.query, Outcome: b.outcome, Content: ErrorMessage(err), Err: err}, true
	case len(results) == 0:
		return &Answer{Query: b.query, Outcome: b.outcome, Content: BasicResponse(b.query, nil, "")}, true
	case a.provider == nil:
		return &Answer{Query: b.query, Outcome: b.outcome, Content: BasicResponse(b.query, results, NotConfiguredNote)}, true
	default:
		return nil, false
	}
}

func (a *Agent) analyze(ctx context.Context, b *briefing) *Answer {
	if ans, ok := a.fallback(b); ok {
		return ans
	}

	start := a.now()
	resp, err := a.provider.Complete(ctx, a.request(b.prompt))
	if err == nil && strings.TrimSpace(resp.Content) == "" {
		err = errEmptyCompletion
	}
	if err != nil {
		slog.Error("AI analysis failed", "query", b.query, "model", a.cfg.Model.Name, "error", err)
		return &Answer{
			Query:   b.query,
			Outcome: b.outcome,
			Content: BasicResponse(b.query, b.outcome.Results, UnavailableNote),
			Err:     err,
		}
	}

	return &Answer{
		Query:    b.query,
		Outcome:  b.outcome,
		Analysis: resp.Content,
		Content:  resp.Content + SourcesFooter(b.outcome.Results),
		Usage:    model.NewUsageStats(a.cfg.Model.Name, b.prompt, resp.Content, a.now().Sub(start)),
	}
}

func (a *Agent) analyzeStream(ctx context.Context, b *briefing, ch chan<- string) *Answer {
	if ans, ok := a.fallback(b); ok {
		send(ctx, ch, ans.Content)
		return ans
	}

	start := a.now()
	llmCh := make(chan llm.StreamChunk)
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.provider.CompleteStream(ctx, a.request(b.prompt), llmCh)
	}()

	var sb strings.Builder
	for chunk := range llmCh {
		if chunk.Content == "" {
			continue
		}
		sb.WriteString(chunk.Content)
		if !send(ctx, ch, chunk.Content) {
			break
		}
	}
	// Drain so the provider goroutine can finish if we stopped early.
	for range llmCh {
	}
	err := <-errCh

	if err != nil {
		slog.Error("AI analysis stream failed", "query", b.query, "model", a.cfg.Model.Name, "error", err)
		if sb.Len() == 0 {
			content := BasicResponse(b.query, b.outcome.Results, UnavailableNote)
			send(ctx, ch, content)
			return &Answer{Query: b.query, Outcome: b.outcome, Content: content, Err: err}
		}
		tail := fmt.Sprintf("\n\n❌ Error generating response: %v", err)
		send(ctx, ch, tail)
		sb.WriteString(tail)
		return &Answer{Query: b.query, Outcome: b.outcome, Content: sb.String(), Err: err}
	}

	analysis := sb.String()
	if strings.TrimSpace(analysis) == "" {
		slog.Error("AI analysis stream returned no content", "query", b.query, "model", a.cfg.Model.Name)
		// Whitespace fragments already sent stay part of the content.
		basic := BasicResponse(b.query, b.outcome.Results, UnavailableNote)
		send(ctx, ch, basic)
		return &Answer{Query: b.query, Outcome: b.outcome, Content: analysis + basic, Err: errEmptyCompletion}
	}
	return &Answer{
		Query:    b.query,
		Outcome:  b.outcome,
		Analysis: analysis,
		Content:  analysis,
		Usage:    model.NewUsageStats(a.cfg.Model.Name, b.prompt, analysis, a.now().Sub(start)),
	}
}

var errEmptyCompletion = fmt.Errorf("%w: completion returned no content", app_errors.ErrUpstream)

func send(ctx context.Context, ch chan<- string, s string) bool {
	select {
	case ch <- s:
		return true
	case <-ctx.Done():
		return false
	}
}
