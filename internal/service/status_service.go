package service

import (
	"context"
	"log/slog"
	"time"

	"news-agent/internal/llm"
)

const probeTimeout = 15 * time.Second

// SearchProbe checks that the search provider accepts our credentials.
type SearchProbe interface {
	Ping(ctx context.Context) error
}

// CompletionProbe checks that the completion provider answers for a model.
type CompletionProbe interface {
	Ping(ctx context.Context, modelPath string) error
}

// ProviderStatus describes one upstream dependency.
type ProviderStatus struct {
	Configured bool `json:"configured"`
	// Checked is set when a live probe ran; Connected is only meaningful then.
	Checked   bool   `json:"checked"`
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

// Status is the setup validation report.
type Status struct {
	Serper       ProviderStatus `json:"serper"`
	Clarifai     ProviderStatus `json:"clarifai"`
	DefaultModel string         `json:"default_model"`
	// Ready is true when both providers are configured and no probe failed.
	Ready    bool     `json:"ready"`
	Warnings []string `json:"warnings,omitempty"`
}

// StatusService reports whether the upstream providers are usable.
// A nil probe means the provider is not configured.
type StatusService struct {
	search     SearchProbe
	completion CompletionProbe
	catalog    llm.Catalog
}

func NewStatusService(searchProbe SearchProbe, completionProbe CompletionProbe, catalog llm.Catalog) *StatusService {
	return &StatusService{search: searchProbe, completion: completionProbe, catalog: catalog}
}

// Status builds the report. With probe set, each configured provider is
// contacted once; otherwise only credentials are checked.
func (s *StatusService) Status(ctx context.Context, probe bool) *Status {
	st := &Status{
		Serper:       ProviderStatus{Configured: s.search != nil},
		Clarifai:     ProviderStatus{Configured: s.completion != nil},
		DefaultModel: s.catalog.Default().Name,
	}

	if !st.Clarifai.Configured {
		st.Warnings = append(st.Warnings, "Set CLARIFAI_PAT in .env file for AI features")
	}
	if !st.Serper.Configured {
		st.Warnings = append(st.Warnings, "Set SERPER_API_KEY in .env file for live news search; placeholder results are used until then")
	}

	if probe {
		if s.search != nil {
			st.Serper.Checked = true
			st.Serper.Connected, st.Serper.Error = runProbe(ctx, "serper", func(ctx context.Context) error {
				return s.search.Ping(ctx)
			})
		}
		if s.completion != nil {
			st.Clarifai.Checked = true
			st.Clarifai.Connected, st.Clarifai.Error = runProbe(ctx, "clarifai", func(ctx context.Context) error {
				return s.completion.Ping(ctx, s.catalog.Default().Path)
			})
		}
	}

	st.Ready = st.Serper.Configured && st.Clarifai.Configured &&
		(!st.Serper.Checked || st.Serper.Connected) &&
		(!st.Clarifai.Checked || st.Clarifai.Connected)
	return st
}

func runProbe(ctx context.Context, name string, ping func(context.Context) error) (bool, string) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := ping(ctx); err != nil {
		slog.Warn("Connection test failed", "provider", name, "error", err)
		return false, err.Error()
	}
	slog.Debug("Connection test succeeded", "provider", name)
	return true, ""
}
