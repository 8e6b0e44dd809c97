package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"news-agent/internal/model"
)

// renderer writes markdown either through glamour or verbatim.
type renderer struct {
	out io.Writer
	tr  *glamour.TermRenderer
}

func newRenderer(out io.Writer, raw bool) *renderer {
	r := &renderer{out: out}
	if raw {
		return r
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		r.tr = tr
	}
	return r
}

func (r *renderer) markdown(content string) {
	if r.tr != nil {
		if rendered, err := r.tr.Render(content); err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
	}
	fmt.Fprintln(r.out, strings.TrimRight(content, "\n"))
}

// formatUsage renders the usage line shown under an answer.
func formatUsage(u *model.UsageStats) string {
	if u == nil {
		return ""
	}
	return fmt.Sprintf("%s · prompt ~%d tokens · response ~%d tokens · %.1fs · %.1f tokens/s",
		u.Model, u.PromptTokens, u.ResponseTokens, u.DurationSeconds, u.TokensPerSecond)
}
