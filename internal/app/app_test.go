package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-agent/internal/config"
	"news-agent/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:         8000,
		LogLevel:        "DEBUG",
		DatabasePath:    ":memory:",
		SessionStore:    "sqlite",
		SerperBaseURL:   "https://google.serper.dev",
		DefaultModel:    "gpt-4o",
		MaxTokens:       800,
		Temperature:     0.7,
		NewsResults:     5,
		ClarifaiAPIBase: "https://api.clarifai.com/v2/ext/openai/v1",
	}
}

func TestNewApp(t *testing.T) {
	t.Run("SQLite file store", func(t *testing.T) {
		cfg := testConfig()
		cfg.DatabasePath = filepath.Join(t.TempDir(), "news.db")

		app, err := NewApp(cfg)
		require.NoError(t, err)
		defer app.Close()

		assert.NotNil(t, app.DB)
		assert.Nil(t, app.Redis)
		assert.Equal(t, ":8000", app.Server.Addr)
	})

	t.Run("Unknown session store", func(t *testing.T) {
		cfg := testConfig()
		cfg.SessionStore = "memcached"

		_, err := NewApp(cfg)
		assert.ErrorContains(t, err, "unknown SESSION_STORE")
	})

	t.Run("Unreachable redis", func(t *testing.T) {
		cfg := testConfig()
		cfg.SessionStore = "redis"
		cfg.RedisAddr = "127.0.0.1:1"

		_, err := NewApp(cfg)
		assert.ErrorContains(t, err, "failed to connect to redis")
	})

	t.Run("Missing catalog file", func(t *testing.T) {
		cfg := testConfig()
		cfg.ModelCatalogPath = filepath.Join(t.TempDir(), "missing.yaml")

		_, err := NewApp(cfg)
		assert.ErrorContains(t, err, "failed to load model catalog")
	})
}

func TestBuildComponents_PlaceholderCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.SerperAPIKey = config.SerperAPIKeyPlaceholder
	cfg.ClarifaiPAT = config.ClarifaiPATPlaceholder

	c, err := BuildComponents(cfg)
	require.NoError(t, err)
	assert.Nil(t, c.Searcher)
	assert.Nil(t, c.Provider)

	st := c.StatusService().Status(t.Context(), true)
	assert.False(t, st.Serper.Configured)
	assert.False(t, st.Clarifai.Configured)
	assert.False(t, st.Ready)
}

// fakeUpstreams serves canned Serper and Clarifai responses.
func fakeUpstreams(t *testing.T) (serper, clarifai *httptest.Server) {
	serper = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "serper-key", r.Header.Get("X-API-KEY"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"news":[
			{"title":"Chip exports rise","link":"https://news.example/chips","snippet":"Exports grew","source":"Wire","date":"1 hour ago"}
		]}`)
	}))
	clarifai = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer clarifai-pat", r.Header.Get("Authorization"))
		var req struct {
			Stream bool `json:"stream"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"Chips \"}}]}\n\n")
			_, _ = io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"are up.\"}}]}\n\n")
			_, _ = io.WriteString(w, "data: [DONE]\n\n")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"model":"gpt-4o","choices":[{"message":{"role":"assistant","content":"Chips are up."}}]}`)
	}))
	t.Cleanup(serper.Close)
	t.Cleanup(clarifai.Close)
	return serper, clarifai
}

// TestApp_EndToEnd drives the HTTP API against fake upstream providers.
func TestApp_EndToEnd(t *testing.T) {
	serper, clarifai := fakeUpstreams(t)
	cfg := testConfig()
	cfg.SerperAPIKey = "serper-key"
	cfg.SerperBaseURL = serper.URL
	cfg.ClarifaiPAT = "clarifai-pat"
	cfg.ClarifaiAPIBase = clarifai.URL

	app, err := NewApp(cfg)
	require.NoError(t, err)
	defer app.Close()

	srv := httptest.NewServer(app.Server.Handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/conversations", "application/json", strings.NewReader(`{"model":"gpt-4o-mini"}`))
	require.NoError(t, err)
	var conv model.Conversation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conv))
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "gpt-4o-mini", conv.Model)

	messagesURL := srv.URL + "/api/v1/conversations/" + conv.ID + "/messages"

	resp, err = http.Post(messagesURL, "application/json", strings.NewReader(`{"content":"chip news"}`))
	require.NoError(t, err)
	var msg model.ChatMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&msg))
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(msg.Content, "Chips are up."))
	assert.Contains(t, msg.Content, "1. [Chip exports rise](https://news.example/chips) - Wire")
	require.NotNil(t, msg.Usage)
	assert.Equal(t, "gpt-4o-mini", msg.Usage.Model)

	resp, err = http.Post(messagesURL+"/stream", "application/json", strings.NewReader(`{"content":"more chip news"}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `data: {"content":"Chips ","done":false}`)
	assert.Contains(t, string(body), `"done":true`)

	resp, err = http.Get(srv.URL + "/api/v1/conversations/" + conv.ID)
	require.NoError(t, err)
	var full model.FullConversation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&full))
	_ = resp.Body.Close()
	require.Len(t, full.Messages, 4)
	assert.Equal(t, "Chips are up.", full.Messages[3].Content)
	assert.Len(t, full.UsageStats(), 2)

	req, err := http.NewRequest(http.MethodDelete, messagesURL, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/v1/status")
	require.NoError(t, err)
	var status struct {
		Ready bool `json:"ready"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	_ = resp.Body.Close()
	assert.True(t, status.Ready)
}
