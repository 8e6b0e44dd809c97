package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"news-agent/internal/api"
	app_errors "news-agent/internal/errors"
	"news-agent/internal/interfaces/mocks"
	"news-agent/internal/service"
)

func setupToolRouter(t *testing.T) (http.Handler, *mocks.MockToolService) {
	toolSvc := mocks.NewMockToolService(t)
	handler := api.NewToolHandler(toolSvc)
	r := chi.NewRouter()
	r.Get("/v1/tools", handler.HandleListTools)
	r.Post("/v1/tools/{name}", handler.HandleExecuteTool)
	return r, toolSvc
}

func TestToolHandler_HandleListTools(t *testing.T) {
	router, toolSvc := setupToolRouter(t)
	toolSvc.On("List").Return(&service.ToolCatalog{
		Tools:        []service.ToolInfo{{Name: "google_search"}},
		Version:      "1.0.0",
		Capabilities: []string{"google_search"},
	}).Once()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/tools", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got service.ToolCatalog
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, []string{"google_search"}, got.Capabilities)
}

func TestToolHandler_HandleExecuteTool(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, toolSvc := setupToolRouter(t)
		toolSvc.On("Execute", mock.Anything, "google_news_search", json.RawMessage(`{"query":"chips"}`)).
			Return(&service.ToolResult{Tool: "google_news_search", Output: "## 📰 News Results"}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/tools/google_news_search", strings.NewReader(`{"query":"chips"}`)))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"output":"## 📰 News Results"`)
	})

	t.Run("Empty body is passed through", func(t *testing.T) {
		router, toolSvc := setupToolRouter(t)
		toolSvc.On("Execute", mock.Anything, "google_search", json.RawMessage{}).
			Return(nil, fmt.Errorf("%w: query is required", app_errors.ErrValidation)).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/tools/google_search", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "query is required")
	})

	t.Run("Failure - unknown tool", func(t *testing.T) {
		router, toolSvc := setupToolRouter(t)
		toolSvc.On("Execute", mock.Anything, "news_trends", mock.Anything).
			Return(nil, fmt.Errorf("%w: unknown tool %q", app_errors.ErrNotFound, "news_trends")).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/tools/news_trends", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Failure - body too large", func(t *testing.T) {
		router, _ := setupToolRouter(t)

		body := `{"focus":"` + strings.Repeat("a", 1<<20) + `"}`
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/tools/news_summarize", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "tool parameters exceed")
	})
}
