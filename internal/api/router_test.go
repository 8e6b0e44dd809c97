package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"news-agent/internal/api"
	"news-agent/internal/interfaces/mocks"
	"news-agent/internal/llm"
	"news-agent/internal/model"
	"news-agent/internal/service"
)

func TestRouter(t *testing.T) {
	convSvc := mocks.NewMockConversationService(t)
	modelSvc := mocks.NewMockModelService(t)
	searchSvc := mocks.NewMockSearchService(t)
	statusSvc := mocks.NewMockStatusService(t)
	toolSvc := mocks.NewMockToolService(t)
	router := api.NewRouter(
		api.NewConversationHandler(convSvc),
		api.NewModelHandler(modelSvc),
		api.NewSearchHandler(searchSvc, statusSvc),
		api.NewToolHandler(toolSvc),
	)

	t.Run("Health check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Model names may contain slashes", func(t *testing.T) {
		name := "meta-llama/Meta-Llama-3.1-8B-Instruct"
		modelSvc.On("Get", name).Return(&llm.ModelInfo{Name: name}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/models/"+name, nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Conversation routes use the path parameter", func(t *testing.T) {
		convSvc.On("DeleteConversation", mock.Anything, "abc").Return(nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/conversations/abc", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Chat turns carry no server deadline", func(t *testing.T) {
		noDeadline := mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return !ok
		})
		convSvc.On("HandleMessage", noDeadline, "abc", "chip news").
			Return(&model.ChatMessage{ID: "m1", Role: model.RoleAssistant, Content: "Chips are up."}, nil).Once()

		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/abc/messages", strings.NewReader(`{"content":"chip news"}`))
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Plain requests run under the server deadline", func(t *testing.T) {
		withDeadline := mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		})
		searchSvc.On("Search", withDeadline, &service.SearchRequest{Query: "golang"}).
			Return(&service.SearchResponse{Query: "golang"}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"query":"golang"}`)))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Tool routes", func(t *testing.T) {
		toolSvc.On("List").Return(&service.ToolCatalog{Version: "1.0.0"}).Once()
		toolSvc.On("Execute", mock.Anything, "news_summarize", mock.Anything).
			Return(&service.ToolResult{Tool: "news_summarize", Output: "📰 **News Summary**"}, nil).Once()

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/tools/news_summarize", strings.NewReader(`{"articles":[{"title":"x"}]}`)))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
