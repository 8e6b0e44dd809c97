package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"news-agent/internal/agent"
	"news-agent/internal/database"
	app_errors "news-agent/internal/errors"
	"news-agent/internal/llm"
	mock_llm "news-agent/internal/llm/mocks"
	"news-agent/internal/model"
	"news-agent/internal/repository"
	mock_repo "news-agent/internal/repository/mocks"
	"news-agent/internal/search"
	mock_search "news-agent/internal/search/mocks"
	"news-agent/internal/service"
)

func testCatalog(t *testing.T) llm.Catalog {
	catalog, err := llm.NewStaticCatalog(llm.DefaultModels, "gpt-4o")
	require.NoError(t, err)
	return catalog
}

func newsResponse() *search.Response {
	return &search.Response{News: []search.NewsResult{
		{Title: "Chip exports rise", Link: "https://news.example/chips", Snippet: "Exports grew", Source: "Wire", Date: "1 hour ago"},
		{Title: "Fab opens in Ohio", Link: "https://news.example/fab", Snippet: "New plant", Source: "Daily", Date: "3 hours ago"},
	}}
}

// factoryFor builds agents around the given stages. Pass nil to mark a stage
// as not configured.
func factoryFor(searcher search.Searcher, provider llm.Provider) service.AgentFactory {
	return func(m llm.ModelInfo) *agent.Agent {
		return agent.New(searcher, provider, agent.Config{Model: m, MaxTokens: 800, Temperature: 0.7, NumResults: 5})
	}
}

// setupSQLiteService wires the service to a real in-memory store.
func setupSQLiteService(t *testing.T, factory service.AgentFactory) (*service.ConversationService, repository.Repository) {
	db, err := database.InitDB(database.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewSQLiteRepository(db)
	return service.NewConversationService(repo, testCatalog(t), factory), repo
}

func TestConversationService_CreateConversation(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - default model", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewConversationService(repo, testCatalog(t), factoryFor(nil, nil))

		repo.On("CreateConversation", ctx, mock.MatchedBy(func(c *model.Conversation) bool {
			return c.ID != "" && c.Model == "gpt-4o" && c.Title == "Morning brief"
		})).Return(nil).Once()

		conv, err := svc.CreateConversation(ctx, &service.CreateConversationRequest{Title: " Morning brief "})
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", conv.Model)
		assert.False(t, conv.CreatedAt.IsZero())
	})

	t.Run("Failure - unknown model", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewConversationService(repo, testCatalog(t), factoryFor(nil, nil))

		_, err := svc.CreateConversation(ctx, &service.CreateConversationRequest{Model: "gpt-2"})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}

func TestConversationService_NotFoundIsTranslated(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	svc := service.NewConversationService(repo, testCatalog(t), factoryFor(nil, nil))

	repo.On("GetConversation", ctx, "missing").Return(nil, repository.ErrNotFound).Once()
	repo.On("DeleteConversation", ctx, "missing").Return(repository.ErrNotFound).Once()
	repo.On("ClearMessages", ctx, "missing").Return(repository.ErrNotFound).Once()
	repo.On("UpdateConversationModel", ctx, "missing", "gpt-4o-mini").Return(repository.ErrNotFound).Once()

	_, err := svc.GetConversation(ctx, "missing")
	assert.ErrorIs(t, err, app_errors.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteConversation(ctx, "missing"), app_errors.ErrNotFound)
	assert.ErrorIs(t, svc.ClearConversation(ctx, "missing"), app_errors.ErrNotFound)
	assert.ErrorIs(t, svc.UpdateConversationModel(ctx, "missing", "gpt-4o-mini"), app_errors.ErrNotFound)
}

func TestConversationService_UpdateConversationModel_UnknownModel(t *testing.T) {
	repo := mock_repo.NewMockRepository(t)
	svc := service.NewConversationService(repo, testCatalog(t), factoryFor(nil, nil))

	err := svc.UpdateConversationModel(context.Background(), "c1", "not-a-model")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}

func TestConversationService_HandleMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - analysis with sources and usage", func(t *testing.T) {
		searcher := mock_search.NewMockSearcher(t)
		provider := mock_llm.NewMockProvider(t)
		svc, _ := setupSQLiteService(t, factoryFor(searcher, provider))

		searcher.On("SearchNews", mock.Anything, "chip news", 5).Return(newsResponse(), nil).Once()
		provider.On("Complete", mock.Anything, mock.Anything).
			Return(&llm.CompletionResponse{Content: "Chips are booming."}, nil).Once()

		conv, err := svc.CreateConversation(ctx, &service.CreateConversationRequest{})
		require.NoError(t, err)

		msg, err := svc.HandleMessage(ctx, conv.ID, "chip news")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAssistant, msg.Role)
		assert.True(t, strings.HasPrefix(msg.Content, "Chips are booming."))
		assert.Contains(t, msg.Content, "**📰 Sources:**")
		assert.Len(t, msg.Sources, 2)
		require.NotNil(t, msg.Usage)
		assert.Equal(t, "gpt-4o", msg.Usage.Model)

		full, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, full.Messages, 2)
		assert.Equal(t, model.RoleUser, full.Messages[0].Role)
		assert.Equal(t, "chip news", full.Messages[0].Content)
		assert.Equal(t, msg.ID, full.Messages[1].ID)
		assert.Equal(t, "chip news", full.Title)
		assert.Len(t, full.UsageStats(), 1)
	})

	t.Run("Fallback - nothing configured still answers", func(t *testing.T) {
		svc, _ := setupSQLiteService(t, factoryFor(nil, nil))

		conv, err := svc.CreateConversation(ctx, &service.CreateConversationRequest{Title: "kept"})
		require.NoError(t, err)

		msg, err := svc.HandleMessage(ctx, conv.ID, "test topic")
		require.NoError(t, err)
		assert.Contains(t, msg.Content, "Breaking: Latest developments in test topic")
		assert.Nil(t, msg.Usage)

		full, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, "kept", full.Title)
		assert.Equal(t, []*model.UsageStats{nil}, full.UsageStats())
	})

	t.Run("Failure - blank content", func(t *testing.T) {
		repo := mock_repo.NewMockRepository(t)
		svc := service.NewConversationService(repo, testCatalog(t), factoryFor(nil, nil))

		_, err := svc.HandleMessage(ctx, "c1", "   ")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - unknown conversation", func(t *testing.T) {
		svc, _ := setupSQLiteService(t, factoryFor(nil, nil))

		_, err := svc.HandleMessage(ctx, "missing", "hello")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Failure - conversation already answering", func(t *testing.T) {
		provider := mock_llm.NewMockProvider(t)
		svc, _ := setupSQLiteService(t, factoryFor(nil, provider))

		entered := make(chan struct{})
		release := make(chan struct{})
		provider.On("Complete", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(&llm.CompletionResponse{Content: "done"}, nil).Once()

		conv, err := svc.CreateConversation(ctx, &service.CreateConversationRequest{})
		require.NoError(t, err)

		firstErr := make(chan error, 1)
		go func() {
			_, err := svc.HandleMessage(ctx, conv.ID, "first")
			firstErr <- err
		}()

		select {
		case <-entered:
		case <-time.After(5 * time.Second):
			t.Fatal("first turn never reached the completion step")
		}

		_, err = svc.HandleMessage(ctx, conv.ID, "second")
		assert.ErrorIs(t, err, app_errors.ErrBusy)

		close(release)
		require.NoError(t, <-firstErr)

		full, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		assert.Len(t, full.Messages, 2)
	})
}

func TestConversationService_HandleMessageStream(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - final chunk carries sources and usage", func(t *testing.T) {
		searcher := mock_search.NewMockSearcher(t)
		provider := mock_llm.NewMockProvider(t)
		svc, _ := setupSQLiteService(t, factoryFor(searcher, provider))

		searcher.On("SearchNews", mock.Anything, "chips", 5).Return(newsResponse(), nil).Once()
		provider.On("CompleteStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- llm.StreamChunk)
				ch <- llm.StreamChunk{Content: "Chips "}
				ch <- llm.StreamChunk{Content: "are booming."}
				ch <- llm.StreamChunk{Done: true}
				close(ch)
			}).
			Return(nil).Once()

		conv, err := svc.CreateConversation(ctx, &service.CreateConversationRequest{})
		require.NoError(t, err)

		ch := make(chan model.StreamResponse)
		go svc.HandleMessageStream(ctx, conv.ID, "chips", ch)

		var chunks []model.StreamResponse
		for chunk := range ch {
			chunks = append(chunks, chunk)
		}
		require.Len(t, chunks, 3)
		assert.Equal(t, "Chips ", chunks[0].Content)
		assert.Equal(t, "are booming.", chunks[1].Content)

		last := chunks[2]
		assert.True(t, last.Done)
		assert.Empty(t, last.Error)
		assert.Len(t, last.Sources, 2)
		require.NotNil(t, last.Usage)

		full, err := svc.GetConversation(ctx, conv.ID)
		require.NoError(t, err)
		require.Len(t, full.Messages, 2)
		assert.Equal(t, "Chips are booming.", full.Messages[1].Content)
		assert.NotContains(t, full.Messages[1].Content, "Sources:")
	})

	t.Run("Failure - error chunk for unknown conversation", func(t *testing.T) {
		svc, _ := setupSQLiteService(t, factoryFor(nil, nil))

		ch := make(chan model.StreamResponse)
		go svc.HandleMessageStream(ctx, "missing", "chips", ch)

		var chunks []model.StreamResponse
		for chunk := range ch {
			chunks = append(chunks, chunk)
		}
		require.Len(t, chunks, 1)
		assert.True(t, chunks[0].Done)
		assert.Contains(t, chunks[0].Error, "not found")
	})
}

func TestConversationService_SaveFailureIsReported(t *testing.T) {
	ctx := context.Background()
	repo := mock_repo.NewMockRepository(t)
	svc := service.NewConversationService(repo, testCatalog(t), factoryFor(nil, nil))

	repo.On("GetConversation", ctx, "c1").Return(&model.Conversation{ID: "c1", Title: "t", Model: "gpt-4o"}, nil).Once()
	repo.On("AddMessage", ctx, "c1", mock.MatchedBy(func(m *model.ChatMessage) bool { return m.Role == model.RoleUser })).
		Return(nil).Once()
	repo.On("AddMessage", mock.Anything, "c1", mock.MatchedBy(func(m *model.ChatMessage) bool { return m.Role == model.RoleAssistant })).
		Return(errors.New("disk full")).Once()

	_, err := svc.HandleMessage(ctx, "c1", "anything")
	assert.ErrorContains(t, err, "disk full")
}
