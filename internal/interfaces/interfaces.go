package interfaces

import (
	"context"
	"encoding/json"

	"news-agent/internal/llm"
	"news-agent/internal/model"
	"news-agent/internal/service"
)

// Handlers depend on these interfaces rather than on the concrete services.

// ConversationService manages conversations and runs chat turns.
type ConversationService interface {
	CreateConversation(ctx context.Context, req *service.CreateConversationRequest) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	GetConversation(ctx context.Context, conversationID string) (*model.FullConversation, error)
	DeleteConversation(ctx context.Context, conversationID string) error
	UpdateConversationModel(ctx context.Context, conversationID, modelName string) error
	ClearConversation(ctx context.Context, conversationID string) error
	HandleMessage(ctx context.Context, conversationID, content string) (*model.ChatMessage, error)
	HandleMessageStream(ctx context.Context, conversationID, content string, ch chan<- model.StreamResponse)
}

// ModelService exposes the model catalog.
type ModelService interface {
	List() *service.ModelList
	Get(name string) (*llm.ModelInfo, error)
}

// SearchService runs raw searches.
type SearchService interface {
	Search(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error)
	SearchNews(ctx context.Context, req *service.SearchRequest) (*service.SearchResponse, error)
}

// StatusService reports provider configuration and connectivity.
type StatusService interface {
	Status(ctx context.Context, probe bool) *service.Status
}

// ToolService lists and runs the named search and summary tools.
type ToolService interface {
	List() *service.ToolCatalog
	Execute(ctx context.Context, name string, params json.RawMessage) (*service.ToolResult, error)
}
