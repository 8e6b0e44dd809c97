package repository

import (
	"context"

	"news-agent/internal/model"
)

// Repository defines the interface for conversation storage.
// Messages are append-only; ClearMessages is the only way to remove them
// short of deleting the conversation.
type Repository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error)
	ListConversations(ctx context.Context) ([]*model.Conversation, error)
	UpdateConversationTitle(ctx context.Context, conversationID, title string) error
	UpdateConversationModel(ctx context.Context, conversationID, modelName string) error
	DeleteConversation(ctx context.Context, conversationID string) error

	AddMessage(ctx context.Context, conversationID string, message *model.ChatMessage) error
	GetMessages(ctx context.Context, conversationID string) ([]model.ChatMessage, error)
	ClearMessages(ctx context.Context, conversationID string) error
}
