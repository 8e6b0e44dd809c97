package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"news-agent/internal/agent"
	app_errors "news-agent/internal/errors"
	"news-agent/internal/llm"
	"news-agent/internal/model"
	"news-agent/internal/repository"
	"news-agent/internal/search"
)

const titleLength = 50

// AgentFactory builds the agent that answers queries with the given model.
type AgentFactory func(m llm.ModelInfo) *agent.Agent

// CreateConversationRequest is the body of a new conversation request.
type CreateConversationRequest struct {
	Title string `json:"title" validate:"max=100" example:"Chip export news"`
	Model string `json:"model" validate:"max=100" example:"gpt-4o"`
}

// ConversationService owns conversation state and runs turns through one
// agent per model.
type ConversationService struct {
	repo    repository.Repository
	catalog llm.Catalog
	factory AgentFactory
	now     func() time.Time

	mu       sync.Mutex
	agents   map[string]*agent.Agent
	inFlight map[string]struct{}
}

func NewConversationService(repo repository.Repository, catalog llm.Catalog, factory AgentFactory) *ConversationService {
	return &ConversationService{
		repo:     repo,
		catalog:  catalog,
		factory:  factory,
		now:      func() time.Time { return time.Now().UTC() },
		agents:   make(map[string]*agent.Agent),
		inFlight: make(map[string]struct{}),
	}
}

// CreateConversation starts an empty conversation. An empty model selects the
// catalog default; an unknown one is a validation error.
func (s *ConversationService) CreateConversation(ctx context.Context, req *CreateConversationRequest) (*model.Conversation, error) {
	info := s.catalog.Default()
	if req.Model != "" {
		var ok bool
		if info, ok = s.catalog.Lookup(req.Model); !ok {
			return nil, fmt.Errorf("%w: unknown model %q", app_errors.ErrValidation, req.Model)
		}
	}

	now := s.now()
	conv := &model.Conversation{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Model:     info.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, fmt.Errorf("could not create conversation: %w", err)
	}
	slog.Info("Created conversation", "conversation_id", conv.ID, "model", conv.Model)
	return conv, nil
}

func (s *ConversationService) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	return s.repo.ListConversations(ctx)
}

// GetConversation returns the conversation with all its messages.
func (s *ConversationService) GetConversation(ctx context.Context, conversationID string) (*model.FullConversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, translateRepoError(err, "could not get conversation")
	}
	messages, err := s.repo.GetMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("could not get messages: %w", err)
	}
	return &model.FullConversation{Conversation: *conv, Messages: messages}, nil
}

func (s *ConversationService) DeleteConversation(ctx context.Context, conversationID string) error {
	slog.Info("Deleting conversation", "conversation_id", conversationID)
	return translateRepoError(s.repo.DeleteConversation(ctx, conversationID), "could not delete conversation")
}

// UpdateConversationModel switches the model used for the following turns.
func (s *ConversationService) UpdateConversationModel(ctx context.Context, conversationID, modelName string) error {
	info, ok := s.catalog.Lookup(modelName)
	if !ok {
		return fmt.Errorf("%w: unknown model %q", app_errors.ErrValidation, modelName)
	}
	return translateRepoError(s.repo.UpdateConversationModel(ctx, conversationID, info.Name), "could not update model")
}

// ClearConversation drops every message but keeps the conversation itself.
func (s *ConversationService) ClearConversation(ctx context.Context, conversationID string) error {
	slog.Info("Clearing conversation", "conversation_id", conversationID)
	return translateRepoError(s.repo.ClearMessages(ctx, conversationID), "could not clear conversation")
}

// HandleMessage runs one blocking turn and returns the stored assistant message.
func (s *ConversationService) HandleMessage(ctx context.Context, conversationID, content string) (*model.ChatMessage, error) {
	conv, done, err := s.begin(ctx, conversationID, content)
	if err != nil {
		return nil, err
	}
	defer done()

	answer := s.agentFor(conv.Model).Run(ctx, content)
	return s.finish(ctx, conv.ID, answer)
}

// HandleMessageStream runs one streaming turn. Fragments are forwarded as
// they arrive; the final chunk has Done set and carries the sources and usage
// of the turn. ch is always closed.
func (s *ConversationService) HandleMessageStream(ctx context.Context, conversationID, content string, ch chan<- model.StreamResponse) {
	defer close(ch)

	conv, done, err := s.begin(ctx, conversationID, content)
	if err != nil {
		ch <- model.StreamResponse{Error: err.Error(), Done: true}
		return
	}
	defer done()

	fragments := make(chan string)
	answers := make(chan *agent.Answer, 1)
	go func() {
		answers <- s.agentFor(conv.Model).RunStream(ctx, content, fragments)
	}()

	for fragment := range fragments {
		select {
		case ch <- model.StreamResponse{Content: fragment}:
		case <-ctx.Done():
		}
	}
	answer := <-answers

	msg, err := s.finish(ctx, conv.ID, answer)
	if err != nil {
		slog.Error("Failed to save streamed assistant message", "conversation_id", conv.ID, "error", err)
		ch <- model.StreamResponse{Done: true, Error: "could not save the response"}
		return
	}
	ch <- model.StreamResponse{Done: true, Sources: msg.Sources, Usage: msg.Usage}
}

// begin validates the turn, marks the conversation busy and stores the user
// message. The returned func releases the conversation.
func (s *ConversationService) begin(ctx context.Context, conversationID, content string) (*model.Conversation, func(), error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, fmt.Errorf("%w: message content is required", app_errors.ErrValidation)
	}

	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, nil, translateRepoError(err, "could not get conversation")
	}

	s.mu.Lock()
	if _, busy := s.inFlight[conversationID]; busy {
		s.mu.Unlock()
		return nil, nil, fmt.Errorf("%w: conversation %s is already answering a message", app_errors.ErrBusy, conversationID)
	}
	s.inFlight[conversationID] = struct{}{}
	s.mu.Unlock()
	done := func() {
		s.mu.Lock()
		delete(s.inFlight, conversationID)
		s.mu.Unlock()
	}

	userMessage := &model.ChatMessage{ID: uuid.NewString(), Role: model.RoleUser, Content: content, Timestamp: s.now()}
	if err := s.repo.AddMessage(ctx, conversationID, userMessage); err != nil {
		done()
		return nil, nil, translateRepoError(err, "could not save user message")
	}

	if conv.Title == "" {
		title := truncate(content, titleLength)
		if err := s.repo.UpdateConversationTitle(ctx, conversationID, title); err != nil {
			slog.Warn("Failed to set conversation title", "conversation_id", conversationID, "error", err)
		} else {
			conv.Title = title
		}
	}
	return conv, done, nil
}

// finish stores the assistant message of a turn. Every turn stores exactly
// one, whether or not the completion succeeded.
func (s *ConversationService) finish(ctx context.Context, conversationID string, answer *agent.Answer) (*model.ChatMessage, error) {
	if answer.Err != nil {
		slog.Warn("Turn answered with fallback content", "conversation_id", conversationID, "error", answer.Err)
	}
	if answer.Outcome.Status == search.StatusDegraded {
		slog.Info("Turn used placeholder search results", "conversation_id", conversationID, "reason", answer.Outcome.Reason)
	}

	msg := &model.ChatMessage{
		ID:        uuid.NewString(),
		Role:      model.RoleAssistant,
		Content:   answer.Content,
		Timestamp: s.now(),
		Usage:     answer.Usage,
		Sources:   answer.Sources(),
	}
	// The request context may already be cancelled by a disconnected client.
	saveCtx := context.WithoutCancel(ctx)
	if err := s.repo.AddMessage(saveCtx, conversationID, msg); err != nil {
		return nil, translateRepoError(err, "could not save assistant message")
	}
	return msg, nil
}

// agentFor returns the cached agent for a model, creating it on first use.
func (s *ConversationService) agentFor(modelName string) *agent.Agent {
	info := s.catalog.Resolve(modelName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.agents[info.Name]; ok {
		return a
	}
	a := s.factory(info)
	s.agents[info.Name] = a
	slog.Debug("Created agent", "model", info.Name, "path", info.Path)
	return a
}

func translateRepoError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", msg, app_errors.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// truncate shortens a string to n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
