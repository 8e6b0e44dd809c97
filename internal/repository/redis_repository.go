package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"news-agent/internal/model"
)

// redisRepository keeps conversations in Redis. Every write refreshes the
// TTL, so idle conversations expire on their own.
type redisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration) Repository {
	return &redisRepository{rdb: rdb, ttl: ttl}
}

const conversationsIndexKey = "conversations"

func (r *redisRepository) conversationKey(id string) string { return fmt.Sprintf("conversation:%s", id) }
func (r *redisRepository) messagesKey(id string) string     { return fmt.Sprintf("conversation:%s:messages", id) }

func (r *redisRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("could not encode conversation: %w", err)
	}
	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, r.conversationKey(conv.ID), data, r.ttl)
	pipe.ZAdd(ctx, conversationsIndexKey, redis.Z{Score: float64(conv.UpdatedAt.UnixNano()), Member: conv.ID})
	_, err = pipe.Exec(ctx)
	return err
}

func (r *redisRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	data, err := r.rdb.Get(ctx, r.conversationKey(conversationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var conv model.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("could not decode conversation %s: %w", conversationID, err)
	}
	return &conv, nil
}

// ListConversations returns live conversations, newest first, pruning index
// entries whose conversation has expired.
func (r *redisRepository) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	ids, err := r.rdb.ZRevRange(ctx, conversationsIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	convs := make([]*model.Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := r.GetConversation(ctx, id)
		if errors.Is(err, ErrNotFound) {
			r.rdb.ZRem(ctx, conversationsIndexKey, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

func (r *redisRepository) UpdateConversationTitle(ctx context.Context, conversationID, title string) error {
	return r.update(ctx, conversationID, func(c *model.Conversation) { c.Title = title })
}

func (r *redisRepository) UpdateConversationModel(ctx context.Context, conversationID, modelName string) error {
	return r.update(ctx, conversationID, func(c *model.Conversation) { c.Model = modelName })
}

func (r *redisRepository) update(ctx context.Context, conversationID string, apply func(*model.Conversation)) error {
	conv, err := r.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	apply(conv)
	conv.UpdatedAt = time.Now().UTC()
	if err := r.CreateConversation(ctx, conv); err != nil {
		return err
	}
	return r.rdb.Expire(ctx, r.messagesKey(conversationID), r.ttl).Err()
}

func (r *redisRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	n, err := r.rdb.Del(ctx, r.conversationKey(conversationID), r.messagesKey(conversationID)).Result()
	if err != nil {
		return err
	}
	r.rdb.ZRem(ctx, conversationsIndexKey, conversationID)
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *redisRepository) AddMessage(ctx context.Context, conversationID string, message *model.ChatMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("could not encode message: %w", err)
	}
	if _, err := r.GetConversation(ctx, conversationID); err != nil {
		return err
	}
	if err := r.rdb.RPush(ctx, r.messagesKey(conversationID), data).Err(); err != nil {
		return err
	}
	return r.update(ctx, conversationID, func(*model.Conversation) {})
}

func (r *redisRepository) GetMessages(ctx context.Context, conversationID string) ([]model.ChatMessage, error) {
	raw, err := r.rdb.LRange(ctx, r.messagesKey(conversationID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("could not decode message in conversation %s: %w", conversationID, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *redisRepository) ClearMessages(ctx context.Context, conversationID string) error {
	if _, err := r.GetConversation(ctx, conversationID); err != nil {
		return err
	}
	return r.rdb.Del(ctx, r.messagesKey(conversationID)).Err()
}
