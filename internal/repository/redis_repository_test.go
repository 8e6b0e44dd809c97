package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-agent/internal/model"
	"news-agent/internal/repository"
)

// setupRedisRepo connects to REDIS_TEST_ADDR and flushes DB 15 around the
// test. It skips when no server is configured.
func setupRedisRepo(t *testing.T, ttl time.Duration) repository.Repository {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())
	require.NoError(t, rdb.FlushDB(ctx).Err())
	t.Cleanup(func() {
		_ = rdb.FlushDB(context.Background()).Err()
		_ = rdb.Close()
	})
	return repository.NewRedisRepository(rdb, ttl)
}

func TestRedisRepository_Lifecycle(t *testing.T) {
	repo := setupRedisRepo(t, time.Hour)
	ctx := context.Background()

	now := time.Now().UTC()
	older := &model.Conversation{ID: "c1", Title: "first", Model: "gpt-4o", CreatedAt: now, UpdatedAt: now}
	newer := &model.Conversation{ID: "c2", Title: "second", Model: "gpt-4o", CreatedAt: now, UpdatedAt: now.Add(time.Second)}
	require.NoError(t, repo.CreateConversation(ctx, older))
	require.NoError(t, repo.CreateConversation(ctx, newer))

	convs, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, "c2", convs[0].ID)

	require.NoError(t, repo.AddMessage(ctx, "c1", &model.ChatMessage{ID: "m1", Role: model.RoleUser, Content: "chip news", Timestamp: now}))
	require.NoError(t, repo.AddMessage(ctx, "c1", &model.ChatMessage{
		ID: "m2", Role: model.RoleAssistant, Content: "Chips are up.", Timestamp: now,
		Usage: &model.UsageStats{Model: "gpt-4o", PromptTokens: 10, ResponseTokens: 3},
	}))

	convs, err = repo.ListConversations(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c1", convs[0].ID, "adding a message bumps the conversation")

	msgs, err := repo.GetMessages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "chip news", msgs[0].Content)
	require.NotNil(t, msgs[1].Usage)
	assert.Equal(t, 3, msgs[1].Usage.ResponseTokens)

	require.NoError(t, repo.UpdateConversationModel(ctx, "c1", "claude-sonnet-4"))
	conv, err := repo.GetConversation(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4", conv.Model)

	require.NoError(t, repo.ClearMessages(ctx, "c1"))
	msgs, err = repo.GetMessages(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	require.NoError(t, repo.DeleteConversation(ctx, "c1"))
	_, err = repo.GetConversation(ctx, "c1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteConversation(ctx, "c1"), repository.ErrNotFound)
	assert.ErrorIs(t, repo.ClearMessages(ctx, "c1"), repository.ErrNotFound)
	assert.ErrorIs(t, repo.AddMessage(ctx, "c1", &model.ChatMessage{ID: "m3"}), repository.ErrNotFound)
}

func TestRedisRepository_Expiry(t *testing.T) {
	repo := setupRedisRepo(t, time.Second)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.CreateConversation(ctx, &model.Conversation{ID: "c1", CreatedAt: now, UpdatedAt: now}))

	require.Eventually(t, func() bool {
		_, err := repo.GetConversation(ctx, "c1")
		return err != nil
	}, 5*time.Second, 100*time.Millisecond)

	convs, err := repo.ListConversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, convs)
}
