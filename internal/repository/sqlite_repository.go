package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"news-agent/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	query := "INSERT INTO conversations (id, title, model, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, conv.ID, conv.Title, conv.Model, conv.CreatedAt, conv.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, title, model, created_at, updated_at FROM conversations WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, conversationID)
	var conv model.Conversation
	err := row.Scan(&conv.ID, &conv.Title, &conv.Model, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *sqliteRepository) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	query := "SELECT id, title, model, created_at, updated_at FROM conversations ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := []*model.Conversation{}
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.Model, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, err
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *sqliteRepository) UpdateConversationTitle(ctx context.Context, conversationID, title string) error {
	return r.execOne(ctx, "UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?", title, time.Now().UTC(), conversationID)
}

func (r *sqliteRepository) UpdateConversationModel(ctx context.Context, conversationID, modelName string) error {
	return r.execOne(ctx, "UPDATE conversations SET model = ?, updated_at = ? WHERE id = ?", modelName, time.Now().UTC(), conversationID)
}

func (r *sqliteRepository) DeleteConversation(ctx context.Context, conversationID string) error {
	return r.execOne(ctx, "DELETE FROM conversations WHERE id = ?", conversationID)
}

// execOne runs a statement that must touch exactly one conversation row.
func (r *sqliteRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMessage appends a message in a transaction so the sequence number and
// the conversation timestamp move together.
func (r *sqliteRepository) AddMessage(ctx context.Context, conversationID string, message *model.ChatMessage) error {
	usage, err := nullJSON(message.Usage)
	if err != nil {
		return fmt.Errorf("could not encode usage: %w", err)
	}
	var sources sql.NullString
	if len(message.Sources) > 0 {
		if sources, err = nullJSON(message.Sources); err != nil {
			return fmt.Errorf("could not encode sources: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?", time.Now().UTC(), conversationID)
	if err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrNotFound
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE conversation_id = ?", conversationID).Scan(&seq); err != nil {
		return fmt.Errorf("could not allocate message sequence: %w", err)
	}

	insert := `
		INSERT INTO messages (id, conversation_id, seq, role, content, timestamp, usage, sources)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, insert,
		message.ID,
		conversationID,
		seq,
		message.Role,
		message.Content,
		message.Timestamp,
		usage,
		sources,
	); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessages(ctx context.Context, conversationID string) ([]model.ChatMessage, error) {
	query := `
		SELECT id, role, content, timestamp, usage, sources
		FROM messages
		WHERE conversation_id = ?
		ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.ChatMessage{}
	for rows.Next() {
		var msg model.ChatMessage
		var usage, sources sql.NullString
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.Timestamp, &usage, &sources); err != nil {
			return nil, err
		}
		if usage.Valid {
			msg.Usage = &model.UsageStats{}
			if err := json.Unmarshal([]byte(usage.String), msg.Usage); err != nil {
				return nil, fmt.Errorf("could not decode usage of message %s: %w", msg.ID, err)
			}
		}
		if sources.Valid {
			if err := json.Unmarshal([]byte(sources.String), &msg.Sources); err != nil {
				return nil, fmt.Errorf("could not decode sources of message %s: %w", msg.ID, err)
			}
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) ClearMessages(ctx context.Context, conversationID string) error {
	if _, err := r.GetConversation(ctx, conversationID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM messages WHERE conversation_id = ?", conversationID)
	return err
}

func nullJSON(v any) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	if u, ok := v.(*model.UsageStats); ok && u == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
