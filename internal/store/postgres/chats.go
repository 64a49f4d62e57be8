package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skillswapserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatsStore struct {
	pool *pgxpool.Pool
}

func NewChatsStore(pool *pgxpool.Pool) *ChatsStore {
	return &ChatsStore{pool: pool}
}

// GetOrCreate fetches the chat keyed by the swap request, creating it lazily
// with the swap's two participants. ON CONFLICT DO NOTHING keeps concurrent
// first reads from racing.
func (s *ChatsStore) GetOrCreate(ctx context.Context, swapRequestID, userA, userB string) (domain.Chat, error) {
	const insertQ = `
		INSERT INTO chats (swap_request_id, user_a_id, user_b_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (swap_request_id) DO NOTHING
	`
	if _, err := s.pool.Exec(ctx, insertQ, swapRequestID, userA, userB); err != nil {
		return domain.Chat{}, fmt.Errorf("create chat: %w", err)
	}

	const q = `
		SELECT id, swap_request_id, user_a_id, user_b_id, last_message_at, created_at
		FROM chats
		WHERE swap_request_id = $1
	`

	var (
		c         domain.Chat
		idUUID    pgtype.UUID
		swapUUID  pgtype.UUID
		userAUUID pgtype.UUID
		userBUUID pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, swapRequestID).Scan(
		&idUUID,
		&swapUUID,
		&userAUUID,
		&userBUUID,
		&c.LastMessageAt,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Chat{}, domain.ErrNotFound
		}
		return domain.Chat{}, fmt.Errorf("get chat: %w", err)
	}

	c.ID = uuidOrEmpty(idUUID)
	c.SwapRequestID = uuidOrEmpty(swapUUID)
	c.Participants = []string{uuidOrEmpty(userAUUID), uuidOrEmpty(userBUUID)}

	c.Messages, err = s.listMessages(ctx, c.ID)
	if err != nil {
		return domain.Chat{}, err
	}
	return c, nil
}

// AppendMessage stores a message and bumps last_message_at in one statement.
func (s *ChatsStore) AppendMessage(ctx context.Context, chatID, senderID, senderName, content string, when time.Time) (domain.ChatMessage, error) {
	const q = `
		WITH msg AS (
			INSERT INTO chat_messages (chat_id, sender_id, sender_name, content, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		)
		UPDATE chats c
		SET last_message_at = msg.created_at
		FROM msg
		WHERE c.id = $1
		RETURNING msg.id, msg.created_at
	`

	var idUUID pgtype.UUID
	m := domain.ChatMessage{SenderID: senderID, SenderName: senderName, Content: content}
	if err := s.pool.QueryRow(ctx, q, chatID, senderID, senderName, content, when).Scan(&idUUID, &m.Timestamp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ChatMessage{}, domain.ErrNotFound
		}
		return domain.ChatMessage{}, fmt.Errorf("append chat message: %w", err)
	}

	m.ID = uuidOrEmpty(idUUID)
	return m, nil
}

// Full history every call: no pagination at this system's scale.
func (s *ChatsStore) listMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	const q = `
		SELECT id, sender_id, sender_name, content, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, q, chatID)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	out := []domain.ChatMessage{}
	for rows.Next() {
		var (
			m          domain.ChatMessage
			idUUID     pgtype.UUID
			senderUUID pgtype.UUID
		)
		if err := rows.Scan(&idUUID, &senderUUID, &m.SenderName, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.ID = uuidOrEmpty(idUUID)
		m.SenderID = uuidOrEmpty(senderUUID)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	return out, nil
}
