package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillswapserver/internal/domain"
)

type ChatsStore interface {
	GetOrCreate(ctx context.Context, swapRequestID, userA, userB string) (domain.Chat, error)
	AppendMessage(ctx context.Context, chatID, senderID, senderName, content string, when time.Time) (domain.ChatMessage, error)
}

type ChatService struct {
	Chats    ChatsStore
	Requests SwapRequestsStore
	Users    UsersStore
	Now      func() time.Time
}

// GetOrCreate returns the chat for a swap request, creating it lazily. The
// viewer must be a participant of the swap itself; a non-participant gets
// NotFound so the request's existence is not revealed.
func (s *ChatService) GetOrCreate(ctx context.Context, viewerID, swapRequestID string) (domain.Chat, error) {
	r, err := s.requestForParticipant(ctx, viewerID, swapRequestID)
	if err != nil {
		return domain.Chat{}, err
	}
	return s.Chats.GetOrCreate(ctx, r.ID, r.FromUser.ID, r.ToUser.ID)
}

// Append stores one message. The sender's display name is snapshotted at
// write time, as the stored history keeps the name the message was sent under.
func (s *ChatService) Append(ctx context.Context, viewerID, swapRequestID, content string) (domain.ChatMessage, error) {
	if s.Now == nil {
		s.Now = time.Now
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.ChatMessage{}, domain.NewValidationError(map[string]string{"message": "required"})
	}

	r, err := s.requestForParticipant(ctx, viewerID, swapRequestID)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	sender, err := s.Users.GetUserByID(ctx, viewerID)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	chat, err := s.Chats.GetOrCreate(ctx, r.ID, r.FromUser.ID, r.ToUser.ID)
	if err != nil {
		return domain.ChatMessage{}, err
	}

	return s.Chats.AppendMessage(ctx, chat.ID, sender.ID, sender.Name, content, s.Now())
}

func (s *ChatService) requestForParticipant(ctx context.Context, viewerID, swapRequestID string) (domain.SwapRequest, error) {
	r, err := s.Requests.GetByID(ctx, swapRequestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.SwapRequest{}, domain.ErrNotFound
		}
		return domain.SwapRequest{}, err
	}
	if r.FromUser.ID != viewerID && r.ToUser.ID != viewerID {
		return domain.SwapRequest{}, domain.ErrNotFound
	}
	return r, nil
}
