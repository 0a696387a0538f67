package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService manages order chat threads.
type ChatService struct {
	messages driven.MessageStore
	now      func() time.Time
}

// NewChatService creates a new chat service.
func NewChatService(messages driven.MessageStore) *ChatService {
	return &ChatService{messages: messages, now: time.Now}
}

// Send appends a message to a thread.
func (s *ChatService) Send(
	ctx context.Context,
	correlationID string,
	sender domain.Sender,
	text string,
) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: message text is required", domain.ErrInvalidInput)
	}
	if correlationID == "" {
		return nil, fmt.Errorf("%w: correlation id is required", domain.ErrInvalidInput)
	}
	if !sender.IsValid() {
		return nil, fmt.Errorf("%w: unknown sender %q", domain.ErrInvalidInput, sender)
	}

	m := &domain.Message{
		ID:            uuid.NewString(),
		CorrelationID: correlationID,
		Sender:        sender,
		Text:          text,
		CreatedAt:     s.now(),
	}
	if err := s.messages.Append(ctx, m); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return m, nil
}

// Thread returns a thread, oldest first.
func (s *ChatService) Thread(ctx context.Context, correlationID string) ([]domain.Message, error) {
	return s.messages.Thread(ctx, correlationID)
}

// Watch streams thread snapshots until ctx is cancelled.
func (s *ChatService) Watch(ctx context.Context, correlationID string) (<-chan []domain.Message, error) {
	return s.messages.WatchThread(ctx, correlationID)
}

// Threads summarises every thread, most recent activity first.
func (s *ChatService) Threads(ctx context.Context) ([]domain.ThreadSummary, error) {
	all, err := s.messages.All(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.ThreadSummary)
	for _, m := range all {
		t, ok := byID[m.CorrelationID]
		if !ok {
			t = &domain.ThreadSummary{CorrelationID: m.CorrelationID}
			byID[m.CorrelationID] = t
		}
		t.Messages++
		if !m.CreatedAt.Before(t.LastAt) {
			t.LastAt = m.CreatedAt
			t.LastSender = m.Sender
			t.LastText = m.Text
		}
	}

	threads := make([]domain.ThreadSummary, 0, len(byID))
	for _, t := range byID {
		threads = append(threads, *t)
	}
	sort.Slice(threads, func(i, j int) bool {
		return threads[i].LastAt.After(threads[j].LastAt)
	})
	return threads, nil
}
