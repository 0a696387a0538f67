package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

func newTestChat() *ChatService {
	svc := NewChatService(memory.NewMessageStore())
	svc.now = fixedClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	return svc
}

func TestChatService_SendAndThread(t *testing.T) {
	svc := newTestChat()
	ctx := context.Background()

	_, err := svc.Send(ctx, "s1", domain.SenderCustomer, " Is XL available? ")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "s1", domain.SenderAdmin, "Yes")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "s2", domain.SenderCustomer, "Hello")
	require.NoError(t, err)

	thread, err := svc.Thread(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "Is XL available?", thread[0].Text)
	assert.Equal(t, domain.SenderCustomer, thread[0].Sender)
	assert.Equal(t, domain.SenderAdmin, thread[1].Sender)
	assert.True(t, thread[0].CreatedAt.Before(thread[1].CreatedAt))
}

func TestChatService_Send_Invalid(t *testing.T) {
	svc := newTestChat()
	tests := []struct {
		name   string
		corrID string
		sender domain.Sender
		text   string
	}{
		{"empty text", "s1", domain.SenderCustomer, "   "},
		{"empty correlation", "", domain.SenderCustomer, "hi"},
		{"unknown sender", "s1", domain.Sender("BOT"), "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Send(context.Background(), tt.corrID, tt.sender, tt.text)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	all, err := svc.Threads(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestChatService_Threads(t *testing.T) {
	svc := newTestChat()
	ctx := context.Background()

	for _, m := range []struct {
		corr, text string
		sender     domain.Sender
	}{
		{"old", "first", domain.SenderCustomer},
		{"new", "hello", domain.SenderCustomer},
		{"old", "reply", domain.SenderAdmin},
		{"new", "thanks", domain.SenderCustomer},
	} {
		_, err := svc.Send(ctx, m.corr, m.sender, m.text)
		require.NoError(t, err)
	}

	threads, err := svc.Threads(ctx)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, "new", threads[0].CorrelationID)
	assert.Equal(t, 2, threads[0].Messages)
	assert.Equal(t, "thanks", threads[0].LastText)

	assert.Equal(t, "old", threads[1].CorrelationID)
	assert.Equal(t, domain.SenderAdmin, threads[1].LastSender)
	assert.Equal(t, "reply", threads[1].LastText)
}

func TestChatService_Watch(t *testing.T) {
	svc := newTestChat()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := svc.Watch(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, <-ch)

	_, err = svc.Send(context.Background(), "s2", domain.SenderCustomer, "other thread")
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), "s1", domain.SenderCustomer, "hi")
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-ch:
			if len(snap) == 1 {
				assert.Equal(t, "hi", snap[0].Text)
				return
			}
		case <-deadline:
			t.Fatal("no snapshot with the new message")
		}
	}
}
