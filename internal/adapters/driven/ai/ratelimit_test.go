package ai

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

type fakeLLM struct {
	mu     sync.Mutex
	calls  int
	reply  string
	err    error
	closed bool
}

func (f *fakeLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) Chat(_ context.Context, _ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) ModelName() string            { return "fake" }
func (f *fakeLLM) Ping(_ context.Context) error { return nil }
func (f *fakeLLM) Close() error {
	f.closed = true
	return nil
}

type fakeRecorder struct {
	mu  sync.Mutex
	ops []string
}

func (r *fakeRecorder) Record(op string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

func (r *fakeRecorder) Snapshot() []domain.LatencySummary { return nil }

func TestRateLimitedLLM_DelegatesAndRecords(t *testing.T) {
	inner := &fakeLLM{reply: `{"vibe":"calm"}`}
	rec := &fakeRecorder{}
	llm := NewRateLimitedLLM(inner, RateLimitConfig{}, rec)

	out, err := llm.Chat(context.Background(), nil, driven.ChatOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{"vibe":"calm"}`, out)

	_, err = llm.Generate(context.Background(), "hi", driven.GenerateOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, []string{OpLLMChat, OpLLMGenerate}, rec.ops)
	assert.Equal(t, "fake", llm.ModelName())
	require.NoError(t, llm.Close())
	assert.True(t, inner.closed)
}

func TestRateLimitedLLM_RecordsFailures(t *testing.T) {
	inner := &fakeLLM{err: errors.New("boom")}
	rec := &fakeRecorder{}
	llm := NewRateLimitedLLM(inner, RateLimitConfig{RequestsPerSecond: 100, BurstSize: 5}, rec)

	_, err := llm.Chat(context.Background(), nil, driven.ChatOptions{})
	assert.EqualError(t, err, "boom")
	assert.Len(t, rec.ops, 1)
}

func TestRateLimitedLLM_WaitHonoursContext(t *testing.T) {
	inner := &fakeLLM{}
	// One token per minute: the second call cannot start before the deadline.
	llm := NewRateLimitedLLM(inner, RateLimitConfig{RequestsPerSecond: 1.0 / 60, BurstSize: 1}, nil)

	_, err := llm.Generate(context.Background(), "first", driven.GenerateOptions{})
	require.NoError(t, err)
	assert.False(t, llm.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = llm.Generate(ctx, "second", driven.GenerateOptions{})
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRateLimitedLLM_ZeroRateIsUnlimited(t *testing.T) {
	inner := &fakeLLM{}
	llm := NewRateLimitedLLM(inner, RateLimitConfig{}, nil)

	for i := 0; i < 50; i++ {
		_, err := llm.Generate(context.Background(), "x", driven.GenerateOptions{})
		require.NoError(t, err)
	}
	assert.Equal(t, 50, inner.calls)
	assert.True(t, llm.Allow())
}
