package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// mockLLM returns canned replies and records the last request.
type mockLLM struct {
	mu           sync.Mutex
	reply        string
	err          error
	lastMessages []driven.ChatMessage
	lastPrompt   string
	lastChatOpts driven.ChatOptions
	block        bool
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.lastPrompt = prompt
	block := m.block
	m.mu.Unlock()
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.reply, m.err
}

func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.lastMessages = messages
	m.lastChatOpts = opts
	block := m.block
	m.mu.Unlock()
	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string            { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockPromptStore serves fixed templates.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", errors.New("unknown prompt")
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// mockNormalizer records the options it was called with.
type mockNormalizer struct {
	last domain.NormalizeOptions
	err  error
}

func (m *mockNormalizer) Normalize(
	_ context.Context,
	r io.Reader,
	opts domain.NormalizeOptions,
) (*domain.InlineImage, error) {
	m.last = opts
	if m.err != nil {
		return nil, m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &domain.InlineImage{MediaType: "image/jpeg", Data: data}, nil
}

// mockRenderer writes the invoice number.
type mockRenderer struct {
	err error
}

func (m *mockRenderer) Render(_ context.Context, inv *domain.Invoice, w io.Writer) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, "INVOICE "+inv.Number)
	return err
}

func (m *mockRenderer) ContentType() string { return "text/plain" }

// failingDecrementStore wraps a product store and fails stock updates.
type failingDecrementStore struct {
	driven.ProductStore
	err error
}

func (f *failingDecrementStore) DecrementStock(
	_ context.Context,
	_ string,
	_ domain.StockDecrement,
) (*domain.Product, error) {
	return nil, f.err
}

// mockRecorder collects latency summaries.
type mockRecorder struct {
	summaries []domain.LatencySummary
}

func (m *mockRecorder) Record(op string, d time.Duration) {
	m.summaries = append(m.summaries, domain.LatencySummary{Operation: op, Count: 1, Max: d})
}

func (m *mockRecorder) Snapshot() []domain.LatencySummary { return m.summaries }

// fixedClock returns successive times one second apart.
func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}
