package ai

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure RateLimitedLLM implements the interface.
var _ driven.LLMService = (*RateLimitedLLM)(nil)

// Operation names reported to the latency recorder.
const (
	OpLLMChat     = "llm.chat"
	OpLLMGenerate = "llm.generate"
)

// RateLimitConfig holds rate limiting configuration for LLM calls.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit. Zero disables limiting.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// RateLimitedLLM throttles an LLM service with a token bucket and records
// the latency of each call. Time spent waiting for a token is not recorded.
type RateLimitedLLM struct {
	next     driven.LLMService
	limiter  *rate.Limiter
	recorder driven.LatencyRecorder
}

// NewRateLimitedLLM wraps next. recorder may be nil.
func NewRateLimitedLLM(next driven.LLMService, cfg RateLimitConfig, recorder driven.LatencyRecorder) *RateLimitedLLM {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.BurstSize < 1 {
		cfg.BurstSize = 1
	}
	return &RateLimitedLLM{
		next:     next,
		limiter:  rate.NewLimiter(limit, cfg.BurstSize),
		recorder: recorder,
	}
}

// Generate waits for a token, then delegates.
func (r *RateLimitedLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	defer r.observe(OpLLMGenerate, time.Now())
	return r.next.Generate(ctx, prompt, opts)
}

// Chat waits for a token, then delegates.
func (r *RateLimitedLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	defer r.observe(OpLLMChat, time.Now())
	return r.next.Chat(ctx, messages, opts)
}

// Allow reports whether a call could start now without waiting.
func (r *RateLimitedLLM) Allow() bool {
	if r.limiter.Limit() == rate.Inf {
		return true
	}
	return r.limiter.Tokens() >= 1
}

// ModelName returns the wrapped model name.
func (r *RateLimitedLLM) ModelName() string {
	return r.next.ModelName()
}

// Ping is not throttled.
func (r *RateLimitedLLM) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// Close closes the wrapped service.
func (r *RateLimitedLLM) Close() error {
	return r.next.Close()
}

func (r *RateLimitedLLM) observe(op string, start time.Time) {
	if r.recorder != nil {
		r.recorder.Record(op, time.Since(start))
	}
}
