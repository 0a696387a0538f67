package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Ensure the AI services implement their interfaces.
var (
	_ driving.ProductAnalyzer = (*ProductAnalyzer)(nil)
	_ driving.StyleAssistant  = (*StyleAssistant)(nil)
	_ driven.PromptStoreAware = (*ProductAnalyzer)(nil)
	_ driven.PromptStoreAware = (*StyleAssistant)(nil)
)

// defaultAITimeout bounds a single AI call when none is configured.
const defaultAITimeout = 60 * time.Second

// defaultAnalyzePrompt is the fallback prompt when no PromptStore is configured.
const defaultAnalyzePrompt = `You are a product cataloguer for an online clothing and lifestyle shop.
Look at the attached product photo and reply with ONLY a JSON object:
{"name": "...", "description": "...", "category": "..."}

- name: a short, catchy product name
- description: two or three sentences a shopper would find useful
- category: exactly one of Saree, Panjabi, Three-Piece, Kurti, Shirt, T-Shirt, Pant, Shoes, Bags, Accessories, Cosmetics, Kids`

// defaultStylePrompt is the fallback prompt when no PromptStore is configured.
const defaultStylePrompt = `You are a friendly fashion stylist for an online clothing shop.
Answer the shopper's question and reply with ONLY a JSON object:
{"advice": "...", "suggestedColors": ["..."], "vibe": "..."}

Shopper question: %s
Context: %s`

// AIConfig bounds AI calls.
type AIConfig struct {
	// Timeout bounds a single call. Zero means 60s.
	Timeout time.Duration
}

type aiBase struct {
	llm         driven.LLMService
	promptStore driven.PromptStore
	timeout     time.Duration
}

func newAIBase(llm driven.LLMService, cfg AIConfig) aiBase {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAITimeout
	}
	return aiBase{llm: llm, timeout: cfg.Timeout}
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (b *aiBase) loadPrompt(name, fallback string) string {
	if b.promptStore == nil {
		return fallback
	}
	prompt, err := b.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// ProductAnalyzer suggests listing fields from a product photo.
type ProductAnalyzer struct {
	aiBase
}

// NewProductAnalyzer creates a new product analyzer. llm may be nil.
func NewProductAnalyzer(llm driven.LLMService, cfg AIConfig) *ProductAnalyzer {
	return &ProductAnalyzer{aiBase: newAIBase(llm, cfg)}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (a *ProductAnalyzer) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// Available reports whether an LLM is configured.
func (a *ProductAnalyzer) Available() bool {
	return a.llm != nil
}

// Analyze returns a suggestion for the photo.
func (a *ProductAnalyzer) Analyze(
	ctx context.Context,
	photo *domain.InlineImage,
) (*domain.ProductSuggestion, error) {
	if a.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if photo == nil || len(photo.Data) == 0 {
		return nil, fmt.Errorf("%w: photo is required", domain.ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	reply, err := a.llm.Chat(ctx, []driven.ChatMessage{{
		Role:    "user",
		Content: a.loadPrompt(driven.PromptProductAnalyze, defaultAnalyzePrompt),
		Images:  []domain.InlineImage{*photo},
	}}, driven.ChatOptions{MaxTokens: 512, Temperature: 0.4, JSON: true})
	if err != nil {
		logger.Warn("product analysis failed: %v", err)
		return nil, fmt.Errorf("analyze photo: %w", err)
	}

	var s domain.ProductSuggestion
	if err := DecodeJSONReply(reply, &s); err != nil {
		logger.Warn("product analysis reply unusable: %v", err)
		return nil, err
	}
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.Category = strings.TrimSpace(s.Category)
	if s.IsEmpty() {
		return nil, fmt.Errorf("%w: empty suggestion", domain.ErrUnparsableSuggestion)
	}
	return &s, nil
}

// StyleAssistant answers shopper styling questions.
type StyleAssistant struct {
	aiBase
}

// NewStyleAssistant creates a new style assistant. llm may be nil.
func NewStyleAssistant(llm driven.LLMService, cfg AIConfig) *StyleAssistant {
	return &StyleAssistant{aiBase: newAIBase(llm, cfg)}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
func (a *StyleAssistant) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// Available reports whether an LLM is configured.
func (a *StyleAssistant) Available() bool {
	return a.llm != nil
}

// Advise answers query, optionally grounded by extra context.
func (a *StyleAssistant) Advise(ctx context.Context, query, extra string) (*domain.StyleAdvice, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if a.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	if strings.TrimSpace(extra) == "" {
		extra = "none"
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(a.loadPrompt(driven.PromptStyleAdvice, defaultStylePrompt), query, extra)
	reply, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{MaxTokens: 512, Temperature: 0.7})
	if err != nil {
		logger.Warn("style advice failed: %v", err)
		return nil, fmt.Errorf("style advice: %w", err)
	}

	var advice domain.StyleAdvice
	if err := DecodeJSONReply(reply, &advice); err != nil {
		logger.Warn("style advice reply unusable: %v", err)
		return nil, err
	}
	if strings.TrimSpace(advice.Advice) == "" {
		return nil, fmt.Errorf("%w: empty advice", domain.ErrUnparsableSuggestion)
	}
	return &advice, nil
}

// DecodeJSONReply decodes a model reply that should be a JSON object.
// Surrounding prose and markdown code fences are tolerated.
func DecodeJSONReply(reply string, v any) error {
	content := strings.TrimSpace(reply)
	if err := json.Unmarshal([]byte(content), v); err == nil {
		return nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return fmt.Errorf("%w: no JSON object in reply", domain.ErrUnparsableSuggestion)
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnparsableSuggestion, err)
	}
	return nil
}
