package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads AI prompts from user-editable files on disk, falling
// back to the built-in defaults.
//
// The directory and default files are created on the first Load, not in
// the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts are written to disk on first use and used whenever a file
// is missing or unusable.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptProductAnalyze: `You are a product cataloguer for an online clothing and lifestyle shop.
Look at the attached product photo and reply with ONLY a JSON object:
{"name": "...", "description": "...", "category": "..."}

- name: a short, catchy product name
- description: two or three sentences a shopper would find useful
- category: exactly one of Saree, Panjabi, Three-Piece, Kurti, Shirt, T-Shirt, Pant, Shoes, Bags, Accessories, Cosmetics, Kids`,

	driven.PromptStyleAdvice: `You are a friendly fashion stylist for an online clothing shop.
Answer the shopper's question and reply with ONLY a JSON object:
{"advice": "...", "suggestedColors": ["..."], "vibe": "..."}

Shopper question: %s
Context: %s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.haat/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".haat", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// A customised file must keep the same number of %s placeholders as the
// default; otherwise the default is used.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	if def, ok := defaultPrompts[name]; ok && placeholders(prompt) != placeholders(def) {
		logger.Warn("prompt %s.txt has %d placeholders, expected %d; using default",
			name, placeholders(prompt), placeholders(def))
		prompt = def
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

func placeholders(prompt string) int {
	return strings.Count(prompt, "%s")
}

// initialise creates the prompt directory, default files and README.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	content := `# Haat Prompts

Prompts used by the product photo analyzer and the style assistant.

## Files

- ` + "`product_analyze.txt`" + ` - Suggests a name, description and category from a product photo
- ` + "`style_advice.txt`" + ` - Answers a shopper's styling question

Both prompts must ask for a single JSON object with the same keys as the
defaults.

## Placeholders

` + "`style_advice.txt`" + ` takes two ` + "`%s`" + ` placeholders: the shopper's question, then
any extra context. A file with the wrong number of placeholders is ignored
and the default is used.
`
	return os.WriteFile(path, []byte(content), 0600)
}
