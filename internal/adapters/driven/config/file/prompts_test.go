package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_NoIOInConstructor(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	_, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)

	for _, f := range []string{"product_analyze.txt", "style_advice.txt", "README.md"} {
		assert.FileExists(t, filepath.Join(dir, f))
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptStyleAdvice)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Shopper question: %s")
	assert.Equal(t, 2, placeholders(prompt))
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()
	custom := "Stylist here. Q: %s Extra: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style_advice.txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptStyleAdvice)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_Load_WrongPlaceholdersFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style_advice.txt"), []byte("no placeholders"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptStyleAdvice)
	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptStyleAdvice], prompt)
}

func TestPromptStore_Load_FallsBackWhenFileRemoved(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "product_analyze.txt")))
	store.Reload()

	prompt, err := store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptProductAnalyze], prompt)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}

func TestPromptStore_Load_InitFailureUsesDefaults(t *testing.T) {
	store, err := NewPromptStore("/dev/null/prompts")
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptProductAnalyze], prompt)

	_, err = store.Load("nonexistent")
	assert.Error(t, err)
}

func TestPromptStore_Reload_ClearsCache(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)

	path := filepath.Join(dir, "product_analyze.txt")
	require.NoError(t, os.WriteFile(path, []byte("edited"), 0600))

	prompt, err := store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)
	assert.NotEqual(t, "edited", prompt, "cached value is returned until Reload")

	store.Reload()
	prompt, err = store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)
	assert.Equal(t, "edited", prompt)
}

func TestPromptStore_DoesNotOverwriteExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "product_analyze.txt")
	require.NoError(t, os.WriteFile(path, []byte("mine"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)
	_, _ = store.Load(driven.PromptStyleAdvice)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestPromptStore_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "product_analyze.txt"), []byte("\n\n  describe it  \n\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptProductAnalyze)
	require.NoError(t, err)
	assert.Equal(t, "describe it", prompt)
}

func TestPromptStore_Load_ConcurrentAccess(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := store.Load(driven.PromptProductAnalyze)
			assert.NoError(t, err)
			results <- p
		}()
	}
	wg.Wait()
	close(results)

	for p := range results {
		assert.Equal(t, defaultPrompts[driven.PromptProductAnalyze], p)
	}
}
