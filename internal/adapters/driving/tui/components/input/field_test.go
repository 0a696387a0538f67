package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driving/tui/styles"
)

func typeText(f *Field, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewField(t *testing.T) {
	f := NewField(styles.DefaultStyles(), "Name", "your name")

	require.NotNil(t, f)
	assert.Equal(t, "Name", f.Label())
	assert.Empty(t, f.Value())
	assert.False(t, f.Focused())
}

func TestNewField_NilStyles(t *testing.T) {
	f := NewField(nil, "Phone", "")

	require.NotNil(t, f)
	assert.NotNil(t, f.styles)
}

func TestField_TypingRequiresFocus(t *testing.T) {
	f := NewField(nil, "Name", "")

	typeText(f, "ab")
	assert.Empty(t, f.Value())

	f.Focus()
	typeText(f, "Rahim")
	assert.Equal(t, "Rahim", f.Value())
	assert.True(t, f.Focused())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_View(t *testing.T) {
	f := NewField(nil, "Address", "")
	f.SetValue("Dhaka")

	view := f.View()
	assert.Contains(t, view, "Address")
	assert.Contains(t, view, "Dhaka")
}

func TestNewPasswordField(t *testing.T) {
	f := NewPasswordField(nil, "Password")
	assert.True(t, f.Focused())

	typeText(f, "secret")
	assert.Equal(t, "secret", f.Value())
	assert.NotContains(t, f.View(), "secret")
}

func TestField_SetWidthAndReset(t *testing.T) {
	f := NewField(nil, "Name", "")

	f.SetWidth(80)
	assert.Equal(t, 80, f.Width())
	assert.Equal(t, 64, f.textinput.Width)

	f.SetWidth(10)
	assert.Equal(t, 20, f.textinput.Width)

	f.SetValue("x")
	f.Reset()
	assert.Empty(t, f.Value())
}
