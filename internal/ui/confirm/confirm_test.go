package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestImmediate(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want Decision
	}{
		{"accept", []tea.KeyMsg{runes("y")}, Accepted},
		{"accept upper case", []tea.KeyMsg{runes("Y")}, Accepted},
		{"deny", []tea.KeyMsg{runes("n")}, Denied},
		{"other keys keep default", []tea.KeyMsg{runes("x"), runes("1")}, Denied},
		{"escape", []tea.KeyMsg{{Type: tea.KeyEsc}}, Denied},
		{"ctrl+c after other key", []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}}, Denied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Prompt = "Empty the trash?"
			m.DefaultValue = Denied
			m.Immediately = true
			m.Init()

			for _, k := range tt.keys {
				m.Update(k)
			}
			assert.Equal(t, tt.want, m.Selected())
		})
	}
}

func TestImmediateQuits(t *testing.T) {
	m := New()
	m.Immediately = true
	m.Init()

	_, cmd := m.Update(runes("x"))
	assert.Nil(t, cmd)

	_, cmd = m.Update(runes("y"))
	if assert.NotNil(t, cmd) {
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
	assert.Contains(t, m.View(), "y\n")
}

func TestInput(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		want  Decision
	}{
		{"yes", "y", Accepted},
		{"no", "n", Denied},
		{"empty takes default", "", Denied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.DefaultValue = Denied
			m.Init()

			if tt.typed != "" {
				m.Update(runes(tt.typed))
			}
			_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
			assert.NotNil(t, cmd)
			assert.Equal(t, tt.want, m.Selected())
		})
	}
}

func TestPlaceholder(t *testing.T) {
	m := New()
	m.DefaultValue = Denied
	m.Prompt = "Continue?"
	m.Init()
	assert.Contains(t, m.View(), "/N")
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.True(t, Accepted.IsAccepted())
	assert.False(t, Denied.IsAccepted())
}
