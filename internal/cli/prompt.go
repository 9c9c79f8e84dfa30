package cli

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aweissman/depviz/pkg/errors"
)

// keyPromptModel is the bubbletea model for masked API key entry.
// Typed characters are echoed as bullets so the key never appears on
// screen or in terminal scrollback.
type keyPromptModel struct {
	value   []rune
	done    bool
	aborted bool
}

func (m keyPromptModel) Init() tea.Cmd {
	return nil
}

func (m keyPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyBackspace:
			if len(m.value) > 0 {
				m.value = m.value[:len(m.value)-1]
			}
		case tea.KeySpace:
			m.value = append(m.value, ' ')
		case tea.KeyRunes:
			m.value = append(m.value, key.Runes...)
		}
	}
	return m, nil
}

func (m keyPromptModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render("Rosette API key"))
	b.WriteString(" ")
	b.WriteString(StyleValue.Render(strings.Repeat("•", len(m.value))))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("⏎ confirm  esc cancel"))
	return b.String()
}

// promptForKey interactively asks for the API key. It fails with
// MISSING_CREDENTIAL when the prompt is cancelled, left empty, or cannot
// run (e.g. no TTY attached).
func promptForKey() (string, error) {
	p := tea.NewProgram(keyPromptModel{}, tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeMissingCredential, err, "no API key available and prompt failed")
	}

	m, ok := final.(keyPromptModel)
	if !ok || m.aborted || len(m.value) == 0 {
		return "", errors.New(errors.ErrCodeMissingCredential, "no API key provided")
	}
	return strings.TrimSpace(string(m.value)), nil
}
