package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmac/tag-summary/internal/adapters/tui/styles"
	"github.com/chmac/tag-summary/internal/application/commands"
	"github.com/chmac/tag-summary/internal/ports"
)

const maxSuggestions = 8

// PromptKeyMap defines key bindings for the prompt view
type PromptKeyMap struct {
	Accept   key.Binding
	Complete key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

var PromptKeys = PromptKeyMap{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "build"),
	),
	Complete: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "complete"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

type tagsLoadedMsg struct {
	tags []commands.TagCount
}

// PromptModel is the model for the selector prompt view
type PromptModel struct {
	store  ports.DocumentStore
	input  textinput.Model
	tags   []commands.TagCount
	cursor int
	err    error
	width  int
	height int
}

// NewPromptModel creates a new selector prompt model
func NewPromptModel(store ports.DocumentStore) *PromptModel {
	input := textinput.New()
	input.Placeholder = "#tag +#required !#excluded"
	input.Focus()

	return &PromptModel{
		store: store,
		input: input,
	}
}

// Init loads the vault's tags for suggestions
func (m *PromptModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadTags)
}

func (m *PromptModel) loadTags() tea.Msg {
	tagsCommand := commands.NewListTagsCommand(m.store)
	tags, err := tagsCommand.Execute(context.Background())
	if err != nil {
		return ErrMsg{Err: err}
	}
	return tagsLoadedMsg{tags: tags}
}

// SetSize updates the view dimensions
func (m *PromptModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the prompt view
func (m *PromptModel) Update(msg tea.Msg) (*PromptModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tagsLoadedMsg:
		m.tags = msg.tags
		return m, nil

	case ErrMsg:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PromptKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, PromptKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, PromptKeys.Down):
			if m.cursor < len(m.suggestions())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, PromptKeys.Complete):
			m.complete()
			return m, nil

		case key.Matches(msg, PromptKeys.Accept):
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg {
				return BuildRequestMsg{Input: input}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.cursor = 0
	return m, cmd
}

// suggestions returns the tags matching the token being typed.
func (m *PromptModel) suggestions() []commands.TagCount {
	token := currentToken(m.input.Value())
	var matched []commands.TagCount
	for _, tc := range m.tags {
		if token == "" || strings.Contains(strings.ToLower(tc.Name), strings.ToLower(token)) {
			matched = append(matched, tc)
			if len(matched) == maxSuggestions {
				break
			}
		}
	}
	return matched
}

// complete replaces the token being typed with the selected suggestion.
func (m *PromptModel) complete() {
	suggestions := m.suggestions()
	if m.cursor >= len(suggestions) {
		return
	}
	value := m.input.Value()
	token := currentToken(value)
	value = value[:len(value)-len(token)] + suggestions[m.cursor].Name
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.cursor = 0
}

// currentToken returns the selector token under the cursor, without its
// '+' or '!' prefix.
func currentToken(value string) string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' '
	})
	if len(fields) == 0 || strings.HasSuffix(value, " ") || strings.HasSuffix(value, ",") {
		return ""
	}
	token := fields[len(fields)-1]
	token = strings.TrimPrefix(token, "+")
	token = strings.TrimPrefix(token, "!")
	return token
}

// View renders the prompt view
func (m *PromptModel) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Build a tag summary"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("plain = any-of, +tag = all-of, !tag = exclude"))
	sb.WriteString("\n\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	for i, tc := range m.suggestions() {
		line := fmt.Sprintf("%s (%d)", tc.Name, tc.Count)
		if i == m.cursor {
			sb.WriteString(styles.TagSelected.Render(line))
		} else {
			sb.WriteString(styles.Tag.Render(line))
		}
		sb.WriteString("\n")
	}

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.StatusBar.Render("enter build · tab complete · esc quit"))

	return styles.App.Render(sb.String())
}
