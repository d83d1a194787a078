package views

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmac/tag-summary/internal/adapters/tui/styles"
)

// PreviewKeyMap defines key bindings for the preview view
type PreviewKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Copy key.Binding
	Back key.Binding
}

var PreviewKeys = PreviewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "scroll down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

// PreviewModel shows a built summary with scrolling
type PreviewModel struct {
	lines  []string
	offset int
	copied bool
	width  int
	height int
}

// NewPreviewModel creates a new preview model
func NewPreviewModel() *PreviewModel {
	return &PreviewModel{}
}

// SetSummary loads a summary into the preview and resets scrolling
func (m *PreviewModel) SetSummary(summary string) {
	m.lines = strings.Split(summary, "\n")
	m.offset = 0
	m.copied = false
}

// SetSize updates the view dimensions
func (m *PreviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the preview view
func (m *PreviewModel) Update(msg tea.Msg) (*PreviewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PreviewKeys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, PreviewKeys.Up):
			if m.offset > 0 {
				m.offset--
			}
			return m, nil

		case key.Matches(msg, PreviewKeys.Down):
			if m.offset < len(m.lines)-m.visibleLines() {
				m.offset++
			}
			return m, nil

		case key.Matches(msg, PreviewKeys.Copy):
			clipboard.WriteAll(strings.Join(m.lines, "\n"))
			m.copied = true
			return m, nil
		}
	}
	return m, nil
}

func (m *PreviewModel) visibleLines() int {
	// Leave room for the title and status bar
	visible := m.height - 6
	if visible < 1 {
		visible = 10
	}
	return visible
}

// View renders the preview view
func (m *PreviewModel) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Summary"))
	sb.WriteString("\n")

	end := m.offset + m.visibleLines()
	if end > len(m.lines) {
		end = len(m.lines)
	}
	for _, line := range m.lines[m.offset:end] {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	status := "↑/↓ scroll · c copy · esc back"
	if m.copied {
		status = "copied to clipboard · esc back"
	}
	sb.WriteString(styles.StatusBar.Render(status))

	return styles.App.Render(sb.String())
}
