// Package tui is the interactive selector prompt around summary builds.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmac/tag-summary/internal/adapters/tui/views"
	"github.com/chmac/tag-summary/internal/application/commands"
	"github.com/chmac/tag-summary/internal/domain"
	"github.com/chmac/tag-summary/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPrompt ViewState = iota
	ViewPreview
)

// App is the main TUI application model
type App struct {
	store ports.DocumentStore
	log   *slog.Logger
	opts  domain.Options

	state   ViewState
	prompt  *views.PromptModel
	preview *views.PreviewModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(store ports.DocumentStore, log *slog.Logger, opts domain.Options) *App {
	return &App{
		store:   store,
		log:     log,
		opts:    opts,
		state:   ViewPrompt,
		prompt:  views.NewPromptModel(store),
		preview: views.NewPreviewModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.prompt.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.prompt.SetSize(msg.Width, msg.Height)
		a.preview.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.BuildRequestMsg:
		return a, a.build(msg.Input)

	case views.SummaryMsg:
		a.preview.SetSummary(msg.Summary)
		a.state = ViewPreview
		return a, nil

	case views.BackMsg:
		a.state = ViewPrompt
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewPrompt:
		a.prompt, cmd = a.prompt.Update(msg)
	case ViewPreview:
		a.preview, cmd = a.preview.Update(msg)
	}
	return a, cmd
}

// build runs a summary build off the UI goroutine.
func (a *App) build(input string) tea.Cmd {
	sel := domain.ParseSelectors(input)
	buildCommand := commands.NewBuildSummaryCommand(a.store, a.log, sel, a.opts)
	return func() tea.Msg {
		summary, err := buildCommand.Execute(context.Background())
		if err != nil {
			return views.ErrMsg{Err: err}
		}
		return views.SummaryMsg{Summary: summary}
	}
}

// View renders the application
func (a *App) View() string {
	switch a.state {
	case ViewPreview:
		return a.preview.View()
	default:
		return a.prompt.View()
	}
}
