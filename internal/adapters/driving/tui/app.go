package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/views/memory"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/views/query"
)

// App is the root bubbletea model. It owns the views and routes
// messages to whichever one is active.
type App struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	active    messages.ViewType
	query     *query.View
	documents *documents.View
	memory    *memory.View

	width  int
	height int
}

// New creates the application root model.
func New(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	app := &App{
		styles: s,
		keymap: km,
		active: messages.ViewQuery,
		query:  query.New(ports.Retriever, s, km),
	}
	if ports.Ingestor != nil {
		app.documents = documents.New(ports.Ingestor, s, km)
	}
	if ports.Memory != nil {
		app.memory = memory.New(ports.Memory, s, km)
	}
	return app, nil
}

// Init initialises the application.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("recall"),
		a.query.Init(),
	)
}

// Update handles messages at the application level.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case keymap.Matches(msg.String(), a.keymap.Quit):
			return a, tea.Quit
		case keymap.Matches(msg.String(), a.keymap.NextView):
			return a.switchView(a.nextView())
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.forwardDimensions()
		return a, nil

	case messages.ViewChanged:
		return a.switchView(msg.View)
	}

	return a.forward(msg)
}

// nextView returns the next available view, skipping views whose
// services were not wired.
func (a *App) nextView() messages.ViewType {
	next := a.active.Next()
	for next != a.active && !a.hasView(next) {
		next = next.Next()
	}
	return next
}

func (a *App) hasView(v messages.ViewType) bool {
	switch v {
	case messages.ViewQuery:
		return true
	case messages.ViewDocuments:
		return a.documents != nil
	case messages.ViewMemory:
		return a.memory != nil
	}
	return false
}

func (a *App) switchView(v messages.ViewType) (tea.Model, tea.Cmd) {
	if !a.hasView(v) || v == a.active {
		return a, nil
	}

	a.active = v
	a.forwardDimensions()

	switch v {
	case messages.ViewQuery:
		return a, a.query.Init()
	case messages.ViewDocuments:
		// Reload on every visit so ingestions done elsewhere show up.
		return a, a.documents.Init()
	case messages.ViewMemory:
		return a, a.memory.Init()
	}
	return a, nil
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case messages.ViewQuery:
		a.query, cmd = a.query.Update(msg)
	case messages.ViewDocuments:
		a.documents, cmd = a.documents.Update(msg)
	case messages.ViewMemory:
		a.memory, cmd = a.memory.Update(msg)
	}
	return a, cmd
}

func (a *App) forwardDimensions() {
	if a.width == 0 {
		return
	}
	a.query.SetDimensions(a.width, a.height-2)
	if a.documents != nil {
		a.documents.SetDimensions(a.width, a.height-2)
	}
	if a.memory != nil {
		a.memory.SetDimensions(a.width, a.height-2)
	}
}

// View renders the active view beneath a tab header.
func (a *App) View() string {
	var body string
	switch a.active {
	case messages.ViewQuery:
		body = a.query.View()
	case messages.ViewDocuments:
		body = a.documents.View()
	case messages.ViewMemory:
		body = a.memory.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.renderTabs(), "", body)
}

func (a *App) renderTabs() string {
	tabs := make([]string, 0, 3)
	for _, v := range []messages.ViewType{messages.ViewQuery, messages.ViewDocuments, messages.ViewMemory} {
		if !a.hasView(v) {
			continue
		}
		label := fmt.Sprintf(" %s ", v)
		if v == a.active {
			tabs = append(tabs, a.styles.Selected.Render(label))
		} else {
			tabs = append(tabs, a.styles.Muted.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// Run starts the TUI and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
