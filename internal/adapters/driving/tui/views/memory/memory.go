// Package memory implements the long-term memory view.
package memory

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

const memoryTimeout = 30 * time.Second

// View searches and manages long-term memory facts. An empty query
// lists every fact; a non-empty one runs a similarity search.
type View struct {
	memory driving.MemoryService

	input     *input.QueryInput
	facts     *list.ItemList
	statusbar *status.Bar

	styles *styles.Styles
	keymap *keymap.KeyMap

	focusInput bool
	width      int
	height     int
}

// New creates the memory view.
func New(memory driving.MemoryService, s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		memory:     memory,
		input:      input.NewQueryInput(s, "Memory", "Search facts, or press enter to list all"),
		facts:      list.NewItemList(s, "Facts"),
		statusbar:  status.NewBar(s, km),
		styles:     s,
		keymap:     km,
		focusInput: true,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.input.Focus()
	return v.input.Init()
}

// Update handles messages for the memory view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.MemoriesLoaded:
		return v.handleMemoriesLoaded(msg)

	case messages.MemoryArchived:
		return v.handleMemoryArchived(msg)
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		if !v.focusInput {
			v.focusInput = true
			v.input.Focus()
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Submit):
		if v.focusInput {
			return v.submit()
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Archive):
		if !v.focusInput {
			return v.archiveSelected()
		}
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.facts, cmd = v.facts.Update(msg)
	return v, cmd
}

func (v *View) submit() (*View, tea.Cmd) {
	query := strings.TrimSpace(v.input.Value())
	v.statusbar.SetState(status.StateWorking)
	return v, v.loadMemories(query)
}

func (v *View) loadMemories(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), memoryTimeout)
		defer cancel()

		var (
			entries []domain.MemoryEntry
			err     error
		)
		if query == "" {
			entries, err = v.memory.List(ctx)
		} else {
			entries, err = v.memory.FindSimilarMemories(ctx, query, domain.DefaultMemoryLimit, domain.DefaultMemoryMinAgeDays)
		}
		return messages.MemoriesLoaded{Query: query, Entries: entries, Err: err}
	}
}

func (v *View) archiveSelected() (*View, tea.Cmd) {
	selected := v.facts.SelectedItem()
	if selected == nil {
		return v, nil
	}

	id := selected.ID
	v.statusbar.SetState(status.StateWorking)
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), memoryTimeout)
		defer cancel()

		return messages.MemoryArchived{ID: id, Err: v.memory.Archive(ctx, id)}
	}
}

func (v *View) handleMemoriesLoaded(msg messages.MemoriesLoaded) (*View, tea.Cmd) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	items := make([]list.Item, 0, len(msg.Entries))
	for _, entry := range msg.Entries {
		items = append(items, list.Item{
			ID:      entry.ID,
			Title:   entry.Fact,
			Preview: entry.CreatedAt.Format("2006-01-02"),
		})
	}

	v.facts.SetItems(items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(items))

	if len(items) > 0 {
		v.input.Blur()
		v.focusInput = false
	}
	return v, nil
}

func (v *View) handleMemoryArchived(msg messages.MemoryArchived) (*View, tea.Cmd) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	// Reload with the last query so the archived fact disappears.
	return v, v.loadMemories(strings.TrimSpace(v.input.Value()))
}

// View renders the memory view.
func (v *View) View() string {
	sections := []string{
		v.input.View(),
		"",
		v.facts.View(),
		"",
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions updates the view's dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.facts.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}
