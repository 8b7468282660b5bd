// Package query implements the context retrieval view.
package query

import (
	"context"
	"fmt"
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

const queryTimeout = 30 * time.Second

// View is the context retrieval view. It holds a query input and a
// ranked result list, toggling focus between the two.
type View struct {
	retriever driving.Retriever

	input     *input.QueryInput
	results   *list.ItemList
	statusbar *status.Bar

	styles *styles.Styles
	keymap *keymap.KeyMap

	focusInput bool
	width      int
	height     int
}

// New creates the query view.
func New(retriever driving.Retriever, s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		retriever:  retriever,
		input:      input.NewQueryInput(s, "Query", "What are you looking for?"),
		results:    list.NewItemList(s, "Context"),
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

// Update handles messages for the query view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryCompleted:
		return v.handleQueryCompleted(msg)
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
			v.focusToInput()
			return v, nil
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Submit):
		if v.focusInput {
			return v.submit()
		}
		return v, nil
	}

	if v.focusInput {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.results, cmd = v.results.Update(msg)
	return v, cmd
}

func (v *View) submit() (*View, tea.Cmd) {
	query := strings.TrimSpace(v.input.Value())
	if query == "" {
		return v, nil
	}

	v.statusbar.SetState(status.StateWorking)
	return v, v.performQuery(query)
}

func (v *View) performQuery(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		results, err := v.retriever.SearchSimilarChunks(ctx, query, domain.DefaultRAGLimit)
		return messages.QueryCompleted{Query: query, Results: results, Err: err}
	}
}

func (v *View) handleQueryCompleted(msg messages.QueryCompleted) (*View, tea.Cmd) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	items := make([]list.Item, 0, len(msg.Results))
	for _, r := range msg.Results {
		items = append(items, list.Item{
			ID:      r.Item.ID,
			Title:   fmt.Sprintf("chunk %d of %s", r.Item.ChunkIndex, r.Item.DocumentID),
			Preview: r.Item.Content,
			Score:   r.Score,
			Scored:  true,
		})
	}

	v.results.SetItems(items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(items))

	if len(items) > 0 {
		v.input.Blur()
		v.focusInput = false
	}
	return v, nil
}

func (v *View) focusToInput() {
	v.focusInput = true
	v.input.Focus()
}

// View renders the query view.
func (v *View) View() string {
	sections := []string{
		v.input.View(),
		"",
		v.results.View(),
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
	v.results.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}
