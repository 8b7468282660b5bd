// Package documents implements the document browser view.
package documents

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

const loadTimeout = 10 * time.Second

// View lists the documents in the knowledge base.
type View struct {
	ingestor driving.Ingestor

	docs      *list.ItemList
	statusbar *status.Bar

	styles *styles.Styles
	keymap *keymap.KeyMap

	width  int
	height int
}

// New creates the documents view.
func New(ingestor driving.Ingestor, s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		ingestor:  ingestor,
		docs:      list.NewItemList(s, "Documents"),
		statusbar: status.NewBar(s, km),
		styles:    s,
		keymap:    km,
	}
}

// Init loads the document list.
func (v *View) Init() tea.Cmd {
	v.statusbar.SetState(status.StateWorking)
	return v.loadDocuments()
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		v.docs, cmd = v.docs.Update(msg)
		return v, cmd

	case messages.DocumentsLoaded:
		return v.handleDocumentsLoaded(msg)
	}
	return v, nil
}

func (v *View) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		docs, err := v.ingestor.ListDocuments(ctx)
		return messages.DocumentsLoaded{Documents: docs, Err: err}
	}
}

func (v *View) handleDocumentsLoaded(msg messages.DocumentsLoaded) (*View, tea.Cmd) {
	if msg.Err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	items := make([]list.Item, 0, len(msg.Documents))
	for _, doc := range msg.Documents {
		items = append(items, list.Item{
			ID:      doc.ID,
			Title:   doc.Name,
			Preview: describeDocument(doc),
		})
	}

	v.docs.SetItems(items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResultCount(len(items))
	return v, nil
}

func describeDocument(doc domain.Document) string {
	if !doc.IsProcessed {
		return "pending"
	}
	return fmt.Sprintf("%d chunks, %s", doc.ChunkCount, doc.CreatedAt.Format("2006-01-02"))
}

// View renders the documents view.
func (v *View) View() string {
	sections := []string{
		v.docs.View(),
		"",
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions updates the view's dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.docs.SetDimensions(width, height-4)
	v.statusbar.SetWidth(width)
}
