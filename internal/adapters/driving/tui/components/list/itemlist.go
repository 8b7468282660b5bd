// Package list provides a navigable item list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/styles"
)

// Item is one displayable row: a title, an optional preview line and an
// optional relevance score.
type Item struct {
	// ID identifies the underlying entity.
	ID string

	// Title is the main line.
	Title string

	// Preview is a secondary muted line, empty to omit.
	Preview string

	// Score is the relevance score; shown only when Scored is true.
	Score  float64
	Scored bool
}

// ItemList displays items in a navigable list.
type ItemList struct {
	title    string
	items    []Item
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates a list with a header title.
func NewItemList(s *styles.Styles, title string) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ItemList{
		title:  title,
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *ItemList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render("Nothing to show")
	}

	lines := make([]string, 0, len(l.items)*2+2)
	header := l.styles.Title.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items)))
	lines = append(lines, header, "")

	// Each item takes up to two lines plus spacing.
	visible := (l.height - 4) / 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}

	return strings.Join(lines, "\n")
}

func (l *ItemList) renderItem(index int) string {
	item := l.items[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	maxTitle := l.width - 12
	if maxTitle < 10 {
		maxTitle = 10
	}
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	score := ""
	if item.Scored {
		score = fmt.Sprintf("  %.2f", item.Score)
	}

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(indicator + title + score)
	} else {
		titleLine = l.styles.Normal.Render(indicator+title) + l.styles.Muted.Render(score)
	}

	if item.Preview == "" {
		return titleLine
	}

	preview := item.Preview
	maxPreview := l.width - 6
	if maxPreview < 20 {
		maxPreview = 20
	}
	if len(preview) > maxPreview {
		preview = preview[:maxPreview-3] + "..."
	}
	return titleLine + "\n" + l.styles.Muted.Render("    "+preview)
}

// SetItems replaces the items and resets the selection.
func (l *ItemList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current items.
func (l *ItemList) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *ItemList) Selected() int {
	return l.selected
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *ItemList) SelectedItem() *Item {
	if len(l.items) == 0 || l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *ItemList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *ItemList) IsEmpty() bool {
	return len(l.items) == 0
}
