package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

type stubRetriever struct{}

func (stubRetriever) SearchSimilarChunks(_ context.Context, _ string, _ int) ([]domain.ScoreResult[domain.Chunk], error) {
	return nil, nil
}

type stubMemory struct{}

func (stubMemory) Remember(_ context.Context, _, _, fact string) (*domain.MemoryEntry, error) {
	return &domain.MemoryEntry{ID: "mem-1", Fact: fact}, nil
}

func (stubMemory) FindSimilarMemories(_ context.Context, _ string, _, _ int) ([]domain.MemoryEntry, error) {
	return nil, nil
}

func (stubMemory) List(_ context.Context) ([]domain.MemoryEntry, error) {
	return nil, nil
}

func (stubMemory) Archive(_ context.Context, _ string) error {
	return nil
}

func (stubMemory) ReembedAll(_ context.Context, _ func(current, total int)) (driving.ReembedResult, error) {
	return driving.ReembedResult{}, nil
}

type stubIngestor struct{}

func (stubIngestor) Ingest(_ context.Context, _, _ string) (*domain.Document, error) {
	return nil, nil
}

func (stubIngestor) Reprocess(_ context.Context, _ string) error {
	return nil
}

func (stubIngestor) Delete(_ context.Context, _ string) error {
	return nil
}

func (stubIngestor) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return nil, nil
}

func (stubIngestor) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return nil, nil
}

func (stubIngestor) Status() domain.ProcessingStatus {
	return domain.ProcessingStatus{}
}

func (stubIngestor) Subscribe() <-chan domain.ProcessingStatus {
	return nil
}

func allPorts() *Ports {
	return &Ports{
		Retriever: stubRetriever{},
		Memory:    stubMemory{},
		Ingestor:  stubIngestor{},
	}
}

func TestNew_RequiresRetriever(t *testing.T) {
	_, err := New(&Ports{})

	assert.ErrorIs(t, err, ErrMissingRetriever)
}

func TestApp_TabCyclesViews(t *testing.T) {
	app, err := New(allPorts())
	require.NoError(t, err)
	assert.Equal(t, messages.ViewQuery, app.active)

	tab := tea.KeyMsg{Type: tea.KeyTab}

	model, _ := app.Update(tab)
	app = model.(*App)
	assert.Equal(t, messages.ViewDocuments, app.active)

	model, _ = app.Update(tab)
	app = model.(*App)
	assert.Equal(t, messages.ViewMemory, app.active)

	model, _ = app.Update(tab)
	app = model.(*App)
	assert.Equal(t, messages.ViewQuery, app.active)
}

func TestApp_TabSkipsUnwiredViews(t *testing.T) {
	app, err := New(&Ports{Retriever: stubRetriever{}, Memory: stubMemory{}})
	require.NoError(t, err)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(*App)

	assert.Equal(t, messages.ViewMemory, app.active)
}

func TestApp_QuitOnCtrlC(t *testing.T) {
	app, err := New(allPorts())
	require.NoError(t, err)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_WindowSizePropagates(t *testing.T) {
	app, err := New(allPorts())
	require.NoError(t, err)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)

	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}

func TestApp_ViewRendersTabs(t *testing.T) {
	app, err := New(allPorts())
	require.NoError(t, err)

	view := app.View()

	assert.Contains(t, view, "query")
	assert.Contains(t, view, "documents")
	assert.Contains(t, view, "memory")
}
