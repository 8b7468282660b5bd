package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

type mockIngestor struct {
	documents []domain.Document
	err       error
}

func (m *mockIngestor) Ingest(_ context.Context, _, _ string) (*domain.Document, error) {
	return nil, nil
}

func (m *mockIngestor) Reprocess(_ context.Context, _ string) error {
	return nil
}

func (m *mockIngestor) Delete(_ context.Context, _ string) error {
	return nil
}

func (m *mockIngestor) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return nil, nil
}

func (m *mockIngestor) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockIngestor) Status() domain.ProcessingStatus {
	return domain.ProcessingStatus{}
}

func (m *mockIngestor) Subscribe() <-chan domain.ProcessingStatus {
	return nil
}

func TestView_InitLoadsDocuments(t *testing.T) {
	ingestor := &mockIngestor{documents: []domain.Document{
		{ID: "d1", Name: "notes.md", IsProcessed: true, ChunkCount: 4, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "d2", Name: "draft.txt"},
	}}
	v := New(ingestor, nil, nil)

	cmd := v.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, status.StateWorking, v.statusbar.State())

	msg := cmd()
	loaded, ok := msg.(messages.DocumentsLoaded)
	require.True(t, ok)

	v, _ = v.Update(loaded)

	assert.Equal(t, 2, v.docs.Count())
	view := v.View()
	assert.Contains(t, view, "notes.md")
	assert.Contains(t, view, "4 chunks")
	assert.Contains(t, view, "pending")
}

func TestView_LoadError(t *testing.T) {
	v := New(&mockIngestor{err: errors.New("store unavailable")}, nil, nil)

	v, _ = v.Update(messages.DocumentsLoaded{Err: errors.New("store unavailable")})

	assert.Equal(t, status.StateError, v.statusbar.State())
	assert.Contains(t, v.View(), "store unavailable")
}

func TestDescribeDocument(t *testing.T) {
	pending := domain.Document{Name: "a"}
	assert.Equal(t, "pending", describeDocument(pending))

	done := domain.Document{IsProcessed: true, ChunkCount: 7, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "7 chunks, 2026-03-01", describeDocument(done))
}
