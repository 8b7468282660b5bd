package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func saveTestDocument(t *testing.T, store *Store, id string) *domain.Document {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Second)
	doc := &domain.Document{
		ID:        id,
		Name:      "doc-" + id + ".md",
		Content:   "content of " + id,
		SizeBytes: 42,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.DocumentStore().SaveDocument(context.Background(), doc))
	return doc
}

// ==================== Store Creation and Migration Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "recall.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	saveTestDocument(t, store, "doc-1")
	require.NoError(t, store.Close())

	// Reopen against the same file: data survives, migrations do not rerun.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	doc, err := store.DocumentStore().GetDocument(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-doc-1.md", doc.Name)
}

// ==================== Document Store Tests ====================

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	saved := saveTestDocument(t, store, "doc-1")

	got, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, saved.Name, got.Name)
	assert.Equal(t, saved.Content, got.Content)
	assert.Equal(t, int64(42), got.SizeBytes)
	assert.False(t, got.IsProcessed)
}

func TestDocumentStore_SaveDocument_Upserts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := saveTestDocument(t, store, "doc-1")
	doc.IsProcessed = true
	doc.ChunkCount = 7
	doc.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, doc))

	got, err := store.DocumentStore().GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.True(t, got.IsProcessed)
	assert.Equal(t, 7, got.ChunkCount)

	docs, err := store.DocumentStore().ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1, "upsert must not duplicate")
}

func TestDocumentStore_GetDocument_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.DocumentStore().GetDocument(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDocumentStore_ChunkRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docStore := store.DocumentStore()

	saveTestDocument(t, store, "doc-1")

	chunks := []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", Content: "first chunk", ChunkIndex: 0,
			Embedding: []float32{0.25, -1.5, 3.0}},
		{ID: "c-1", DocumentID: "doc-1", Content: "second chunk", ChunkIndex: 1,
			Metadata: map[string]any{"heading": "intro"}},
	}
	require.NoError(t, docStore.SaveChunks(ctx, chunks))

	got, err := docStore.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Vectors survive the float32 <-> blob codec bit-exact.
	assert.Equal(t, []float32{0.25, -1.5, 3.0}, got[0].Embedding)
	assert.Nil(t, got[1].Embedding)
	assert.Equal(t, "intro", got[1].Metadata["heading"])

	single, err := docStore.GetChunk(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "second chunk", single.Content)

	_, err = docStore.GetChunk(ctx, "c-2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDocumentStore_SaveChunks_BatchesAccumulate(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docStore := store.DocumentStore()

	saveTestDocument(t, store, "doc-1")

	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", ChunkIndex: 0, Content: "a"},
		{ID: "c-1", DocumentID: "doc-1", ChunkIndex: 1, Content: "b"},
	}))
	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-2", DocumentID: "doc-1", ChunkIndex: 2, Content: "c"},
	}))

	chunks, err := docStore.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.ChunkIndex)
	}
}

func TestDocumentStore_ListEmbeddedChunks(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docStore := store.DocumentStore()

	saveTestDocument(t, store, "doc-a")
	saveTestDocument(t, store, "doc-b")

	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{
		{ID: "a-0", DocumentID: "doc-a", ChunkIndex: 0, Embedding: []float32{1}},
		{ID: "a-1", DocumentID: "doc-a", ChunkIndex: 1}, // no vector
		{ID: "b-0", DocumentID: "doc-b", ChunkIndex: 0, Embedding: []float32{2}},
	}))

	embedded, err := docStore.ListEmbeddedChunks(ctx)
	require.NoError(t, err)
	require.Len(t, embedded, 2)
	assert.Equal(t, "a-0", embedded[0].ID)
	assert.Equal(t, "b-0", embedded[1].ID)
}

func TestDocumentStore_DeleteChunks_KeepsDocument(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docStore := store.DocumentStore()

	saveTestDocument(t, store, "doc-1")
	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", ChunkIndex: 0},
	}))

	require.NoError(t, docStore.DeleteChunks(ctx, "doc-1"))

	chunks, err := docStore.GetChunks(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = docStore.GetDocument(ctx, "doc-1")
	assert.NoError(t, err)
}

func TestDocumentStore_DeleteDocument_CascadesToChunks(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	docStore := store.DocumentStore()

	saveTestDocument(t, store, "doc-1")
	require.NoError(t, docStore.SaveChunks(ctx, []domain.Chunk{
		{ID: "c-0", DocumentID: "doc-1", ChunkIndex: 0, Embedding: []float32{1}},
	}))

	require.NoError(t, docStore.DeleteDocument(ctx, "doc-1"))

	_, err := docStore.GetDocument(ctx, "doc-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	embedded, err := docStore.ListEmbeddedChunks(ctx)
	require.NoError(t, err)
	assert.Empty(t, embedded)
}

// ==================== Memory Store Tests ====================

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	memStore := store.MemoryStore()

	entry := &domain.MemoryEntry{
		ID:             "mem-1",
		ConversationID: "conv-1",
		MessageID:      "msg-1",
		Fact:           "prefers metric units",
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
		Embedding:      []float32{0.5, -0.5},
	}
	require.NoError(t, memStore.Save(ctx, entry))

	got, err := memStore.Get(ctx, "mem-1")
	require.NoError(t, err)
	assert.Equal(t, "prefers metric units", got.Fact)
	assert.Equal(t, []float32{0.5, -0.5}, got.Embedding)

	_, err = memStore.Get(ctx, "mem-2")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryStore_List_ExcludesArchivedOrderedByAge(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	memStore := store.MemoryStore()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, memStore.Save(ctx, &domain.MemoryEntry{
		ID: "newer", Fact: "newer fact", CreatedAt: base.Add(time.Hour),
	}))
	require.NoError(t, memStore.Save(ctx, &domain.MemoryEntry{
		ID: "older", Fact: "older fact", CreatedAt: base,
	}))
	require.NoError(t, memStore.Save(ctx, &domain.MemoryEntry{
		ID: "hidden", Fact: "archived fact", CreatedAt: base, IsArchived: true,
	}))

	entries, err := memStore.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "older", entries[0].ID)
	assert.Equal(t, "newer", entries[1].ID)
}

func TestMemoryStore_UpdateEmbedding(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	memStore := store.MemoryStore()

	require.NoError(t, memStore.Save(ctx, &domain.MemoryEntry{
		ID: "mem-1", Fact: "something", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, memStore.UpdateEmbedding(ctx, "mem-1", []float32{1, 2, 3}))

	got, err := memStore.Get(ctx, "mem-1")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, got.Embedding)
	assert.Equal(t, "something", got.Fact)

	err = memStore.UpdateEmbedding(ctx, "missing", []float32{1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMemoryStore_Archive(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	memStore := store.MemoryStore()

	require.NoError(t, memStore.Save(ctx, &domain.MemoryEntry{
		ID: "mem-1", Fact: "short-lived", CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, memStore.Archive(ctx, "mem-1"))

	entries, err := memStore.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	got, err := memStore.Get(ctx, "mem-1")
	require.NoError(t, err)
	assert.True(t, got.IsArchived)

	err = memStore.Archive(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ==================== Codec Tests ====================

func TestFloat32BlobCodec(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
	}{
		{"nil", nil},
		{"empty", []float32{}},
		{"values", []float32{0, 1, -1, 0.5, 3.14159}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := bytesToFloat32Slice(float32SliceToBytes(tt.in))
			if len(tt.in) == 0 {
				assert.Nil(t, out)
				return
			}
			assert.Equal(t, tt.in, out)
		})
	}
}
