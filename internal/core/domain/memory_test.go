package domain

import (
	"testing"
	"time"
)

func TestMemoryEntry_AgeAtLeast(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		createdAt  time.Time
		minAgeDays int
		want       bool
	}{
		{"zero min age always passes", now, 0, true},
		{"negative min age always passes", now.Add(time.Hour), -1, true},
		{"created just now", now, 2, false},
		{"one day old, two required", now.Add(-24 * time.Hour), 2, false},
		{"exactly two days old", now.Add(-48 * time.Hour), 2, true},
		{"well past threshold", now.Add(-30 * 24 * time.Hour), 2, true},
		{"one second short", now.Add(-48*time.Hour + time.Second), 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := MemoryEntry{CreatedAt: tt.createdAt}
			if got := entry.AgeAtLeast(now, tt.minAgeDays); got != tt.want {
				t.Errorf("AgeAtLeast(%v, %d) = %v, want %v", tt.createdAt, tt.minAgeDays, got, tt.want)
			}
		})
	}
}

func TestChunk_HasEmbedding(t *testing.T) {
	if (Chunk{}).HasEmbedding() {
		t.Error("chunk without vector should report no embedding")
	}
	if !(Chunk{Embedding: []float32{0.1}}).HasEmbedding() {
		t.Error("chunk with vector should report an embedding")
	}
}

func TestMemoryEntry_Retrievable(t *testing.T) {
	entry := MemoryEntry{Fact: "prefers metric units", Embedding: []float32{1, 2}}
	if entry.Text() != "prefers metric units" {
		t.Errorf("Text() = %q", entry.Text())
	}
	if len(entry.Vector()) != 2 {
		t.Errorf("Vector() length = %d, want 2", len(entry.Vector()))
	}
}
