package domain

import "testing"

func TestRetrievalSettings_Clamped(t *testing.T) {
	tests := []struct {
		name string
		in   RetrievalSettings
		want RetrievalSettings
	}{
		{
			name: "defaults pass through",
			in:   DefaultRetrievalSettings(),
			want: DefaultRetrievalSettings(),
		},
		{
			name: "everything below range",
			in:   RetrievalSettings{ChunkSize: 10, ChunkOverlap: -5, RAGLimit: 0, MemoryLimit: -1, MemoryMinAgeDays: -3},
			want: RetrievalSettings{ChunkSize: 128, ChunkOverlap: 0, RAGLimit: 1, MemoryLimit: 1, MemoryMinAgeDays: 0},
		},
		{
			name: "everything above range",
			in:   RetrievalSettings{ChunkSize: 9000, ChunkOverlap: 9000, RAGLimit: 50, MemoryLimit: 50, MemoryMinAgeDays: 365},
			want: RetrievalSettings{ChunkSize: 2048, ChunkOverlap: 256, RAGLimit: 10, MemoryLimit: 10, MemoryMinAgeDays: 30},
		},
		{
			name: "overlap forced below chunk size",
			in:   RetrievalSettings{ChunkSize: 128, ChunkOverlap: 200, RAGLimit: 5, MemoryLimit: 5, MemoryMinAgeDays: 2},
			want: RetrievalSettings{ChunkSize: 128, ChunkOverlap: 127, RAGLimit: 5, MemoryLimit: 5, MemoryMinAgeDays: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamped(); got != tt.want {
				t.Errorf("Clamped() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
