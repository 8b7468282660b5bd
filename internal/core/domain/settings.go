package domain

// Bounds for retrieval configuration. Values outside these ranges are
// clamped at the boundary before they reach the core services.
const (
	MinChunkSize = 128
	MaxChunkSize = 2048

	MinChunkOverlap = 0
	MaxChunkOverlap = 256

	MinResultLimit = 1
	MaxResultLimit = 10

	MinMemoryAgeDays = 0
	MaxMemoryAgeDays = 30
)

// Default retrieval settings.
const (
	DefaultChunkSize        = 512
	DefaultChunkOverlap     = 64
	DefaultRAGLimit         = 5
	DefaultMemoryLimit      = 5
	DefaultMemoryMinAgeDays = 2
)

// RetrievalSettings holds the user-tunable knobs for chunking and
// retrieval. Callers clamp settings before passing them to services.
type RetrievalSettings struct {
	// ChunkSize is the sliding-window width in characters.
	ChunkSize int

	// ChunkOverlap is the number of characters shared by consecutive
	// chunks. Must stay below ChunkSize.
	ChunkOverlap int

	// RAGLimit is the maximum number of chunks returned per query.
	RAGLimit int

	// MemoryLimit is the maximum number of memory facts returned per query.
	MemoryLimit int

	// MemoryMinAgeDays excludes facts younger than this from retrieval.
	MemoryMinAgeDays int
}

// DefaultRetrievalSettings returns the defaults.
func DefaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		ChunkSize:        DefaultChunkSize,
		ChunkOverlap:     DefaultChunkOverlap,
		RAGLimit:         DefaultRAGLimit,
		MemoryLimit:      DefaultMemoryLimit,
		MemoryMinAgeDays: DefaultMemoryMinAgeDays,
	}
}

// Clamped returns a copy with every field forced into its valid range.
// Overlap is additionally capped below chunk size so the chunker's
// window always advances.
func (s RetrievalSettings) Clamped() RetrievalSettings {
	s.ChunkSize = clampInt(s.ChunkSize, MinChunkSize, MaxChunkSize)
	s.ChunkOverlap = clampInt(s.ChunkOverlap, MinChunkOverlap, MaxChunkOverlap)
	if s.ChunkOverlap >= s.ChunkSize {
		s.ChunkOverlap = s.ChunkSize - 1
	}
	s.RAGLimit = clampInt(s.RAGLimit, MinResultLimit, MaxResultLimit)
	s.MemoryLimit = clampInt(s.MemoryLimit, MinResultLimit, MaxResultLimit)
	s.MemoryMinAgeDays = clampInt(s.MemoryMinAgeDays, MinMemoryAgeDays, MaxMemoryAgeDays)
	return s
}

// ClampResultLimit forces a per-query result limit into its valid
// range. Callers clamp before the value reaches the core.
func ClampResultLimit(v int) int {
	return clampInt(v, MinResultLimit, MaxResultLimit)
}

// ClampMemoryMinAge forces a minimum-age filter into its valid range.
func ClampMemoryMinAge(v int) int {
	return clampInt(v, MinMemoryAgeDays, MaxMemoryAgeDays)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
