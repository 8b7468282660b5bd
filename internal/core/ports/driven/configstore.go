package driven

import "github.com/custodia-labs/recall-cli/internal/core/domain"

// Configuration keys for the retrieval knobs and the embedding provider.
// Keys use dot notation; file-backed stores map them to TOML tables.
const (
	KeyChunkSize        = "retrieval.chunk_size"
	KeyChunkOverlap     = "retrieval.chunk_overlap"
	KeyRAGLimit         = "retrieval.rag_limit"
	KeyMemoryLimit      = "retrieval.memory_limit"
	KeyMemoryMinAgeDays = "retrieval.memory_min_age_days"

	KeyEmbeddingProvider   = "embedding.provider"
	KeyEmbeddingModel      = "embedding.model"
	KeyEmbeddingBaseURL    = "embedding.base_url"
	KeyEmbeddingAPIKey     = "embedding.api_key"
	KeyEmbeddingDimensions = "embedding.dimensions"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string

	// RetrievalSettings assembles the retrieval configuration, applying
	// defaults for missing keys and clamping out-of-range values.
	RetrievalSettings() domain.RetrievalSettings
}
