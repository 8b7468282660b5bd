// Package chunker provides fixed-size sliding-window text chunking.
package chunker

import (
	"strings"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultOverlap is the default number of overlapping characters.
const DefaultOverlap = domain.DefaultChunkOverlap

// Split scans text with a sliding window of width chunkSize, advancing
// the start by chunkSize-overlap each step. Each window is trimmed and
// whitespace-only windows are dropped. The result is deterministic and
// a pure function of its inputs.
//
// Returns domain.ErrInvalidChunking when overlap >= chunkSize: such a
// walk never advances, so it is rejected up front instead of looping.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, domain.ErrInvalidChunking
	}

	if text == "" {
		return nil, nil
	}

	textLen := len(text)
	if textLen <= chunkSize {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return []string{trimmed}, nil
		}
		return nil, nil
	}

	step := chunkSize - overlap
	chunks := make([]string, 0, textLen/step+1)

	for start := 0; start < textLen; start += step {
		end := start + chunkSize
		if end > textLen {
			end = textLen
		}

		if trimmed := strings.TrimSpace(text[start:end]); trimmed != "" {
			chunks = append(chunks, trimmed)
		}

		if end == textLen {
			break
		}
	}

	return chunks, nil
}
