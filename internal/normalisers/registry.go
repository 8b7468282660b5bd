package normalisers

import (
	"path/filepath"
	"strings"

	"github.com/custodia-labs/recall-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/recall-cli/internal/normalisers/plaintext"
)

// Normaliser turns raw file bytes into plain text.
type Normaliser interface {
	// Normalise extracts the text content from raw bytes. It returns an
	// error when the input cannot be treated as text at all.
	Normalise(raw []byte) (string, error)
}

// ForPath returns the normaliser for a file path, chosen by extension.
// Unrecognised extensions get the plaintext fallback.
func ForPath(path string) Normaliser {
	if isMarkdown(path) {
		return markdown.New()
	}
	return plaintext.New()
}

// Name derives a document name for a file: the first H1 heading when the
// file is markdown, otherwise the base file name.
func Name(path string, raw []byte) string {
	if isMarkdown(path) {
		if title := markdown.Title(raw); title != "" {
			return title
		}
	}
	return filepath.Base(path)
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".mdown":
		return true
	}
	return false
}
