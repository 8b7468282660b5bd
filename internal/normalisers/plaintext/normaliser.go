// Package plaintext is the fallback normaliser: it accepts any UTF-8
// text and only tidies line endings and surrounding whitespace.
package plaintext

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrNotText is returned for input that is not valid UTF-8, which is the
// cheapest reliable signal that a file is binary.
var ErrNotText = errors.New("plaintext: content is not valid UTF-8 text")

// Normaliser passes text through with minimal cleanup.
type Normaliser struct{}

// New creates a plaintext normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise validates the input is text, converts CRLF line endings to
// LF and trims leading and trailing whitespace.
func (n *Normaliser) Normalise(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrNotText
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	return strings.TrimSpace(content), nil
}
