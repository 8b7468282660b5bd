// Package markdown strips markdown formatting so only prose reaches the
// chunker. The implementation is intentionally regex-based rather than a
// full CommonMark parse; heading text, link text and list items survive,
// code blocks do not.
package markdown

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/recall-cli/internal/normalisers/plaintext"
)

var (
	codeBlocks    = regexp.MustCompile("(?s)```.*?```")
	inlineCode    = regexp.MustCompile("`[^`\n]+`")
	images        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquotes   = regexp.MustCompile(`(?m)^>\s*`)
	rules         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	bulletMarkers = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberMarkers = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Normaliser strips markdown syntax, keeping the readable text.
type Normaliser struct{}

// New creates a markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise removes markdown formatting from raw and returns the
// remaining prose.
func (n *Normaliser) Normalise(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", plaintext.ErrNotText
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")

	content = codeBlocks.ReplaceAllString(content, "")
	content = inlineCode.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = blockquotes.ReplaceAllString(content, "")
	content = rules.ReplaceAllString(content, "")
	content = bulletMarkers.ReplaceAllString(content, "")
	content = numberMarkers.ReplaceAllString(content, "")

	// Emphasis markers are plain string removals; a regex would mangle
	// legitimate asterisks in prose just as badly.
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")

	content = blankRuns.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content), nil
}

// Title returns the first H1 heading in the document, or "" when none
// exists. Callers fall back to the file name.
func Title(raw []byte) string {
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}
