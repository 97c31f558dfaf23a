package extract

import (
	"regexp"
	"strings"
)

// Segmenter splits a document's cleaned text into per-case blocks on
// the filing-title phrase. The match is fuzzy: up to one stray
// character may sit between any two title characters, since a seal
// glyph the scrubber could not safely remove sometimes lands inside
// the title.
type Segmenter struct {
	title *regexp.Regexp
}

// NewSegmenter compiles the fuzzy title delimiter once.
func NewSegmenter(caseTitle string) *Segmenter {
	return &Segmenter{
		title: regexp.MustCompile(fuzzyPhrase(caseTitle)),
	}
}

// Split cuts the document on the delimiter, discarding the delimiter
// text and any empty or whitespace-only blocks. A document without
// the title yields itself as the single block.
func (s *Segmenter) Split(documentText string) []string {
	parts := s.title.Split(documentText, -1)

	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		blocks = append(blocks, part)
	}

	return blocks
}
