// Package textfold reflows line-broken legal text into logical
// paragraphs. Column width in the source filings breaks sentences
// across lines; only breaks after sentence-final punctuation or before
// an enumerated item are meaningful, the rest are mechanical and get
// fused away.
package textfold

import (
	"regexp"
	"strings"
)

// Marker distinct from any content character, used to protect logical
// breaks while the mechanical ones are deleted.
const logicalBreak = "\x00"

var (
	multiNewline = regexp.MustCompile(`\n+`)

	// Break after sentence-final punctuation is semantic.
	afterSentence = regexp.MustCompile(`([。；？！])\n`)

	// Break before an enumeration marker is semantic: CJK or Arabic
	// numeral followed by 、 or ．, or a parenthesized numeral.
	beforeItem = regexp.MustCompile(`\n(\s*(?:[一二三四五六七八九十\d]+[、．.]|[(（][一二三四五六七八九十\d]+[)）]))`)
)

// Fold rejoins wrapped lines into paragraphs and enumerated items.
// Folding already-folded text is a no-op.
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = multiNewline.ReplaceAllString(s, "\n")

	s = afterSentence.ReplaceAllString(s, "${1}"+logicalBreak)
	s = beforeItem.ReplaceAllString(s, logicalBreak+"${1}")

	// Whatever break is left came from column wrapping.
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, logicalBreak, "\n")

	// Wrapped legal prose never relies on inter-character spacing, so
	// each folded line loses its internal whitespace entirely.
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(line), ""))
	}

	return strings.Join(out, "\n")
}
