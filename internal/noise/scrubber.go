package noise

import (
	"regexp"
	"strings"
	"unicode"
)

// ScrubberConfig describes the in-line cleaning pass applied to lines
// the classifier accepts.
type ScrubberConfig struct {
	// Phrases are exact multi-character watermark phrases removed
	// wholesale before glyph-level cleaning.
	Phrases []string

	// Glyphs is the fixed allow-list of noise glyphs: characters that
	// appear almost exclusively inside watermark tokens. The list is
	// never inferred at runtime. Glyphs shared with common legitimate
	// words (身份证's 证, for one) must stay off the default list,
	// because the sandwich rule below would strip them out of real
	// prose; that lost recall is the price of not corrupting content.
	Glyphs string

	// SandwichPasses is how many times the isolated-glyph rule is
	// re-applied to catch chains of stray glyphs.
	SandwichPasses int
}

// DefaultScrubberConfig returns the glyph list observed in bank seal
// and signature stamp overlays on the filing corpus.
func DefaultScrubberConfig() ScrubberConfig {
	return ScrubberConfig{
		Phrases: []string{
			"电子签章",
			"电子印章",
			"回单专用章",
		},
		Glyphs:         "银商招章签印鉴",
		SandwichPasses: 5,
	}
}

// Scrubber removes interior noise characters from a line without
// discarding the line itself.
type Scrubber struct {
	config   ScrubberConfig
	glyphs   map[rune]bool
	replacer *strings.Replacer
	spaceRun *regexp.Regexp
}

// NewScrubber creates a scrubber with the given configuration.
func NewScrubber(config ScrubberConfig) *Scrubber {
	if config.SandwichPasses <= 0 {
		config.SandwichPasses = 5
	}

	glyphs := make(map[rune]bool, len(config.Glyphs))
	for _, r := range config.Glyphs {
		glyphs[r] = true
	}

	pairs := make([]string, 0, len(config.Phrases)*2)
	for _, phrase := range config.Phrases {
		if phrase != "" {
			pairs = append(pairs, phrase, "")
		}
	}

	return &Scrubber{
		config:   config,
		glyphs:   glyphs,
		replacer: strings.NewReplacer(pairs...),
		spaceRun: regexp.MustCompile(`\s{2,}`),
	}
}

// Scrub applies the cleaning passes in order: known phrases, repeated
// glyphs, glyph runs, isolated sandwiched glyphs, edge glyphs, then
// whitespace normalization.
func (s *Scrubber) Scrub(line string) string {
	if line == "" {
		return ""
	}

	line = s.replacer.Replace(line)
	line = s.dropRepeatedGlyphs(line)
	line = s.dropGlyphRuns(line)
	for i := 0; i < s.config.SandwichPasses; i++ {
		next := s.dropSandwichedGlyph(line)
		if next == line {
			break
		}
		line = next
	}
	line = s.trimEdgeGlyphs(line)
	line = s.spaceRun.ReplaceAllString(line, " ")

	return strings.TrimSpace(line)
}

// dropRepeatedGlyphs removes immediate repeats of the same noise glyph
// entirely (a doubled seal character is never content).
func (s *Scrubber) dropRepeatedGlyphs(line string) string {
	runes := []rune(line)
	var out []rune

	for i := 0; i < len(runes); {
		r := runes[i]
		j := i + 1
		for j < len(runes) && runes[j] == r {
			j++
		}
		if j-i >= 2 && s.glyphs[r] {
			i = j
			continue
		}
		out = append(out, runes[i:j]...)
		i = j
	}

	return string(out)
}

// dropGlyphRuns removes runs of two or more consecutive noise glyphs,
// identical or not.
func (s *Scrubber) dropGlyphRuns(line string) string {
	runes := []rune(line)
	var out []rune

	for i := 0; i < len(runes); {
		if !s.glyphs[runes[i]] {
			out = append(out, runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && s.glyphs[runes[j]] {
			j++
		}
		if j-i >= 2 {
			i = j
			continue
		}
		out = append(out, runes[i])
		i = j
	}

	return string(out)
}

// dropSandwichedGlyph removes a lone noise glyph wedged between two
// non-noise, non-whitespace characters.
func (s *Scrubber) dropSandwichedGlyph(line string) string {
	runes := []rune(line)
	var out []rune

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if s.glyphs[r] && i > 0 && i < len(runes)-1 {
			prev, next := runes[i-1], runes[i+1]
			if !s.glyphs[prev] && !s.glyphs[next] &&
				!unicode.IsSpace(prev) && !unicode.IsSpace(next) {
				continue
			}
		}
		out = append(out, r)
	}

	return string(out)
}

// trimEdgeGlyphs strips leading and trailing runs of noise glyphs.
func (s *Scrubber) trimEdgeGlyphs(line string) string {
	return strings.TrimFunc(line, func(r rune) bool {
		return s.glyphs[r]
	})
}
