// Package noise filters watermark and seal artifacts out of extracted
// legal document text. Electronic stamps, bank signatures, and security
// overlays leak stray characters into the text stream; this package
// decides, line by line, what is noise and scrubs residual noise
// glyphs out of the lines it keeps.
package noise

import (
	"strings"
	"unicode"
)

// ClassifierConfig holds the tunable thresholds for the line-level
// noise decision. The calibration of these values against a labeled
// corpus is an open question; the defaults below are the ones that
// behaved best on the scanned filings observed so far.
type ClassifierConfig struct {
	// WatermarkPhrases are literal substrings that only ever appear
	// inside electronic seals and bank watermarks.
	WatermarkPhrases []string

	// RepeatRunLength is the length of a run of identical characters
	// that marks a line as noise.
	RepeatRunLength int

	// UppercaseRunLength is the length of a run of consecutive
	// uppercase Latin letters that marks a short line as noise
	// (watermark numbering such as "XJD0087").
	UppercaseRunLength int

	// ShortLineLimit bounds the uppercase-run rule: runs only count
	// against lines shorter than this many characters.
	ShortLineLimit int

	// DominantCharRatio marks a line as noise when a single character
	// accounts for more than this fraction of the line. Catches novel
	// repeated-character watermarks the literal list misses.
	DominantCharRatio float64

	// DominantCharMinLen is the minimum line length, in runes, for the
	// dominant-character rule to apply.
	DominantCharMinLen int

	// MinCJKChars is the minimum number of ideographic characters a
	// line made up only of Latin letters, digits, and whitespace must
	// carry to count as content. Only enforced when RequireCJK is set.
	MinCJKChars int

	// RequireCJK should be set when the corpus is ideograph-heavy, so
	// stray Latin/digit numbering lines can be treated as artifacts.
	RequireCJK bool
}

// DefaultClassifierConfig returns the thresholds tuned for scanned
// Chinese civil complaint filings.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		WatermarkPhrases: []string{
			"电子签章",
			"电子印章",
			"签章专用",
			"回单专用章",
			"章Z",
			"签Y",
			"FFF",
		},
		RepeatRunLength:    3,
		UppercaseRunLength: 3,
		ShortLineLimit:     20,
		DominantCharRatio:  0.45,
		DominantCharMinLen: 6,
		MinCJKChars:        3,
		RequireCJK:         true,
	}
}

// Classifier makes the per-line is-noise decision. It is read-only
// after construction and safe for concurrent use.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(config ClassifierConfig) *Classifier {
	if config.RepeatRunLength <= 0 {
		config.RepeatRunLength = 3
	}
	if config.UppercaseRunLength <= 0 {
		config.UppercaseRunLength = 3
	}
	return &Classifier{config: config}
}

// IsNoise reports whether the line should be discarded outright.
// False negatives are tolerable: residual in-line noise is cleaned up
// by the Scrubber. Dropping genuine content is the real failure mode,
// so short or ambiguous lines need more than one signal to be dropped.
func (c *Classifier) IsNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}

	for _, phrase := range c.config.WatermarkPhrases {
		if phrase != "" && strings.Contains(trimmed, phrase) {
			return true
		}
	}

	runes := []rune(trimmed)

	if c.hasRepeatRun(runes) {
		return true
	}

	if len(runes) < c.config.ShortLineLimit && c.hasUppercaseRun(runes) {
		return true
	}

	if c.dominantCharExceedsRatio(runes) {
		return true
	}

	if c.config.RequireCJK && c.lacksNaturalScript(runes) {
		return true
	}

	return false
}

// hasRepeatRun reports a run of RepeatRunLength identical characters.
// Digit runs are exempt: amounts like 50000 repeat legitimately.
func (c *Classifier) hasRepeatRun(runes []rune) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		r := runes[i]
		if r == runes[i-1] && !unicode.IsSpace(r) && !(r >= '0' && r <= '9') {
			run++
			if run >= c.config.RepeatRunLength {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

// hasUppercaseRun reports a run of consecutive uppercase Latin letters.
func (c *Classifier) hasUppercaseRun(runes []rune) bool {
	run := 0
	for _, r := range runes {
		if r >= 'A' && r <= 'Z' {
			run++
			if run >= c.config.UppercaseRunLength {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

// dominantCharExceedsRatio reports whether a single character
// dominates the line beyond the configured fraction.
func (c *Classifier) dominantCharExceedsRatio(runes []rune) bool {
	if c.config.DominantCharRatio <= 0 || len(runes) < c.config.DominantCharMinLen {
		return false
	}

	counts := make(map[rune]int, len(runes))
	max := 0
	total := 0
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		counts[r]++
		if counts[r] > max {
			max = counts[r]
		}
	}
	if total < c.config.DominantCharMinLen {
		return false
	}

	return float64(max) > c.config.DominantCharRatio*float64(total)
}

// lacksNaturalScript reports whether the line carries fewer than
// MinCJKChars ideographs while consisting only of Latin letters,
// digits, whitespace, and basic punctuation — the shape of stray page
// numbering or OCR artifacts in an ideograph-heavy corpus.
func (c *Classifier) lacksNaturalScript(runes []rune) bool {
	cjk := 0
	latinOrDigit := 0
	for _, r := range runes {
		if unicode.Is(unicode.Han, r) {
			cjk++
			continue
		}
		latin := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if latin || digit {
			latinOrDigit++
			continue
		}
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			// Some other natural script; leave the decision to the
			// remaining rules.
			return false
		}
	}
	// A short pure-ideograph line ("此致") is content, not numbering.
	return latinOrDigit > 0 && cjk < c.config.MinCJKChars
}
