package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/lexidoc/complaint-extract/internal/textfold"
)

// Birth-year plausibility window for personal ID validation.
const (
	minBirthYear = 1900
	maxBirthYear = 2030
)

// orgCodeMarkers flag an 18-character sequence as an organizational or
// credit code rather than a personal ID when found shortly before it.
var orgCodeMarkers = []string{"统一社会信用代码", "信用代码", "组织机构", "注册号", "代码"}

// idContextWindow is how many runes before a candidate ID are checked
// for organizational-code markers.
const idContextWindow = 10

// FieldExtractor extracts the four case fields from one case block.
// All patterns are compiled once from the SpecSet at construction;
// the extractor is read-only afterwards and safe to share across
// concurrently processed blocks.
type FieldExtractor struct {
	specs SpecSet

	defLabel  *regexp.Regexp
	defAnchor *regexp.Regexp

	idLabeled   *regexp.Regexp
	idCandidate *regexp.Regexp

	request *regexp.Regexp
	facts   *regexp.Regexp

	truncation []*regexp.Regexp
}

// NewFieldExtractor compiles the declarative spec table into the
// reusable matchers.
func NewFieldExtractor(specs SpecSet) *FieldExtractor {
	if specs.MaxDefendantLen <= 0 {
		specs.MaxDefendantLen = DefaultSpecSet().MaxDefendantLen
	}

	truncation := make([]*regexp.Regexp, 0, len(specs.TruncationMarkers))
	for _, marker := range specs.TruncationMarkers {
		if marker != "" {
			truncation = append(truncation, regexp.MustCompile(spaceTolerant(marker)))
		}
	}

	return &FieldExtractor{
		specs: specs,

		defLabel:  regexp.MustCompile(labelAlternation(specs.Defendant.Labels) + `\s*[:：]?`),
		defAnchor: regexp.MustCompile(`[,，、:：\s]*` + labelAlternation(specs.Defendant.Anchors)),

		idLabeled:   regexp.MustCompile(labelAlternation(specs.IDNumber.Labels) + `\s*[:：]?\s*([0-9]{17}[0-9Xx])`),
		idCandidate: regexp.MustCompile(`[0-9]{17}[0-9Xx]`),

		request: blockPattern(specs.Request),
		facts:   blockPattern(specs.FactsReason),

		truncation: truncation,
	}
}

// blockPattern compiles a block field spec: first start label,
// optional colon, non-greedy capture to the first end label or
// end-of-block.
func blockPattern(spec FieldSpec) *regexp.Regexp {
	pattern := `(?s)` + labelAlternation(spec.StartLabels) + `\s*[:：]?\s*(.*?)(?:` +
		labelAlternation(spec.EndLabels) + `|$)`
	return regexp.MustCompile(pattern)
}

// ExtractBlock extracts all four fields from one case block. Fields
// that cannot be found stay empty; an empty block yields an all-empty
// record for the caller to drop.
func (e *FieldExtractor) ExtractBlock(block string) CaseRecord {
	if strings.TrimSpace(block) == "" {
		return CaseRecord{}
	}

	return CaseRecord{
		Defendant:   e.extractDefendant(block),
		IDNumber:    e.extractIDNumber(block),
		Request:     e.extractBlockField(e.request, block),
		FactsReason: e.extractBlockField(e.facts, block),
	}
}

// extractDefendant is the anchor-bounded strategy: value runs from the
// first label to the earliest anchor keyword, or to the length cap.
func (e *FieldExtractor) extractDefendant(block string) string {
	loc := e.defLabel.FindStringIndex(block)
	if loc == nil {
		return ""
	}

	remaining := strings.ReplaceAll(block[loc[1]:], "\n", "")

	if end := e.defAnchor.FindStringIndex(remaining); end != nil {
		remaining = remaining[:end[0]]
	}

	runes := []rune(remaining)
	if len(runes) > e.specs.MaxDefendantLen {
		runes = runes[:e.specs.MaxDefendantLen]
	}

	name := strings.TrimFunc(string(runes), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	// Residual label fragments left by noisy reassembly.
	for _, label := range e.specs.Defendant.Labels {
		name = strings.TrimPrefix(name, label)
	}

	return strings.TrimSpace(name)
}

// extractIDNumber is the validated-pattern strategy: a labeled
// 18-character identifier wins outright; otherwise every 18-character
// candidate in the block is screened by birth year and by the absence
// of organizational-code wording just before it.
func (e *FieldExtractor) extractIDNumber(block string) string {
	if m := e.idLabeled.FindStringSubmatch(block); len(m) > 1 {
		return strings.ToUpper(m[1])
	}

	for _, loc := range e.idCandidate.FindAllStringIndex(block, -1) {
		candidate := block[loc[0]:loc[1]]
		if !plausibleBirthYear(candidate) {
			continue
		}
		if hasOrgCodeContext(block[:loc[0]]) {
			continue
		}
		return strings.ToUpper(candidate)
	}

	return ""
}

// plausibleBirthYear checks the year embedded at offset 6 of a
// personal ID.
func plausibleBirthYear(id string) bool {
	if len(id) < 10 {
		return false
	}
	year, err := strconv.Atoi(id[6:10])
	if err != nil {
		return false
	}
	return year >= minBirthYear && year <= maxBirthYear
}

// hasOrgCodeContext reports organizational/credit-code wording within
// the context window before a candidate.
func hasOrgCodeContext(prefix string) bool {
	runes := []rune(prefix)
	if len(runes) > idContextWindow {
		runes = runes[len(runes)-idContextWindow:]
	}
	window := string(runes)

	for _, marker := range orgCodeMarkers {
		if strings.Contains(window, marker) {
			return true
		}
	}
	return false
}

// extractBlockField is the block-bounded strategy shared by the
// litigation request and the facts/reasons fields.
func (e *FieldExtractor) extractBlockField(pattern *regexp.Regexp, block string) string {
	m := pattern.FindStringSubmatch(block)
	if len(m) < 2 {
		return ""
	}

	value := m[1]

	// The non-greedy end bound fails when noise fuses the end label
	// into surrounding text, so known closing markers cut the span a
	// second time, in declared priority order.
	for _, marker := range e.truncation {
		if loc := marker.FindStringIndex(value); loc != nil {
			value = value[:loc[0]]
		}
	}

	value = strings.TrimLeft(value, ":： \t\n\r，,、。")

	return textfold.Fold(value)
}
