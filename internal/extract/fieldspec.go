package extract

import (
	"regexp"
	"strings"
)

// FieldSpec declares how one structured field is located. Anchor-bound
// fields use Labels and Anchors; block fields use StartLabels and
// EndLabels. Specs are static configuration compiled once at pipeline
// construction, never mutated afterwards.
type FieldSpec struct {
	// Labels are acceptable header aliases for the field.
	Labels []string

	// Anchors terminate an anchor-bounded value: the value runs from
	// the label to whichever anchor occurs first.
	Anchors []string

	// StartLabels and EndLabels bound a block field.
	StartLabels []string
	EndLabels   []string
}

// SpecSet is the complete extraction configuration for a complaint
// corpus: the case title delimiter plus one spec per field.
type SpecSet struct {
	// CaseTitle is the canonical filing-title phrase that separates
	// cases inside one document.
	CaseTitle string

	Defendant   FieldSpec
	IDNumber    FieldSpec
	Request     FieldSpec
	FactsReason FieldSpec

	// MaxDefendantLen truncates run-on defendant matches, in runes.
	MaxDefendantLen int

	// TruncationMarkers cut block fields at known closing text found
	// anywhere in the captured span, applied in the order given.
	TruncationMarkers []string
}

// DefaultSpecSet returns the label table for Chinese civil complaint
// filings (民事起诉状).
func DefaultSpecSet() SpecSet {
	return SpecSet{
		CaseTitle: "民事起诉状",
		Defendant: FieldSpec{
			Labels:  []string{"被告"},
			Anchors: []string{"性别", "生日", "出生", "身份证", "住址", "住所地", "联系电话"},
		},
		IDNumber: FieldSpec{
			Labels: []string{"身份证号码", "身份证号", "公民身份号码"},
		},
		Request: FieldSpec{
			StartLabels: []string{"诉讼请求"},
			EndLabels:   []string{"事实与理由", "事实和理由", "事实及理由"},
		},
		FactsReason: FieldSpec{
			StartLabels: []string{"事实与理由", "事实和理由", "事实及理由"},
			EndLabels:   []string{"此致"},
		},
		MaxDefendantLen: 50,
		// Deterministic post-hoc cut order: closing salutation first,
		// then attachment marker, then petitioner signature line.
		TruncationMarkers: []string{"此致", "附：", "附件", "具状人", "起诉人"},
	}
}

// spaceTolerant builds a pattern matching the phrase with arbitrary
// whitespace between its characters, the way labels survive
// character-box reassembly ("被 告").
func spaceTolerant(phrase string) string {
	runes := []rune(phrase)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = regexp.QuoteMeta(string(r))
	}
	return strings.Join(parts, `\s*`)
}

// labelAlternation compiles a set of aliases into one alternation,
// each alias space-tolerant.
func labelAlternation(labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, label := range labels {
		if label != "" {
			parts = append(parts, spaceTolerant(label))
		}
	}
	return "(?:" + strings.Join(parts, "|") + ")"
}

// fuzzyPhrase builds a pattern for the phrase tolerating one stray
// character between constituent characters — the residue incompletely
// scrubbed watermarks leave inside the case title.
func fuzzyPhrase(phrase string) string {
	runes := []rune(phrase)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = regexp.QuoteMeta(string(r))
	}
	return strings.Join(parts, `[\s\S]?`)
}
