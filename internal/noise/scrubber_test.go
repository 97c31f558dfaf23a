package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubber_SealRunInsideProse(t *testing.T) {
	// Corpus sample: a bank seal overlapping the line injects the run
	// 银商招证银 between 原告 and 请求. With 证 on the glyph list the
	// whole run goes; the characters adjacent to it survive.
	config := DefaultScrubberConfig()
	config.Glyphs = "银商招证章签印鉴"

	scrubber := NewScrubber(config)

	assert.Equal(t, "原告请求", scrubber.Scrub("原告银商招证银请求"))
}

func TestScrubber_DefaultGlyphsPreserveIDLabel(t *testing.T) {
	// 证 stays off the default list precisely so labels like 身份证号码
	// are never mutilated by the sandwich rule.
	scrubber := NewScrubber(DefaultScrubberConfig())

	assert.Equal(t, "身份证号码：110101199001011234",
		scrubber.Scrub("身份证号码：110101199001011234"))
}

func TestScrubber_Passes(t *testing.T) {
	scrubber := NewScrubber(DefaultScrubberConfig())

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "known_phrase_removed",
			in:   "本判决书电子签章已生效",
			want: "本判决书已生效",
		},
		{
			name: "doubled_glyph_removed",
			in:   "合同章章约定利息",
			want: "合同约定利息",
		},
		{
			name: "distinct_glyph_run_removed",
			in:   "原告银商招请求判令",
			want: "原告请求判令",
		},
		{
			name: "sandwiched_glyph_removed",
			in:   "原告章请求",
			want: "原告请求",
		},
		{
			name: "chained_stray_glyphs_removed_over_passes",
			in:   "原告章请签求判印令",
			want: "原告请求判令",
		},
		{
			name: "edge_glyphs_stripped",
			in:   "签原告请求判令章",
			want: "原告请求判令",
		},
		{
			name: "whitespace_collapsed",
			in:   "原告  请求   判令",
			want: "原告 请求 判令",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scrubber.Scrub(tt.in))
		})
	}
}

func TestScrubber_LegitimateGlyphNextToSpaceKept(t *testing.T) {
	// The sandwich rule requires non-whitespace on both sides; a lone
	// glyph at a word boundary is left alone rather than guessed at.
	scrubber := NewScrubber(DefaultScrubberConfig())

	assert.Equal(t, "存入 银 行", scrubber.Scrub("存入 银 行"))
}
