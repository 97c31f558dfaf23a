package noise

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_IsNoise(t *testing.T) {
	classifier := NewClassifier(DefaultClassifierConfig())

	tests := []struct {
		name  string
		line  string
		noise bool
	}{
		{
			name:  "empty",
			line:  "",
			noise: true,
		},
		{
			name:  "whitespace_only",
			line:  "   \t ",
			noise: true,
		},
		{
			name:  "watermark_phrase",
			line:  "原告某某 电子签章 材料",
			noise: true,
		},
		{
			name:  "ten_repeated_characters",
			line:  strings.Repeat("章", 10),
			noise: true,
		},
		{
			name:  "short_uppercase_run",
			line:  "XJD0087",
			noise: true,
		},
		{
			name:  "uppercase_run_in_long_prose_kept",
			line:  "本案涉及ABC公司与被告之间的借款合同纠纷一案的事实",
			noise: false,
		},
		{
			name:  "dominant_character_ratio",
			line:  "年年年年月月日日",
			noise: true,
		},
		{
			name:  "latin_digits_without_ideographs",
			line:  "No 42 page 3",
			noise: true,
		},
		{
			name:  "short_pure_ideograph_line_kept",
			line:  "此致",
			noise: false,
		},
		{
			name:  "normal_prose_line_kept",
			line:  "原告与被告因民间借贷产生纠纷诉至法院",
			noise: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.noise, classifier.IsNoise(tt.line), "line: %q", tt.line)
		})
	}
}

func TestClassifier_ThresholdsConfigurable(t *testing.T) {
	config := DefaultClassifierConfig()
	config.RepeatRunLength = 5

	classifier := NewClassifier(config)

	assert.False(t, classifier.IsNoise("哈哈哈，确有此事，双方当场对账确认无误"))
	assert.True(t, classifier.IsNoise("哈哈哈哈哈，确有此事，双方当场对账确认无误"))
}

func TestClassifier_DominantRatioSkipsShortLines(t *testing.T) {
	classifier := NewClassifier(DefaultClassifierConfig())

	// Below DominantCharMinLen the ratio rule must not fire.
	assert.False(t, classifier.IsNoise("了了之事"))
}
