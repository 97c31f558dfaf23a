package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmenter_TwoTitles(t *testing.T) {
	segmenter := NewSegmenter("民事起诉状")

	doc := "民事起诉状\n被告：张三\n此致\n民事起诉状\n被告：李四\n此致"
	blocks := segmenter.Split(doc)

	assert.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "张三")
	assert.Contains(t, blocks[1], "李四")
}

func TestSegmenter_LeadingAndTrailingEmptySegmentsDropped(t *testing.T) {
	segmenter := NewSegmenter("民事起诉状")

	doc := "  \n民事起诉状\n被告：张三\n民事起诉状\n被告：李四\n民事起诉状\n  "
	blocks := segmenter.Split(doc)

	assert.LessOrEqual(t, len(blocks), 3)
	assert.Len(t, blocks, 2)
}

func TestSegmenter_NoTitleYieldsWholeDocument(t *testing.T) {
	segmenter := NewSegmenter("民事起诉状")

	doc := "被告：张三\n诉讼请求：判令偿还借款"
	blocks := segmenter.Split(doc)

	assert.Equal(t, []string{doc}, blocks)
}

func TestSegmenter_FuzzyTitleWithStrayCharacters(t *testing.T) {
	segmenter := NewSegmenter("民事起诉状")

	tests := []struct {
		name string
		doc  string
	}{
		{name: "stray_seal_glyph_inside_title", doc: "民章事起诉状\n被告：张三"},
		{name: "spaced_title", doc: "民 事 起 诉 状\n被告：张三"},
		{name: "two_stray_characters", doc: "民章事起Z诉状\n被告：张三"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := segmenter.Split(tt.doc)
			assert.Len(t, blocks, 1)
			assert.Contains(t, blocks[0], "张三")
			assert.NotContains(t, blocks[0], "起诉状")
		})
	}
}

func TestSegmenter_EmptyInput(t *testing.T) {
	segmenter := NewSegmenter("民事起诉状")
	assert.Empty(t, segmenter.Split(""))
}
