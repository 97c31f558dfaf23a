package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemblePage_CharBoxes(t *testing.T) {
	// PDF text space: Y grows upward, so the title row has the
	// largest Y. Fragments arrive unordered.
	fragments := []Fragment{
		{Text: "书", X: 120, Y: 700},
		{Text: "起", X: 80, Y: 701},
		{Text: "诉", X: 100, Y: 699},
		{Text: "告", X: 100, Y: 650},
		{Text: "被", X: 80, Y: 651},
		{Text: "：", X: 120, Y: 650},
	}

	assembler := NewAssembler(CharBoxConfig())
	lines := assembler.AssemblePage(fragments)

	assert.Equal(t, []string{"起诉书", "被告："}, lines)
}

func TestAssemblePage_WordBoxesJoinedWithSpace(t *testing.T) {
	// Image space: Y grows downward. OCR boxes on one visual row
	// jitter vertically by a few pixels.
	fragments := []Fragment{
		{Text: "world", X: 200, Y: 108},
		{Text: "hello", X: 50, Y: 103},
		{Text: "second", X: 40, Y: 145},
	}

	assembler := NewAssembler(WordBoxConfig())
	lines := assembler.AssemblePage(fragments)

	assert.Equal(t, []string{"hello world", "second"}, lines)
}

func TestAssemblePage_JitterAbsorbedByBucket(t *testing.T) {
	assembler := NewAssembler(Config{BucketHeight: 20, Joiner: " "})

	fragments := []Fragment{
		{Text: "a", X: 0, Y: 41},
		{Text: "b", X: 10, Y: 59},
	}

	lines := assembler.AssemblePage(fragments)
	assert.Equal(t, []string{"a b"}, lines)
}

func TestAssemblePage_Empty(t *testing.T) {
	assembler := NewAssembler(CharBoxConfig())
	assert.Nil(t, assembler.AssemblePage(nil))
}

func TestAssemblePage_StableWithinSameX(t *testing.T) {
	// Fragments at identical positions keep their input order.
	fragments := []Fragment{
		{Text: "1", X: 10, Y: 0},
		{Text: "2", X: 10, Y: 0},
	}

	assembler := NewAssembler(Config{BucketHeight: 5})
	lines := assembler.AssemblePage(fragments)

	assert.Equal(t, []string{"12"}, lines)
}
