// Package layout reconstructs reading-order lines from unordered
// positioned text fragments, whether they come from a PDF text layer
// (per-character boxes) or an OCR pass (per-word boxes).
package layout

import (
	"math"
	"sort"
	"strings"
)

// Fragment is a single recognized glyph or word with its position on
// the page. Coordinates are in the source's native space; only the
// relative ordering matters to the assembler.
type Fragment struct {
	Text string
	X    float64
	Y    float64
}

// Config controls how fragments are grouped into lines.
type Config struct {
	// BucketHeight is the height of the vertical quantization bucket.
	// Fragments whose Y positions fall into the same bucket are treated
	// as one line. Character boxes from a vector text layer sit on
	// near-identical baselines, so a tight bucket works; OCR boxes
	// jitter by several units and need a wider one.
	BucketHeight float64

	// Joiner is inserted between adjacent fragments of a line. Empty
	// for character-level sources, a single space for word-level
	// sources so adjacent OCR words do not merge.
	Joiner string

	// YAxisUp indicates the coordinate system grows upward (PDF text
	// space). When set, larger bucket keys are emitted first so lines
	// still come out top-to-bottom.
	YAxisUp bool
}

// CharBoxConfig returns the assembler configuration for per-character
// boxes from a PDF text layer.
func CharBoxConfig() Config {
	return Config{
		BucketHeight: 4,
		Joiner:       "",
		YAxisUp:      true,
	}
}

// WordBoxConfig returns the assembler configuration for word boxes
// produced by OCR over a rendered page image.
func WordBoxConfig() Config {
	return Config{
		BucketHeight: 20,
		Joiner:       " ",
		YAxisUp:      false,
	}
}

// Assembler groups positioned fragments into ordered lines. It is
// stateless and safe for concurrent use across pages.
type Assembler struct {
	config Config
}

// NewAssembler creates an assembler with the given configuration.
func NewAssembler(config Config) *Assembler {
	if config.BucketHeight <= 0 {
		config.BucketHeight = CharBoxConfig().BucketHeight
	}
	return &Assembler{config: config}
}

// bucketKey quantizes a vertical position into its bucket. Pure
// function of Y; a fragment can never land in two buckets.
func (a *Assembler) bucketKey(y float64) int {
	return int(math.Floor(y / a.config.BucketHeight))
}

// AssemblePage groups one page's fragments into lines ordered
// top-to-bottom, each line's fragments concatenated left-to-right.
func (a *Assembler) AssemblePage(fragments []Fragment) []string {
	if len(fragments) == 0 {
		return nil
	}

	buckets := make(map[int][]Fragment)
	for _, frag := range fragments {
		key := a.bucketKey(frag.Y)
		buckets[key] = append(buckets[key], frag)
	}

	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	if a.config.YAxisUp {
		sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	} else {
		sort.Ints(keys)
	}

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		row := buckets[key]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})

		parts := make([]string, 0, len(row))
		for _, frag := range row {
			parts = append(parts, frag.Text)
		}
		lines = append(lines, strings.Join(parts, a.config.Joiner))
	}

	return lines
}
