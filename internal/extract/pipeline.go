package extract

import (
	"context"
	"strings"

	"github.com/lexidoc/complaint-extract/internal/layout"
	"github.com/lexidoc/complaint-extract/internal/noise"
)

// Source is one transcript of a document: per-page fragment sets plus
// the layout profile they were produced under.
type Source struct {
	Pages  [][]layout.Fragment
	Layout layout.Config
}

// Document carries the transcripts handed in by the upstream
// collaborators. Either source may be absent.
type Document struct {
	Text *Source
	OCR  *Source
}

// PipelineConfig bundles the heuristic configuration of every stage.
type PipelineConfig struct {
	Classifier noise.ClassifierConfig
	Scrubber   noise.ScrubberConfig
	Specs      SpecSet
}

// DefaultPipelineConfig returns the configuration tuned for the civil
// complaint corpus.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Classifier: noise.DefaultClassifierConfig(),
		Scrubber:   noise.DefaultScrubberConfig(),
		Specs:      DefaultSpecSet(),
	}
}

// Pipeline runs the full chain: line assembly, noise filtering, case
// segmentation, field extraction, and dual-source merging. It holds
// only read-only compiled configuration and is safe for concurrent
// use over independent documents.
type Pipeline struct {
	classifier *noise.Classifier
	scrubber   *noise.Scrubber
	segmenter  *Segmenter
	fields     *FieldExtractor
	merger     *Merger
}

// NewPipeline compiles the configuration into a ready pipeline.
func NewPipeline(config PipelineConfig) *Pipeline {
	specs := config.Specs
	if specs.CaseTitle == "" {
		specs = DefaultSpecSet()
	}

	return &Pipeline{
		classifier: noise.NewClassifier(config.Classifier),
		scrubber:   noise.NewScrubber(config.Scrubber),
		segmenter:  NewSegmenter(specs.CaseTitle),
		fields:     NewFieldExtractor(specs),
		merger:     NewMerger(),
	}
}

// Extract runs both transcripts of the document through the pipeline
// and merges the results. The context is honored between pages and
// between case blocks; everything below this call is total and cannot
// fail on malformed content.
func (p *Pipeline) Extract(ctx context.Context, doc Document) (*Result, error) {
	var textResult, ocrResult *ExtractionResult

	if doc.Text != nil {
		var err error
		textResult, err = p.ExtractSource(ctx, doc.Text, SourceText)
		if err != nil {
			return nil, err
		}
	}
	if doc.OCR != nil {
		var err error
		ocrResult, err = p.ExtractSource(ctx, doc.OCR, SourceOCR)
		if err != nil {
			return nil, err
		}
	}

	records := p.merger.Merge(textResult, ocrResult)

	return &Result{
		Records: records,
		Count:   len(records),
		UsedOCR: ocrResult != nil && len(ocrResult.Records) > 0,
	}, nil
}

// ExtractSource assembles, cleans, and extracts one transcript.
func (p *Pipeline) ExtractSource(ctx context.Context, src *Source, tag string) (*ExtractionResult, error) {
	assembler := layout.NewAssembler(src.Layout)

	pageTexts := make([]string, 0, len(src.Pages))
	for _, page := range src.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pageTexts = append(pageTexts, p.cleanLines(assembler.AssemblePage(page)))
	}

	return p.ExtractText(ctx, strings.Join(pageTexts, "\n"), tag)
}

// ExtractText runs segmentation and field extraction over an already
// linear transcript. Input that skipped line assembly (a DOCX
// paragraph stream) still goes through per-line noise filtering.
func (p *Pipeline) ExtractText(ctx context.Context, text, tag string) (*ExtractionResult, error) {
	clean := p.cleanLines(strings.Split(text, "\n"))

	result := &ExtractionResult{Source: tag}
	for _, block := range p.segmenter.Split(clean) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record := p.fields.ExtractBlock(block)
		if record.IsEmpty() {
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// cleanLines drops noise lines and scrubs the survivors.
func (p *Pipeline) cleanLines(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if p.classifier.IsNoise(line) {
			continue
		}
		scrubbed := p.scrubber.Scrub(line)
		if scrubbed == "" {
			continue
		}
		kept = append(kept, scrubbed)
	}
	return strings.Join(kept, "\n")
}
