// Package service orchestrates the extraction pipeline: reading
// document sources, the OCR fallback, caching, and directory batch
// runs.
package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/lexidoc/complaint-extract/internal/config"
	"github.com/lexidoc/complaint-extract/internal/docx"
	"github.com/lexidoc/complaint-extract/internal/extract"
	"github.com/lexidoc/complaint-extract/internal/layout"
	"github.com/lexidoc/complaint-extract/internal/ocr"
	"github.com/lexidoc/complaint-extract/internal/pdfio"
)

// EngineFactory creates an OCR engine on demand. Engines hold a
// Tesseract handle, so one is created per extraction and closed after.
type EngineFactory func() (ocr.Engine, error)

// FileResult is the outcome of extracting one document. Pages is only
// set for paginated sources; a .docx carries no page boundaries.
type FileResult struct {
	Path    string               `json:"path"`
	Records []extract.CaseRecord `json:"records"`
	Count   int                  `json:"count"`
	Pages   int                  `json:"pages,omitempty"`
	UsedOCR bool                 `json:"used_ocr"`
	Error   string               `json:"error,omitempty"`
}

// clone returns an independent copy so callers cannot mutate records
// held by the cache.
func (r *FileResult) clone() *FileResult {
	out := *r
	out.Records = append([]extract.CaseRecord(nil), r.Records...)
	return &out
}

// DirectoryResult aggregates the outcomes of a batch run.
type DirectoryResult struct {
	Directory    string       `json:"directory"`
	Files        []FileResult `json:"files"`
	TotalRecords int          `json:"total_records"`
	Failed       int          `json:"failed"`
}

// Service handles complaint extraction by orchestrating the input
// readers and the pipeline
type Service struct {
	cfg           *config.Config
	reader        *pdfio.Reader
	pipeline      *extract.Pipeline
	guard         *DirectoryGuard
	cache         *gocache.Cache
	renderer      ocr.Renderer
	engineFactory EngineFactory
	charLayout    layout.Config
	wordLayout    layout.Config
}

// NewService creates a service from the configuration. The OCR
// fallback is only wired when enabled.
func NewService(cfg *config.Config) (*Service, error) {
	guard, err := NewDirectoryGuard(cfg.DocumentDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory guard: %w", err)
	}

	charLayout := layout.CharBoxConfig()
	charLayout.BucketHeight = cfg.CharBucketHeight
	wordLayout := layout.WordBoxConfig()
	wordLayout.BucketHeight = cfg.WordBucketHeight

	pipelineCfg := extract.DefaultPipelineConfig()
	pipelineCfg.Classifier.RepeatRunLength = cfg.RepeatRunLength
	pipelineCfg.Classifier.DominantCharRatio = cfg.DominantCharRatio
	pipelineCfg.Specs.MaxDefendantLen = cfg.MaxDefendantLen

	ttl := time.Duration(cfg.CacheTTL) * time.Minute

	s := &Service{
		cfg:        cfg,
		reader:     pdfio.NewReader(cfg.MaxFileSize),
		pipeline:   extract.NewPipeline(pipelineCfg),
		guard:      guard,
		cache:      gocache.New(ttl, 2*ttl),
		charLayout: charLayout,
		wordLayout: wordLayout,
	}

	if cfg.OCREnabled {
		s.renderer = ocr.NewPopplerRenderer()
		language := cfg.OCRLanguage
		s.engineFactory = func() (ocr.Engine, error) {
			return ocr.NewTesseractEngine(language)
		}
	}

	return s, nil
}

// WithOCR overrides the OCR collaborators. Used by tests and by
// callers that render pages differently.
func (s *Service) WithOCR(renderer ocr.Renderer, factory EngineFactory) *Service {
	s.renderer = renderer
	s.engineFactory = factory
	return s
}

// ExtractFile extracts the case records of one document. PDF files go
// through the positioned-fragment pipeline; .docx files carry no
// positions and go straight to segmentation.
func (s *Service) ExtractFile(ctx context.Context, path string) (*FileResult, error) {
	if err := s.guard.CheckPath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	key, err := s.cacheKey(path)
	if err == nil {
		if cached, found := s.cache.Get(key); found {
			return cached.(*FileResult).clone(), nil
		}
	}

	var result *FileResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		result, err = s.extractPDF(ctx, path)
	case ".docx":
		result, err = s.extractDocx(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported document type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		s.cache.Set(key, result.clone(), gocache.DefaultExpiration)
	}
	return result, nil
}

func (s *Service) extractPDF(ctx context.Context, path string) (*FileResult, error) {
	doc, err := s.reader.ReadCharBoxes(path)
	if err != nil {
		return nil, err
	}

	var input extract.Document
	hasText := doc.HasTextLayer()
	if hasText {
		input.Text = &extract.Source{Pages: doc.Pages, Layout: s.charLayout}
	}

	if s.ocrReady() && (!hasText || s.cfg.OCREnabled) {
		pages, err := s.readOCRPages(ctx, path)
		if err != nil {
			if !hasText {
				return nil, fmt.Errorf("OCR fallback failed: %w", err)
			}
			// Text layer alone still yields a result
			log.Printf("OCR source unavailable for %s: %v", path, err)
		} else {
			input.OCR = &extract.Source{Pages: pages, Layout: s.wordLayout}
		}
	}

	if input.Text == nil && input.OCR == nil {
		return nil, fmt.Errorf("%w: %s", pdfio.ErrNoTextLayer, path)
	}

	res, err := s.pipeline.Extract(ctx, input)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		Path:    path,
		Records: res.Records,
		Count:   res.Count,
		Pages:   doc.PageCount,
		UsedOCR: res.UsedOCR,
	}, nil
}

func (s *Service) extractDocx(ctx context.Context, path string) (*FileResult, error) {
	text, err := docx.ExtractText(path)
	if err != nil {
		return nil, err
	}

	res, err := s.pipeline.ExtractText(ctx, text, extract.SourceText)
	if err != nil {
		return nil, err
	}

	return &FileResult{
		Path:    path,
		Records: res.Records,
		Count:   len(res.Records),
	}, nil
}

func (s *Service) readOCRPages(ctx context.Context, path string) ([][]layout.Fragment, error) {
	engine, err := s.engineFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR engine: %w", err)
	}
	defer engine.Close()

	return ocr.ReadWordBoxes(ctx, s.renderer, engine, path)
}

// ocrConfigured reports whether the OCR collaborators are wired.
func (s *Service) ocrConfigured() bool {
	return s.renderer != nil && s.engineFactory != nil
}

// ocrReady additionally probes renderers that can report whether
// their backing tool exists, so a missing pdftoppm degrades to
// text-only extraction instead of failing every scanned file.
func (s *Service) ocrReady() bool {
	if !s.ocrConfigured() {
		return false
	}
	if probe, ok := s.renderer.(interface{ Available() bool }); ok && !probe.Available() {
		return false
	}
	return true
}

// ExtractDirectory runs extraction over every supported document in a
// directory. Per-file failures are recorded, not fatal.
func (s *Service) ExtractDirectory(ctx context.Context, dir string) (*DirectoryResult, error) {
	if dir == "" {
		dir = s.guard.ConfiguredDirectory()
	}
	if err := s.guard.CheckDirectory(dir); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".pdf", ".docx":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	result := &DirectoryResult{Directory: dir, Files: make([]FileResult, 0, len(paths))}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fileResult, err := s.ExtractFile(ctx, path)
		if err != nil {
			result.Files = append(result.Files, FileResult{Path: path, Error: err.Error()})
			result.Failed++
			continue
		}
		result.Files = append(result.Files, *fileResult)
		result.TotalRecords += fileResult.Count
	}
	return result, nil
}

// ConfiguredDirectory returns the document directory the service
// confines access to.
func (s *Service) ConfiguredDirectory() string {
	return s.guard.ConfiguredDirectory()
}

// OCREnabled reports whether the OCR fallback is wired.
func (s *Service) OCREnabled() bool {
	return s.ocrConfigured()
}

// cacheKey derives a key from path, size, and mtime so edits
// invalidate cached results.
func (s *Service) cacheKey(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano()), nil
}
