package ocr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	"github.com/lexidoc/complaint-extract/internal/layout"
)

// Renderer rasterizes the pages of a PDF file, one image per page.
type Renderer interface {
	RenderPages(ctx context.Context, pdfPath string) ([][]byte, error)
}

// PopplerRenderer renders pages by shelling out to pdftoppm.
type PopplerRenderer struct {
	// DPI for rendering; 300 recognizes Chinese filings reliably,
	// lower values lose the small ID number digits.
	DPI int
}

// NewPopplerRenderer returns a renderer with the default resolution.
func NewPopplerRenderer() *PopplerRenderer {
	return &PopplerRenderer{DPI: 300}
}

// Available reports whether pdftoppm can be found on the PATH.
func (r *PopplerRenderer) Available() bool {
	_, err := exec.LookPath("pdftoppm")
	return err == nil
}

// RenderPages rasterizes every page into a PNG image.
func (r *PopplerRenderer) RenderPages(ctx context.Context, pdfPath string) ([][]byte, error) {
	tempDir, err := os.MkdirTemp("", "complaint-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create render directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	prefix := filepath.Join(tempDir, "page")
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-r", fmt.Sprintf("%d", r.DPI),
		pdfPath, prefix)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, output)
	}

	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("failed to list rendered pages: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", pdfPath)
	}

	// pdftoppm zero-pads page numbers, so lexical order is page order
	sort.Strings(matches)

	pages := make([][]byte, 0, len(matches))
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			return nil, fmt.Errorf("failed to read rendered page: %w", err)
		}
		pages = append(pages, data)
	}
	return pages, nil
}

// ReadWordBoxes renders every page of a PDF and recognizes it,
// returning one fragment slice per page.
func ReadWordBoxes(ctx context.Context, renderer Renderer, engine Engine, pdfPath string) ([][]layout.Fragment, error) {
	images, err := renderer.RenderPages(ctx, pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to render pages: %w", err)
	}

	pages := make([][]layout.Fragment, 0, len(images))
	for _, image := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fragments, err := engine.WordBoxes(ctx, image)
		if err != nil {
			return nil, fmt.Errorf("failed to recognize page: %w", err)
		}
		pages = append(pages, fragments)
	}
	return pages, nil
}
