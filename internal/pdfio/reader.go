package pdfio

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/lexidoc/complaint-extract/internal/layout"
)

// Significant characters required on the first page before the text
// layer is trusted. Scanned filings often carry a few stray glyphs in
// an otherwise empty layer; below this count the document is treated
// as image-only.
const textLayerThreshold = 20

// Document holds the positioned character boxes of one PDF file,
// one fragment slice per page.
type Document struct {
	Path      string
	Pages     [][]layout.Fragment
	PageCount int
	Size      int64
}

// Reader reads positioned text fragments from PDF files
type Reader struct {
	maxFileSize int64
}

// NewReader creates a new PDF reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
	}
}

// ReadCharBoxes extracts the per-character text boxes of every page.
// Pages whose content stream cannot be parsed are returned empty
// rather than failing the whole document.
func (r *Reader) ReadCharBoxes(path string) (*Document, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if err := r.validateFile(path, fileInfo); err != nil {
		return nil, err
	}

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
		}
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	pages := make([][]layout.Fragment, 0, pdfReader.NumPage())
	for pageNum := 1; pageNum <= pdfReader.NumPage(); pageNum++ {
		pages = append(pages, readPageFragments(pdfReader, pageNum))
	}

	// pdfcpu resolves the page tree independently of the text parser
	// and repairs damaged xref tables along the way. Fall back to the
	// text parser's count when it rejects a file the parser tolerated.
	pageCount, err := r.PageCount(path)
	if err != nil {
		pageCount = pdfReader.NumPage()
	}

	return &Document{
		Path:      path,
		Pages:     pages,
		PageCount: pageCount,
		Size:      fileInfo.Size(),
	}, nil
}

// PageCount returns the page count of a PDF without parsing its
// content streams.
func (r *Reader) PageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return count, nil
}

// HasTextLayer reports whether the first page carries enough
// significant characters for text-layer extraction to be worthwhile.
func (d *Document) HasTextLayer() bool {
	if len(d.Pages) == 0 {
		return false
	}

	significant := 0
	for _, frag := range d.Pages[0] {
		for _, r := range frag.Text {
			if !unicode.IsSpace(r) {
				significant++
				if significant > textLayerThreshold {
					return true
				}
			}
		}
	}
	return false
}

// validateFile performs basic validation on a PDF file
func (r *Reader) validateFile(filePath string, fileInfo os.FileInfo) error {
	// Check if it's a regular file (not a directory)
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	// Check file extension
	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("%w: %s", ErrNotPDF, filePath)
	}

	// Check file size
	if fileInfo.Size() > r.maxFileSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)",
			ErrTooLarge, fileInfo.Size(), r.maxFileSize)
	}

	return nil
}

// readPageFragments collects the positioned character boxes of one page
func readPageFragments(pdfReader *pdf.Reader, pageNum int) []layout.Fragment {
	defer func() {
		// Recover from any panics in malformed content streams
		if recover() != nil {
			// Fragment extraction failed for this page
		}
	}()

	page := pdfReader.Page(pageNum)
	if page.V.IsNull() {
		return nil
	}

	content := page.Content()
	fragments := make([]layout.Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		fragments = append(fragments, layout.Fragment{
			Text: t.S,
			X:    t.X,
			Y:    t.Y,
		})
	}
	return fragments
}
