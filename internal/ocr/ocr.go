// Package ocr provides the fallback text source for scanned filings.
//
// It wraps the Tesseract OCR engine via gosseract and requires
// Tesseract to be installed on the system, with the chi_sim trained
// data for Chinese filings. On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-chi-sim
//
// Page images come from an external renderer (pdftoppm); both the
// engine and the renderer are interfaces so the extraction service
// degrades cleanly when either is unavailable.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/lexidoc/complaint-extract/internal/layout"
)

// Words below this Tesseract confidence are discarded; seal and
// watermark remnants mostly recognize as low-confidence garbage.
const minConfidence = 30

// Engine recognizes positioned words in a page image.
type Engine interface {
	WordBoxes(ctx context.Context, image []byte) ([]layout.Fragment, error)
	Close() error
}

// TesseractEngine implements Engine on a gosseract client.
type TesseractEngine struct {
	client *gosseract.Client
}

// NewTesseractEngine creates an engine for the given language string.
// Multiple languages can be specified "+" separated (e.g. "chi_sim+eng").
// The engine should be closed when no longer needed.
func NewTesseractEngine(language string) (*TesseractEngine, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set OCR language: %w", err)
		}
	}
	return &TesseractEngine{client: client}, nil
}

// Close releases OCR resources.
func (e *TesseractEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// WordBoxes recognizes the image and returns one fragment per word,
// positioned at the top-left corner of its bounding box.
func (e *TesseractEngine) WordBoxes(ctx context.Context, image []byte) ([]layout.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	fragments := make([]layout.Fragment, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" || box.Confidence < minConfidence {
			continue
		}
		fragments = append(fragments, layout.Fragment{
			Text: word,
			X:    float64(box.Box.Min.X),
			Y:    float64(box.Box.Min.Y),
		})
	}
	return fragments, nil
}
