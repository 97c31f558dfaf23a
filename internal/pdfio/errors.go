package pdfio

import "errors"

// Sentinel errors for the input layer. Callers distinguish fatal
// document problems (missing, encrypted, malformed) from recoverable
// ones (no text layer, which only means the OCR source is needed).
var (
	ErrNotFound    = errors.New("file does not exist")
	ErrNotPDF      = errors.New("file is not a PDF")
	ErrTooLarge    = errors.New("file exceeds maximum size")
	ErrEncrypted   = errors.New("PDF is encrypted")
	ErrNoTextLayer = errors.New("PDF has no usable text layer")
)
