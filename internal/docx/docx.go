// Package docx extracts plain paragraph text from Word documents.
// Complaint filings are occasionally submitted as .docx instead of
// PDF; those carry no positioned boxes, so the text goes straight to
// segmentation without line reassembly.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const documentEntry = "word/document.xml"

// ExtractText returns the document text with one line per paragraph.
func ExtractText(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != documentEntry {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", documentEntry, err)
		}
		defer rc.Close()

		text, err := parseDocumentXML(rc)
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", documentEntry, err)
		}
		return text, nil
	}

	return "", fmt.Errorf("docx archive has no %s entry", documentEntry)
}

// parseDocumentXML walks the WordprocessingML token stream, collecting
// the character data of w:t runs and breaking lines at w:p paragraphs.
func parseDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var builder strings.Builder
	var paragraph strings.Builder
	inText := false

	flush := func() {
		line := strings.TrimSpace(paragraph.String())
		paragraph.Reset()
		if line == "" {
			return
		}
		if builder.Len() > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(line)
	}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := token.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(el)
			}
		}
	}

	flush()
	return builder.String(), nil
}
