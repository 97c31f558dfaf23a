package extract

import "strings"

// Merger reconciles the two independently noisy extractions of one
// document. The text layer reads prose more faithfully (real layout,
// no recognition errors); OCR reads glyph-precise numeric fields
// embedded in scans more reliably. The merge encodes exactly that
// preference.
type Merger struct{}

// NewMerger creates a merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge combines the text-source and OCR-source results. Text-source
// block ordering is preserved throughout.
//
// With equal case counts, records are assumed to correspond
// index-wise and merge field by field. With differing counts that
// assumption no longer holds, and reconciliation falls back to
// defendant-name matching, filling only missing ID numbers.
func (m *Merger) Merge(textResult, ocrResult *ExtractionResult) []CaseRecord {
	textRecords := records(textResult)
	ocrRecords := records(ocrResult)

	if len(textRecords) == 0 {
		return ocrRecords
	}
	if len(ocrRecords) == 0 {
		return textRecords
	}

	if len(textRecords) == len(ocrRecords) {
		merged := make([]CaseRecord, len(textRecords))
		for i := range textRecords {
			merged[i] = mergePair(textRecords[i], ocrRecords[i])
		}
		return merged
	}

	return m.mergeByName(textRecords, ocrRecords)
}

func records(result *ExtractionResult) []CaseRecord {
	if result == nil {
		return nil
	}
	return result.Records
}

// mergePair merges one corresponding record pair: OCR wins the ID
// number whenever it has one, the text source wins every other field
// it filled.
func mergePair(text, ocr CaseRecord) CaseRecord {
	merged := text

	if ocr.IDNumber != "" {
		merged.IDNumber = ocr.IDNumber
	}
	if merged.Defendant == "" {
		merged.Defendant = ocr.Defendant
	}
	if merged.Request == "" {
		merged.Request = ocr.Request
	}
	if merged.FactsReason == "" {
		merged.FactsReason = ocr.FactsReason
	}

	return merged
}

// mergeByName reconciles unequal record sets: for each text-source
// record, the first OCR record whose defendant name matches (equal,
// substring, or superset) donates its ID number if the text side has
// none. OCR-only records without a name correspondence contribute
// nothing.
func (m *Merger) mergeByName(textRecords, ocrRecords []CaseRecord) []CaseRecord {
	merged := make([]CaseRecord, len(textRecords))

	for i, text := range textRecords {
		merged[i] = text
		if text.Defendant == "" || text.IDNumber != "" {
			continue
		}
		for _, ocr := range ocrRecords {
			if ocr.Defendant == "" || ocr.IDNumber == "" {
				continue
			}
			if namesCorrespond(text.Defendant, ocr.Defendant) {
				merged[i].IDNumber = ocr.IDNumber
				break
			}
		}
	}

	return merged
}

// namesCorrespond accepts identical names and containment in either
// direction, since either source may have dropped or gained a
// character around the true name.
func namesCorrespond(a, b string) bool {
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}
