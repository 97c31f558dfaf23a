// Package extract turns cleaned document text into structured case
// records: one record per civil complaint found in the document, with
// label-anchored extraction of the defendant, ID number, litigation
// request, and statement of facts and reasons.
package extract

// CaseRecord holds the extracted fields for one case. An empty string
// means the field was not found; extraction never fails on a missing
// field.
type CaseRecord struct {
	Defendant   string `json:"defendant"`
	IDNumber    string `json:"idNumber"`
	Request     string `json:"request"`
	FactsReason string `json:"factsReason"`
}

// IsEmpty reports whether no field was extracted. Empty records are
// dropped by the pipeline rather than reported as errors.
func (r CaseRecord) IsEmpty() bool {
	return r.Defendant == "" && r.IDNumber == "" && r.Request == "" && r.FactsReason == ""
}

// Source tags for an extraction result.
const (
	SourceText = "text"
	SourceOCR  = "ocr"
)

// ExtractionResult is the ordered record sequence produced from one
// source transcript of a document.
type ExtractionResult struct {
	Records []CaseRecord `json:"records"`
	Source  string       `json:"source"`
}

// Result is the merged, final output of the pipeline.
type Result struct {
	Records []CaseRecord `json:"records"`
	Count   int          `json:"count"`
	UsedOCR bool         `json:"usedOcr"`
}
