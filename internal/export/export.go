// Package export writes extracted case records to CSV, JSON, and
// Excel files. Column headers use the filing field names so the
// output opens cleanly for the clerks who consume it.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/lexidoc/complaint-extract/internal/extract"
)

var columnHeaders = []string{"被告", "身份证号码", "诉讼请求", "事实与理由"}

func recordValues(r extract.CaseRecord) []string {
	return []string{r.Defendant, r.IDNumber, r.Request, r.FactsReason}
}

// WriteFile writes records in the format implied by the file
// extension: .csv, .json, or .xlsx.
func WriteFile(path string, records []extract.CaseRecord) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return WriteCSV(path, records)
	case ".json":
		return WriteJSON(path, records)
	case ".xlsx":
		return WriteXLSX(path, records)
	default:
		return fmt.Errorf("unsupported output format: %s", filepath.Ext(path))
	}
}

// WriteCSV writes records as UTF-8 CSV with a byte order mark, which
// Excel needs to decode Chinese text correctly.
func WriteCSV(path string, records []extract.CaseRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString("\xEF\xBB\xBF"); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(columnHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(recordValues(record)); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteJSON writes records as an indented JSON array.
func WriteJSON(path string, records []extract.CaseRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}

// WriteXLSX writes records as an Excel workbook with a header row.
func WriteXLSX(path string, records []extract.CaseRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("failed to locate header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, record := range records {
		row := i + 2
		for j, value := range recordValues(record) {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return fmt.Errorf("failed to locate cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
