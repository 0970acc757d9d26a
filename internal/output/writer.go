// Package output serializes the collected contact records. The format is
// chosen by the output file extension; CSV is the default and keeps the
// column layout downstream tooling expects.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kbo-tools/kbolookup/pkg/models"
)

// header is the fixed column order of the tabular formats.
var header = []string{"enterprise_number", "name", "phone", "email", "website", "url", "error"}

// Options tunes serialization without changing the schema.
type Options struct {
	// PreferE164 substitutes the E.164 form for the phone column when one
	// could be derived; the raw scraped value is used otherwise.
	PreferE164 bool
}

// WriteRecords writes all records to path, dispatching on the extension:
// .xlsx and .json get dedicated writers, everything else is CSV.
func WriteRecords(path string, records []models.ContactRecord, opts Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeXLSX(path, records, opts)
	case ".json":
		return writeJSON(path, records)
	default:
		return writeCSV(path, records, opts)
	}
}

func row(r models.ContactRecord, opts Options) []string {
	phone := r.Phone
	if opts.PreferE164 && r.PhoneE164 != "" {
		phone = r.PhoneE164
	}
	return []string{r.EnterpriseNumber, r.Name, phone, r.Email, r.Website, r.URL, r.Error}
}

func writeCSV(path string, records []models.ContactRecord, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write(row(r, opts)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeXLSX(path string, records []models.ContactRecord, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}

	for i, r := range records {
		values := row(r, opts)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeJSON(path string, records []models.ContactRecord) error {
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0644)
}
