package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// ReadCSV loads a sheet written by WriteCSV back into memory. Short rows
// are padded so every record carries the full header.
func ReadCSV(r io.Reader) (*Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet: %v", exodus.ErrParse, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet has no header row", exodus.ErrParse)
	}

	sheet := &Sheet{}
	sheet.AddFields(rows[0]...)
	for _, row := range rows[1:] {
		record := exodus.Record{}
		for i, field := range rows[0] {
			if i < len(row) {
				record[field] = row[i]
			} else {
				record[field] = ""
			}
		}
		sheet.Records = append(sheet.Records, record)
	}
	return sheet, nil
}

// WriteCSV renders the sheet to path. The header is the accumulated field
// order; cells a record never set are written empty.
func WriteCSV(sheet *Sheet, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sheet.Fields); err != nil {
		return err
	}
	row := make([]string, len(sheet.Fields))
	for _, record := range sheet.Records {
		for i, field := range sheet.Fields {
			row[i] = record[field]
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteXLSX renders the sheet as a single-tab workbook mirroring the CSV
// layout, for operator review.
func WriteXLSX(sheet *Sheet, path string) error {
	wb := excelize.NewFile()
	defer wb.Close()

	tab := wb.GetSheetName(0)
	header := make([]interface{}, len(sheet.Fields))
	for i, field := range sheet.Fields {
		header[i] = field
	}
	if err := wb.SetSheetRow(tab, "A1", &header); err != nil {
		return err
	}
	for i, record := range sheet.Records {
		row := make([]interface{}, len(sheet.Fields))
		for j, field := range sheet.Fields {
			row[j] = record[field]
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := wb.SetSheetRow(tab, cell, &row); err != nil {
			return err
		}
	}
	return wb.SaveAs(path)
}
