// Package curate splits a finished import sheet into the sheets an import
// run actually loads: works and collections in one, filesets and attachments
// in another, optionally chunked so no single sheet overwhelms the importer.
package curate

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// Kind selects which file rows a split keeps.
type Kind string

const (
	KindBoth        Kind = "both"
	KindFileSets    Kind = "filesets"
	KindAttachments Kind = "attachments"
)

// strayModels are bookkeeping rows that must never reach an import sheet.
var strayModels = map[string]bool{
	"MODS":   true,
	"POLICY": true,
}

// Curator splits one source sheet.
type Curator struct {
	logger exodus.Logger
}

// New creates a Curator.
func New(logger exodus.Logger) *Curator {
	return &Curator{logger: logger}
}

func (k Kind) keeps(model string) bool {
	switch k {
	case KindFileSets:
		return model == "FileSet"
	case KindAttachments:
		return model == "Attachment"
	}
	return model == "FileSet" || model == "Attachment"
}

// WriteFileRows writes the fileset/attachment rows of the source sheet.
// With perSheet > 0 the rows are chunked across numbered sheets
// ({base}_0.csv, {base}_1.csv, ...); otherwise everything lands in out.
// Returns the written paths.
func (c *Curator) WriteFileRows(in, out string, kind Kind, perSheet int) ([]string, error) {
	header, rows, err := readRows(in, func(model string) bool {
		return kind.keeps(model) && !strayModels[model]
	})
	if err != nil {
		return nil, err
	}

	if perSheet <= 0 {
		if err := writeRows(out, header, rows); err != nil {
			return nil, err
		}
		return []string{out}, nil
	}

	base := strings.TrimSuffix(out, ".csv")
	var written []string
	for i := 0; i*perSheet < len(rows) || (i == 0 && len(rows) == 0); i++ {
		end := (i + 1) * perSheet
		if end > len(rows) {
			end = len(rows)
		}
		path := fmt.Sprintf("%s_%d.csv", base, i)
		if err := writeRows(path, header, rows[i*perSheet:end]); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	c.logger.Verbose("wrote %d file sheets from %s", len(written), in)
	return written, nil
}

// WriteWorkRows writes every row that is not a fileset, attachment, or
// stray bookkeeping row.
func (c *Curator) WriteWorkRows(in, out string) error {
	header, rows, err := readRows(in, func(model string) bool {
		return model != "FileSet" && model != "Attachment" && !strayModels[model]
	})
	if err != nil {
		return err
	}
	return writeRows(out, header, rows)
}

func readRows(path string, keep func(model string) bool) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening sheet: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("sheet %s is empty", path)
	}

	header := all[0]
	modelIndex := -1
	for i, field := range header {
		if field == "model" {
			modelIndex = i
			break
		}
	}
	if modelIndex < 0 {
		return nil, nil, fmt.Errorf("sheet %s has no model column", path)
	}

	var rows [][]string
	for _, row := range all[1:] {
		if modelIndex < len(row) && keep(row[modelIndex]) {
			rows = append(rows, row)
		}
	}
	return header, rows, nil
}

func writeRows(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
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
