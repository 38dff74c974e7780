package restrict

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/exodus/pkg/exodus"
)

const policySuffix = "_POLICY.xml"

// SheetMerger joins a migration sheet against a directory of per-object
// policy files, stamping each row's visibility.
type SheetMerger struct {
	policiesDir string
	logger      exodus.Logger

	// verdicts caches one evaluation per policy file.
	verdicts map[string]*Verdict
}

// NewSheetMerger creates a merger reading policies from policiesDir.
func NewSheetMerger(policiesDir string, logger exodus.Logger) *SheetMerger {
	return &SheetMerger{
		policiesDir: policiesDir,
		logger:      logger,
		verdicts:    map[string]*Verdict{},
	}
}

// WriteCSV reads the sheet at inPath, stamps a visibility column, and writes
// the result to outPath. The column is appended to the header when absent.
func (m *SheetMerger) WriteCSV(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening sheet %s: %w", inPath, err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading sheet %s: %w", inPath, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("sheet %s has no header row", inPath)
	}

	header := rows[0]
	idColumn := -1
	visColumn := -1
	for i, name := range header {
		switch name {
		case "source_identifier":
			idColumn = i
		case "visibility":
			visColumn = i
		}
	}
	if idColumn < 0 {
		return fmt.Errorf("sheet %s has no source_identifier column", inPath)
	}
	if visColumn < 0 {
		header = append(header, "visibility")
		visColumn = len(header) - 1
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows[1:] {
		for len(row) < len(header) {
			row = append(row, "")
		}
		visibility, err := m.Visibility(row[idColumn])
		if err != nil {
			return err
		}
		row[visColumn] = visibility
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", row[idColumn], err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// Visibility resolves one row's visibility from its source identifier.
// Rows whose object has no policy file are open.
func (m *SheetMerger) Visibility(sourceIdentifier string) (string, error) {
	verdict, dsid, err := m.lookup(sourceIdentifier)
	if err != nil {
		return "", err
	}
	if verdict == nil {
		return exodus.VisibilityOpen, nil
	}
	if verdict.WorkRestricted {
		return exodus.VisibilityRestricted, nil
	}
	for _, restricted := range verdict.RestrictedDatastreams {
		if dsid == restricted {
			return exodus.VisibilityRestricted, nil
		}
	}
	return exodus.VisibilityOpen, nil
}

// lookup finds the policy verdict for a source identifier. Identifiers name
// either a whole object or an object plus a datastream suffix, so candidate
// object ids are probed at underscore boundaries from the right: the full
// identifier first, then each prefix, with the remainder as datastream id.
func (m *SheetMerger) lookup(sourceIdentifier string) (*Verdict, string, error) {
	candidates := []struct {
		objectID string
		dsid     string
	}{{sourceIdentifier, ""}}

	rest := sourceIdentifier
	for {
		cut := strings.LastIndex(rest, "_")
		if cut < 0 {
			break
		}
		rest = sourceIdentifier[:cut]
		candidates = append(candidates, struct {
			objectID string
			dsid     string
		}{rest, sourceIdentifier[cut+1:]})
	}

	for _, candidate := range candidates {
		verdict, err := m.verdictFor(candidate.objectID)
		if err != nil {
			return nil, "", err
		}
		if verdict != nil {
			return verdict, candidate.dsid, nil
		}
	}
	return nil, "", nil
}

// verdictFor evaluates and caches the policy for one object id, returning
// nil when no policy file exists.
func (m *SheetMerger) verdictFor(objectID string) (*Verdict, error) {
	if verdict, ok := m.verdicts[objectID]; ok {
		return verdict, nil
	}

	path := filepath.Join(m.policiesDir, objectID+policySuffix)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			m.verdicts[objectID] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("checking policy %s: %w", path, err)
	}

	restrictions, err := Load(path)
	if err != nil {
		return nil, err
	}
	verdict, err := restrictions.Get()
	if err != nil {
		return nil, err
	}
	m.logger.Verbose("evaluated policy for %s: work_restricted=%t datastreams=%v",
		objectID, verdict.WorkRestricted, verdict.RestrictedDatastreams)
	m.verdicts[objectID] = &verdict
	return &verdict, nil
}
