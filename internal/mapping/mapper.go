package mapping

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vvka-141/exodus/internal/mods"
	"github.com/vvka-141/exodus/internal/xmldoc"
	"github.com/vvka-141/exodus/pkg/exodus"
)

/// Sheet is an in-memory import sheet: records plus the column order they
// were accumulated in.
type Sheet struct {
	Fields  []string
	Records []exodus.Record

	seen map[string]bool
}

// AddFields appends any not-yet-seen field names to the column order.
func (s *Sheet) AddFields(names ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, name := range names {
		if !s.seen[name] {
			s.seen[name] = true
			s.Fields = append(s.Fields, name)
		}
	}
}

// Mapper applies a mapping configuration to a directory of MODS exports.
type Mapper struct {
	rules     []exodus.FieldRule
	index     exodus.ResourceIndex
	extractor *mods.Extractor
	logger    exodus.Logger
	progress  func(done, total int)
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithProgress installs a callback invoked after each processed file.
func WithProgress(fn func(done, total int)) MapperOption {
	return func(m *Mapper) {
		m.progress = fn
	}
}

// NewMapper wires a validated configuration to the resource index.
func NewMapper(cfg *Config, index exodus.ResourceIndex, logger exodus.Logger, opts ...MapperOption) *Mapper {
	m := &Mapper{
		rules:     cfg.Mapping,
		index:     index,
		extractor: mods.New(logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// identifierFromFile derives the sheet identifier from a MODS filename:
// abc_123_MODS.xml and abc_123.xml both yield abc_123.
func identifierFromFile(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, "_MODS.xml")
	return strings.TrimSuffix(name, ".xml")
}

// pidForIdentifier restores the Fedora pid from a sheet identifier. Exports
// encode the pid's colon as an underscore; only the first underscore is the
// namespace separator.
func pidForIdentifier(id string) string {
	return strings.Replace(id, "_", ":", 1)
}

// Run processes every XML file under dir in sorted order, then synthesizes
// child rows for books (pages) and compound objects (constituent parts).
func (m *Mapper) Run(ctx context.Context, dir string) (*Sheet, error) {
	files, err := listXMLFiles(dir)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{}
	for i, file := range files {
		record, err := m.mapFile(ctx, file, sheet)
		if err != nil {
			return nil, fmt.Errorf("mapping %s: %w", file, err)
		}
		sheet.Records = append(sheet.Records, record)
		if m.progress != nil {
			m.progress(i+1, len(files))
		}
	}

	children, err := m.synthesizeChildren(ctx, sheet.Records)
	if err != nil {
		return nil, err
	}
	sheet.Records = append(sheet.Records, children...)
	return sheet, nil
}

func listXMLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".xml") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func (m *Mapper) mapFile(ctx context.Context, file string, sheet *Sheet) (exodus.Record, error) {
	id := identifierFromFile(file)
	pid := pidForIdentifier(id)

	modelIRI, err := m.index.GetWorkType(ctx, pid)
	if err != nil {
		return nil, err
	}
	workType, err := exodus.WorkTypeForModel(modelIRI)
	if err != nil {
		return nil, err
	}
	parents, err := m.index.GetParentCollections(ctx, pid)
	if err != nil {
		return nil, err
	}

	record := exodus.Record{
		"source_identifier":  id,
		"model":              string(workType),
		"sequence":           "",
		"remote_files":       "",
		"parents":            strings.Join(parents, exodus.Delimiter),
		"has_work_type":      exodus.OntologyValue(workType),
		"primary_identifier": id,
	}
	sheet.AddFields("source_identifier", "model", "sequence", "remote_files",
		"parents", "has_work_type", "primary_identifier")

	doc, err := xmldoc.ParseFile(file)
	if err != nil {
		return nil, err
	}

	for _, rule := range m.rules {
		if rule.Special == "" {
			values, err := m.extractor.Standard(doc, rule.XPaths)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", rule.Name, err)
			}
			record[rule.Name] = strings.Join(values, exodus.Delimiter)
			sheet.AddFields(rule.Name)
			continue
		}

		emitted, err := m.extractor.Run(mods.ExtractorKind(rule.Special), doc, rule.Name)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", rule.Name, err)
		}
		// extractors emit a map; sort the keys so column order does not
		// depend on map iteration
		names := make([]string, 0, len(emitted))
		for name := range emitted {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			record[name] = strings.Join(emitted[name], exodus.Delimiter)
			sheet.AddFields(name)
		}
	}
	return record, nil
}

// synthesizeChildren expands paged and compound works into child rows. Each
// child is a copy of its parent with the identity columns overridden, so
// descriptive metadata carries down to pages and parts.
func (m *Mapper) synthesizeChildren(ctx context.Context, records []exodus.Record) ([]exodus.Record, error) {
	var children []exodus.Record
	for _, record := range records {
		switch exodus.WorkType(record["model"]) {
		case exodus.WorkTypeBook:
			pages, err := m.index.FindPagesInBook(ctx, pidForIdentifier(record["source_identifier"]))
			if err != nil {
				return nil, err
			}
			for _, page := range pages {
				child := record.Clone()
				child["source_identifier"] = page.PID
				child["parents"] = record["source_identifier"]
				child["model"] = "Page"
				child["sequence"] = page.Number
				children = append(children, child)
			}
		case exodus.WorkTypeCompoundObject:
			parts, err := m.index.GetCompoundObjectParts(ctx, pidForIdentifier(record["source_identifier"]))
			if err != nil {
				return nil, err
			}
			for _, part := range parts {
				partType, err := exodus.WorkTypeForModel(part.Model)
				if err != nil {
					return nil, err
				}
				child := record.Clone()
				child["source_identifier"] = part.PID
				child["parents"] = record["source_identifier"]
				child["model"] = string(partType)
				child["sequence"] = part.Sequence
				children = append(children, child)
			}
		}
	}
	return children, nil
}
