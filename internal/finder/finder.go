// Package finder expands work rows into the FileSet and Attachment rows a
// bulk import needs, one pair per surviving datastream of the object. Which
// PCDM roles a datastream gets depends on the work's content model and on
// whether the object carries both a preservation master and a derivative.
package finder

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/exodus/internal/mapping"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// universalIgnores are datastreams that never become import rows.
var universalIgnores = map[string]bool{
	"DC":          true,
	"RELS-EXT":    true,
	"TECHMD":      true,
	"PREVIEW":     true,
	"JPG":         true,
	"JP2":         true,
	"MEDIUM_SIZE": true,
	"POLICY":      true,
	"TN":          true,
}

// pageIgnores are additionally dropped on Page rows.
var pageIgnores = map[string]bool{
	"MODS":     true,
	"RELS-INT": true,
	"PDF":      true,
}

// Include selects which row kinds Expand emits per datastream.
type Include struct {
	FileSets    bool
	Attachments bool
}

// Expander turns a works sheet into a works+files sheet.
type Expander struct {
	index    exodus.ResourceIndex
	remote   string
	logger   exodus.Logger
	progress func(done, total int)
}

// Option configures an Expander.
type Option func(*Expander)

// WithRemote overrides the public address remote_files URLs point at.
func WithRemote(remote string) Option {
	return func(e *Expander) {
		e.remote = remote
	}
}

// WithProgress installs a callback invoked after each processed row.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Expander) {
		e.progress = fn
	}
}

// New creates an Expander backed by the resource index.
func New(index exodus.ResourceIndex, logger exodus.Logger, opts ...Option) *Expander {
	e := &Expander{
		index:  index,
		remote: exodus.DefaultRemote,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand emits a new sheet: every work row followed by its file rows. Page
// rows are replaced entirely by their files, reparented onto the page's
// parent work. Collection rows pass through untouched.
func (e *Expander) Expand(ctx context.Context, sheet *mapping.Sheet, include Include) (*mapping.Sheet, error) {
	out := &mapping.Sheet{}
	out.AddFields(sheet.Fields...)
	out.AddFields("rdf_type", "file_language")

	for i, row := range sheet.Records {
		model := row["model"]
		if model != "Page" {
			out.Records = append(out.Records, row)
		}
		if model == "Collection" {
			continue
		}

		files, err := e.objectFiles(ctx, row)
		if err != nil {
			return nil, err
		}
		if err := e.expandRow(row, files, include, out); err != nil {
			return nil, err
		}
		if e.progress != nil {
			e.progress(i+1, len(sheet.Records))
		}
	}
	return out, nil
}

func (e *Expander) objectFiles(ctx context.Context, row exodus.Record) ([]string, error) {
	pid := strings.Replace(row["source_identifier"], "_", ":", 1)
	dsids, err := e.index.GetDatastreamIDs(ctx, pid)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, dsid := range dsids {
		if universalIgnores[dsid] {
			continue
		}
		if row["model"] == "Page" && pageIgnores[dsid] {
			continue
		}
		files = append(files, dsid)
	}
	return files, nil
}

func (e *Expander) expandRow(row exodus.Record, files []string, include Include, out *mapping.Sheet) error {
	model := row["model"]
	preserveAndObj, err := hasPreserveAndObj(model, files)
	if err != nil {
		return fmt.Errorf("%s: %w", row["source_identifier"], err)
	}

	for _, dsid := range files {
		parent := ""
		if model == "Page" {
			parent = row["parents"]
		}
		// a pdf's primary datastream gets a fileset only; its attachment
		// role is carried by the work itself
		skipAttachment := model == "Pdf" && preserveAndObj && dsid == "OBJ"

		if include.Attachments && !skipAttachment {
			attachment, err := e.attachmentRow(row, dsid, preserveAndObj, parent)
			if err != nil {
				return err
			}
			out.Records = append(out.Records, attachment)
		}
		if include.FileSets {
			fileSet, err := e.fileSetRow(row, dsid, preserveAndObj, parent)
			if err != nil {
				return err
			}
			out.Records = append(out.Records, fileSet)
		}
	}
	return nil
}

// hasPreserveAndObj reports whether the object carries both a preservation
// master and the model's derivative datastream.
func hasPreserveAndObj(model string, files []string) (bool, error) {
	has := func(dsid string) bool {
		for _, f := range files {
			if f == dsid {
				return true
			}
		}
		return false
	}
	switch model {
	case "Image", "Book", "Page":
		return has("PRESERVE") && has("OBJ"), nil
	case "Audio":
		return has("OBJ") && has("PROXY_MP3"), nil
	case "Video":
		return has("OBJ") && has("MP4"), nil
	case "Pdf":
		return has("OBJ") && has("PDFA"), nil
	}
	return false, fmt.Errorf("%w: cannot expand files for model %q", exodus.ErrUnknownContentModel, model)
}

func (e *Expander) fileSetRow(row exodus.Record, dsid string, preserveAndObj bool, parent string) (exodus.Record, error) {
	id := row["source_identifier"]
	pid := strings.Replace(id, "_", ":", 1)
	types, err := fileTypes(row["model"], dsid, preserveAndObj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	remoteFile := fmt.Sprintf("%s%s/datastream/%s", e.remote, pid, dsid)
	if row["model"] == "Pdf" && (dsid == "OBJ" || dsid == "PDFA") {
		remoteFile += "/view.pdf"
	}

	parents := fmt.Sprintf("%s_%s", id, dsid)
	if parent != "" {
		parents = parent
	}
	if row["model"] == "Pdf" && preserveAndObj && dsid == "OBJ" {
		parents = id
	}

	record := exodus.Record{
		"source_identifier": fmt.Sprintf("%s_%s_fileset", id, dsid),
		"model":             "FileSet",
		"sequence":          row["sequence"],
		"remote_files":      remoteFile,
		"title":             fileTitle(row, dsid, preserveAndObj),
		"abstract":          fmt.Sprintf("%s for %s", dsid, id),
		"parents":           parents,
		"rdf_type":          types,
	}
	applyTranscriptLanguage(record, row["model"], dsid)
	return record, nil
}

func (e *Expander) attachmentRow(row exodus.Record, dsid string, preserveAndObj bool, parent string) (exodus.Record, error) {
	id := row["source_identifier"]
	types, err := fileTypes(row["model"], dsid, preserveAndObj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	parents := id
	if parent != "" {
		parents = parent
	}

	record := exodus.Record{
		"source_identifier": fmt.Sprintf("%s_%s", id, dsid),
		"model":             "Attachment",
		"sequence":          row["sequence"],
		"remote_files":      "",
		"title":             fileTitle(row, dsid, preserveAndObj),
		"abstract":          fmt.Sprintf("%s for %s", dsid, id),
		"parents":           parents,
		"rdf_type":          types,
	}
	applyTranscriptLanguage(record, row["model"], dsid)
	return record, nil
}

// fileTitle names a file row. Objects with both master and derivative use
// the work's first local identifier with a role suffix; everything else is
// titled by datastream id.
func fileTitle(row exodus.Record, dsid string, preserveAndObj bool) string {
	if !preserveAndObj {
		return dsid
	}
	local := strings.SplitN(row["local_identifier"], exodus.Delimiter, 2)[0]
	switch row["model"] {
	case "Image":
		switch dsid {
		case "OBJ":
			return local + "_i"
		case "PRESERVE":
			return local + "_p"
		}
	case "Audio":
		switch dsid {
		case "OBJ":
			return local + "_p"
		case "PROXY_MP3":
			return local + "_i"
		}
	}
	return dsid
}

// applyTranscriptLanguage titles caption tracks on time-based media and
// stamps their language.
func applyTranscriptLanguage(record exodus.Record, model, dsid string) {
	if model != "Audio" && model != "Video" {
		return
	}
	switch dsid {
	case "TRANSCRIPT":
		record["file_language"] = "en"
		record["title"] = "Captions in English"
	case "TRANSCRIPT-ES":
		record["file_language"] = "es"
		record["title"] = "Subtítulos en español"
	}
}
