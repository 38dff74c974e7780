package finder

import (
	"context"
	"errors"
	"testing"

	"github.com/vvka-141/exodus/internal/logging"
	"github.com/vvka-141/exodus/internal/mapping"
	"github.com/vvka-141/exodus/pkg/exodus"
)

type fakeIndex struct {
	datastreams map[string][]string
}

func (f *fakeIndex) GetWorkType(context.Context, string) (string, error) { return "", nil }
func (f *fakeIndex) GetParentCollections(context.Context, string) ([]string, error) {
	return nil, nil
}
func (f *fakeIndex) FindPagesInBook(context.Context, string) ([]exodus.PageEntry, error) {
	return nil, nil
}
func (f *fakeIndex) GetCompoundObjectParts(context.Context, string) ([]exodus.PartEntry, error) {
	return nil, nil
}
func (f *fakeIndex) GetDatastreamIDs(_ context.Context, pid string) ([]string, error) {
	return f.datastreams[pid], nil
}

func workSheet(rows ...exodus.Record) *mapping.Sheet {
	sheet := &mapping.Sheet{Records: rows}
	sheet.AddFields("source_identifier", "model", "sequence", "remote_files", "parents", "title", "local_identifier")
	return sheet
}

func both() Include { return Include{FileSets: true, Attachments: true} }

func findRecord(t *testing.T, sheet *mapping.Sheet, id string) exodus.Record {
	t.Helper()
	for _, record := range sheet.Records {
		if record["source_identifier"] == id {
			return record
		}
	}
	t.Fatalf("no record %q in sheet", id)
	return nil
}

func TestExpand_ImageWithPreserveAndObj(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{
		"knox:1": {"OBJ", "PRESERVE", "MODS", "DC", "TN", "RELS-EXT"},
	}}
	row := exodus.Record{
		"source_identifier": "knox_1",
		"model":             "Image",
		"sequence":          "",
		"local_identifier":  "0012_000001_000123 | other",
	}

	out, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), both())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// work + 3 surviving datastreams x (attachment + fileset)
	if len(out.Records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(out.Records))
	}

	fileSet := findRecord(t, out, "knox_1_OBJ_fileset")
	if fileSet["model"] != "FileSet" {
		t.Errorf("unexpected model: %q", fileSet["model"])
	}
	if fileSet["rdf_type"] != "http://pcdm.org/use#IntermediateFile" {
		t.Errorf("with a preservation master OBJ is intermediate, got %q", fileSet["rdf_type"])
	}
	if fileSet["title"] != "0012_000001_000123_i" {
		t.Errorf("unexpected title: %q", fileSet["title"])
	}
	if fileSet["parents"] != "knox_1_OBJ" {
		t.Errorf("fileset should hang off the attachment, got %q", fileSet["parents"])
	}
	if want := exodus.DefaultRemote + "knox:1/datastream/OBJ"; fileSet["remote_files"] != want {
		t.Errorf("unexpected remote file: %q", fileSet["remote_files"])
	}

	preserve := findRecord(t, out, "knox_1_PRESERVE_fileset")
	if preserve["rdf_type"] != "http://pcdm.org/use#PreservationFile" {
		t.Errorf("unexpected rdf_type: %q", preserve["rdf_type"])
	}
	if preserve["title"] != "0012_000001_000123_p" {
		t.Errorf("unexpected title: %q", preserve["title"])
	}

	attachment := findRecord(t, out, "knox_1_OBJ")
	if attachment["model"] != "Attachment" || attachment["parents"] != "knox_1" {
		t.Errorf("unexpected attachment row: %+v", attachment)
	}
	if attachment["remote_files"] != "" {
		t.Errorf("attachments carry no files, got %q", attachment["remote_files"])
	}
}

func TestExpand_ImageWithoutPreserve(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{
		"knox:1": {"OBJ", "MODS"},
	}}
	row := exodus.Record{"source_identifier": "knox_1", "model": "Image"}

	out, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), both())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fileSet := findRecord(t, out, "knox_1_OBJ_fileset")
	want := "http://pcdm.org/use#PreservationFile | http://pcdm.org/use#IntermediateFile"
	if fileSet["rdf_type"] != want {
		t.Errorf("lone OBJ serves both roles, got %q", fileSet["rdf_type"])
	}
	if fileSet["title"] != "OBJ" {
		t.Errorf("unexpected title: %q", fileSet["title"])
	}
}

func TestExpand_AudioTranscripts(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{
		"rfta:8": {"OBJ", "PROXY_MP3", "TRANSCRIPT", "TRANSCRIPT-ES"},
	}}
	row := exodus.Record{"source_identifier": "rfta_8", "model": "Audio", "local_identifier": "rfta_0008"}

	out, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), both())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	en := findRecord(t, out, "rfta_8_TRANSCRIPT_fileset")
	if en["title"] != "Captions in English" || en["file_language"] != "en" {
		t.Errorf("unexpected english captions row: %+v", en)
	}
	es := findRecord(t, out, "rfta_8_TRANSCRIPT-ES_fileset")
	if es["title"] != "Subtítulos en español" || es["file_language"] != "es" {
		t.Errorf("unexpected spanish captions row: %+v", es)
	}
	if es["rdf_type"] != "http://pcdm.org/use#Transcript" {
		t.Errorf("unexpected rdf_type: %q", es["rdf_type"])
	}

	obj := findRecord(t, out, "rfta_8_OBJ_fileset")
	if obj["rdf_type"] != "http://pcdm.org/use#PreservationFile" {
		t.Errorf("with a proxy the OBJ is preservation only, got %q", obj["rdf_type"])
	}
	if obj["title"] != "rfta_0008_p" {
		t.Errorf("unexpected title: %q", obj["title"])
	}
}

func TestExpand_PdfViewURLAndSkippedAttachment(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{
		"civilwar:100": {"OBJ", "PDFA", "MODS"},
	}}
	row := exodus.Record{"source_identifier": "civilwar_100", "model": "Pdf"}

	out, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), both())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fileSet := findRecord(t, out, "civilwar_100_OBJ_fileset")
	if want := exodus.DefaultRemote + "civilwar:100/datastream/OBJ/view.pdf"; fileSet["remote_files"] != want {
		t.Errorf("unexpected remote file: %q", fileSet["remote_files"])
	}
	if fileSet["parents"] != "civilwar_100" {
		t.Errorf("pdf OBJ fileset hangs off the work, got %q", fileSet["parents"])
	}
	for _, record := range out.Records {
		if record["source_identifier"] == "civilwar_100_OBJ" && record["model"] == "Attachment" {
			t.Error("pdf OBJ must not get an attachment row when PDFA exists")
		}
	}
}

func TestExpand_PageRowsReplacedByFiles(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{
		"agrtfhs:2": {"OBJ", "MODS", "RELS-INT", "PDF", "OCR"},
	}}
	row := exodus.Record{
		"source_identifier": "agrtfhs_2",
		"model":             "Page",
		"sequence":          "1",
		"parents":           "agrtfhs_1",
	}

	out, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), both())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, record := range out.Records {
		if record["model"] == "Page" {
			t.Error("page rows must not survive expansion")
		}
		if record["source_identifier"] == "agrtfhs_2_MODS" {
			t.Error("page MODS must be ignored")
		}
	}
	attachment := findRecord(t, out, "agrtfhs_2_OBJ")
	if attachment["parents"] != "agrtfhs_1" {
		t.Errorf("page files reparent onto the book, got %q", attachment["parents"])
	}
	if attachment["sequence"] != "1" {
		t.Errorf("page files keep the page sequence, got %q", attachment["sequence"])
	}
}

func TestExpand_CollectionRowsPassThrough(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{}}
	row := exodus.Record{"source_identifier": "collections_knox", "model": "Collection"}

	out, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), both())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Records) != 1 {
		t.Fatalf("collections get no file rows, got %d records", len(out.Records))
	}
}

func TestExpand_UnknownModel(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{"odd:1": {"OBJ"}}}
	row := exodus.Record{"source_identifier": "odd_1", "model": "Newspaper"}

	_, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), both())
	if !errors.Is(err, exodus.ErrUnknownContentModel) {
		t.Fatalf("expected ErrUnknownContentModel, got %v", err)
	}
}

func TestExpand_FileSetsOnly(t *testing.T) {
	index := &fakeIndex{datastreams: map[string][]string{"knox:1": {"OBJ"}}}
	row := exodus.Record{"source_identifier": "knox_1", "model": "Image"}

	out, err := New(index, logging.NewNullLogger()).Expand(context.Background(), workSheet(row), Include{FileSets: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, record := range out.Records {
		if record["model"] == "Attachment" {
			t.Error("attachments were not requested")
		}
	}
}
