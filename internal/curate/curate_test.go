package curate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/vvka-141/exodus/internal/logging"
)

const sourceSheet = `source_identifier,model,title
knox_1,Image,Riverfront
knox_1_OBJ,Attachment,OBJ
knox_1_OBJ_fileset,FileSet,OBJ
knox_1_MODS,MODS,stray
collections_knox,Collection,Knoxville
knox_2_OBJ,Attachment,OBJ
knox_2_OBJ_fileset,FileSet,OBJ
`

func writeSource(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.csv")
	if err := os.WriteFile(path, []byte(sourceSheet), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestWriteFileRows_SingleSheet(t *testing.T) {
	in := writeSource(t)
	out := filepath.Join(t.TempDir(), "files.csv")

	written, err := New(logging.NewNullLogger()).WriteFileRows(in, out, KindBoth, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 1 || written[0] != out {
		t.Fatalf("unexpected written paths: %v", written)
	}

	rows := readAll(t, out)
	if len(rows) != 5 {
		t.Fatalf("expected header plus 4 file rows, got %d", len(rows))
	}
	for _, row := range rows[1:] {
		if row[1] != "FileSet" && row[1] != "Attachment" {
			t.Errorf("unexpected model in file sheet: %q", row[1])
		}
	}
}

func TestWriteFileRows_Chunked(t *testing.T) {
	in := writeSource(t)
	out := filepath.Join(t.TempDir(), "files.csv")

	written, err := New(logging.NewNullLogger()).WriteFileRows(in, out, KindBoth, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 chunks for 4 rows, got %v", written)
	}
	if filepath.Base(written[0]) != "files_0.csv" || filepath.Base(written[1]) != "files_1.csv" {
		t.Errorf("unexpected chunk names: %v", written)
	}
	if got := len(readAll(t, written[0])) - 1; got != 3 {
		t.Errorf("first chunk should carry 3 rows, got %d", got)
	}
	if got := len(readAll(t, written[1])) - 1; got != 1 {
		t.Errorf("second chunk should carry 1 row, got %d", got)
	}
}

func TestWriteFileRows_FileSetsOnly(t *testing.T) {
	in := writeSource(t)
	out := filepath.Join(t.TempDir(), "filesets.csv")

	if _, err := New(logging.NewNullLogger()).WriteFileRows(in, out, KindFileSets, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := readAll(t, out)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 fileset rows, got %d", len(rows))
	}
}

func TestWriteWorkRows(t *testing.T) {
	in := writeSource(t)
	out := filepath.Join(t.TempDir(), "works.csv")

	if err := New(logging.NewNullLogger()).WriteWorkRows(in, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows := readAll(t, out)
	if len(rows) != 3 {
		t.Fatalf("expected header, work, and collection, got %d rows", len(rows))
	}
	for _, row := range rows[1:] {
		if row[1] == "MODS" || row[1] == "POLICY" {
			t.Errorf("stray row survived: %v", row)
		}
	}
}
