package cli

import (
	"testing"

	"github.com/vvka-141/exodus/pkg/exodus"
)

func TestRootCmd_RegistersAllCommands(t *testing.T) {
	want := []string{
		"works", "works-and-files", "add-files", "restrict",
		"validate", "template", "checksums", "collections", "version",
	}
	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestParseInclude(t *testing.T) {
	tests := []struct {
		in          string
		fileSets    bool
		attachments bool
		wantErr     bool
	}{
		{in: "all", fileSets: true, attachments: true},
		{in: "filesets", fileSets: true},
		{in: "attachments", attachments: true},
		{in: "everything", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		include, err := parseInclude(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseInclude(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseInclude(%q): %v", tc.in, err)
		}
		if include.FileSets != tc.fileSets || include.Attachments != tc.attachments {
			t.Errorf("parseInclude(%q) = %+v", tc.in, include)
		}
	}
}

func TestWorksAndFilesCmd_ModeValidation(t *testing.T) {
	defer func(saved worksAndFilesFlagValues) { worksAndFilesFlags = saved }(worksAndFilesFlags)

	worksAndFilesFlags = worksAndFilesFlagValues{config: "x.yml", output: "out", collection: "collections:bass"}
	if err := runWorksAndFiles(worksAndFilesCmd, nil); err == nil {
		t.Error("expected error when --collection is given without --model")
	}

	worksAndFilesFlags = worksAndFilesFlagValues{config: "x.yml", output: "out"}
	if err := runWorksAndFiles(worksAndFilesCmd, nil); err == nil {
		t.Error("expected error when neither --path nor --collection is given")
	}
}

func TestLoadEnvironment_DefaultEndpoint(t *testing.T) {
	t.Setenv("RI_ENDPOINT", "")
	t.Setenv("FEDORA_URL", "")

	env := loadEnvironment()
	if env.riEndpoint != exodus.DefaultRIEndpoint {
		t.Errorf("riEndpoint = %q, want default", env.riEndpoint)
	}
	if err := env.requireFedora(); err == nil {
		t.Error("expected requireFedora to fail without FEDORA_URL")
	}
}

func TestLoadEnvironment_ReadsValues(t *testing.T) {
	t.Setenv("FEDORA_URL", "http://localhost:8080/fedora")
	t.Setenv("FEDORA_USERNAME", "fedoraAdmin")
	t.Setenv("FEDORA_PASSWORD", "secret")
	t.Setenv("RI_ENDPOINT", "http://localhost:8080/fedora/risearch")

	env := loadEnvironment()
	if env.fedoraURL != "http://localhost:8080/fedora" {
		t.Errorf("fedoraURL = %q", env.fedoraURL)
	}
	if env.username != "fedoraAdmin" || env.password != "secret" {
		t.Errorf("credentials = %q/%q", env.username, env.password)
	}
	if err := env.requireFedora(); err != nil {
		t.Errorf("requireFedora: %v", err)
	}
}
