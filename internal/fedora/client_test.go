package fedora

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vvka-141/exodus/internal/logging"
	"github.com/vvka-141/exodus/internal/retry"
	"github.com/vvka-141/exodus/pkg/exodus"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, "admin", "secret", logging.NewNullLogger(),
		WithExecutor(retry.NewExecutor(
			retry.NewHTTPErrorClassifier(),
			retry.NewExponentialBackoff(2, retry.WithInitialDelay(time.Millisecond), retry.WithJitter(0)),
		)))
}

func TestGetDatastream(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/objects/bass:10900/datastreams/MODS/content" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			t.Error("expected basic auth credentials")
		}
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte("<mods/>"))
	})

	content, err := client.GetDatastream(context.Background(), "info:fedora/bass:10900", "MODS")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(content) != "<mods/>" {
		t.Errorf("unexpected content: %q", content)
	}
}

func TestGetDatastream_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetDatastream(context.Background(), "bass:10900", "OBJ")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, exodus.ErrIndexUnavailable) {
		t.Errorf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestDownloadDatastream_NamesFileFromPIDAndContentType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/tiff")
		w.Write([]byte("tiff-bytes"))
	})

	dir := t.TempDir()
	path, err := client.DownloadDatastream(context.Background(), "bass:10900", "OBJ", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "bass_10900_OBJ.tif"); path != want {
		t.Errorf("expected %s, got %s", want, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(content) != "tiff-bytes" {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestDownloadDatastream_UnknownContentTypeFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-unheard-of; charset=utf-8")
		w.Write([]byte("data"))
	})

	path, err := client.DownloadDatastream(context.Background(), "bass:1", "OBJ", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Ext(path) != ".bin" {
		t.Errorf("expected .bin extension, got %s", path)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	content, err := client.GetDatastream(context.Background(), "bass:1", "TRANSCRIPT")
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if string(content) != "ok" {
		t.Errorf("unexpected content: %q", content)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 requests, got %d", calls.Load())
	}
}

func TestGuessExtension(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/tiff", "tif"},
		{"text/xml; charset=UTF-8", "xml"},
		{"audio/vnd.wave", "wav"},
		{"text/x-c++", "vtt"},
		{"", "bin"},
		{"application/octet-stream", "bin"},
	}
	for _, tt := range tests {
		if got := guessExtension(tt.contentType); got != tt.want {
			t.Errorf("guessExtension(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}
