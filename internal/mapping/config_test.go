package mapping

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/exodus/pkg/exodus"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
mapping:
  - name: title
    special: TitleProperty
  - name: abstract
    xpaths:
      - 'mods:abstract'
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Mapping, 2)
	assert.Equal(t, "title", cfg.Mapping[0].Name)
	assert.Equal(t, "TitleProperty", cfg.Mapping[0].Special)
	assert.Equal(t, []string{"mods:abstract"}, cfg.Mapping[1].XPaths)
}

func TestLoadConfig_UnknownSpecial(t *testing.T) {
	path := writeConfig(t, `
mapping:
  - name: title
    special: FrobnicateProperty
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, exodus.ErrUnknownExtractor))
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty mapping", "mapping: []"},
		{"missing name", "mapping:\n  - special: TitleProperty"},
		{"both xpaths and special", "mapping:\n  - name: title\n    special: TitleProperty\n    xpaths: ['mods:abstract']"},
		{"neither xpaths nor special", "mapping:\n  - name: title"},
		{"not yaml", ": ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, exodus.ErrInvalidMapping))
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
