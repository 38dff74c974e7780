// Package template generates blank import sheets from an M3 profile: the
// header row for one model followed by cardinality, range, and guideline
// hint rows a metadata librarian fills in under.
package template

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vvka-141/exodus/internal/validate"
)

// baseProperties lead every template regardless of model.
var baseProperties = []string{
	"source_identifier",
	"model",
	"sequence",
	"remote_files",
	"parents",
	"visibility",
}

// Template is a blank import sheet for one model.
type Template struct {
	profile *validate.Profile
	model   string
	fields  []string
}

// New builds a template for model from the profile. Unknown models are a
// caller error.
func New(profile *validate.Profile, model string) (*Template, error) {
	if _, ok := profile.Classes[model]; !ok {
		known := make([]string, 0, len(profile.Classes))
		for name := range profile.Classes {
			known = append(known, name)
		}
		sort.Strings(known)
		return nil, fmt.Errorf("model %q is not in the profile (known: %s)", model, strings.Join(known, ", "))
	}

	t := &Template{profile: profile, model: model}
	t.fields = append(t.fields, baseProperties...)
	var names []string
	for name, spec := range profile.Properties {
		if spec.AvailableOnModel(model) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	t.fields = append(t.fields, names...)
	return t, nil
}

// Fields returns the template's column order.
func (t *Template) Fields() []string {
	return t.fields
}

func (t *Template) hintRow(hint func(validate.PropertySpec) string) []string {
	row := make([]string, len(t.fields))
	for i, field := range t.fields {
		spec, ok := t.profile.Properties[field]
		if !ok || !spec.AvailableOnModel(t.model) {
			continue
		}
		row[i] = hint(spec)
	}
	return row
}

func cardinalityHint(spec validate.PropertySpec) string {
	maximum := "n"
	if spec.Cardinality.Maximum != nil {
		maximum = fmt.Sprintf("%d", *spec.Cardinality.Maximum)
	}
	return fmt.Sprintf("%d, %s", spec.Cardinality.Min(), maximum)
}

func rangeHint(spec validate.PropertySpec) string {
	if spec.Range == "" {
		return ""
	}
	parts := strings.Split(spec.Range, "#")
	return parts[len(parts)-1]
}

// Write renders the template: header plus cardinality, range, and guideline
// rows.
func (t *Template) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		t.fields,
		t.hintRow(cardinalityHint),
		t.hintRow(rangeHint),
		t.hintRow(validate.PropertySpec.Guideline),
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
