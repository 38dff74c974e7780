package validate

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// systemFields are sheet bookkeeping columns, never profile properties.
var systemFields = map[string]bool{
	"source_identifier": true,
	"model":             true,
	"sequence":          true,
	"remote_files":      true,
	"parents":           true,
	"visibility":        true,
}

// rowModels that carry no descriptive metadata of their own are exempt from
// property checks.
var exemptModels = map[string]bool{
	"FileSet":    true,
	"Collection": true,
}

// Validator checks import sheets against one M3 profile.
type Validator struct {
	profile *Profile
	logger  exodus.Logger
}

// New creates a Validator.
func New(profile *Profile, logger exodus.Logger) *Validator {
	return &Validator{profile: profile, logger: logger}
}

// ValidateFile reads a CSV sheet and validates every row. All violations
// are collected first; a non-empty set is reported through the logger and
// returned as a single ErrValidationFailed.
func (v *Validator) ValidateFile(path string) error {
	fields, rows, err := readSheet(path)
	if err != nil {
		return err
	}
	problems := v.Examine(fields, rows)
	if len(problems) == 0 {
		v.logger.Info("sheet passes all checks")
		return nil
	}
	v.logger.Error("migration sheet has %d problems:", len(problems))
	for _, problem := range problems {
		v.logger.Error("  %s", problem)
	}
	return fmt.Errorf("%w: %d problems", exodus.ErrValidationFailed, len(problems))
}

// Examine validates rows against the profile and returns every violation
// found. fields preserves the sheet's column order so reports are stable.
func (v *Validator) Examine(fields []string, rows []exodus.Record) []string {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}
	for _, row := range rows {
		v.checkModel(row, add)
		v.checkValues(fields, row, add)
		v.checkLicense(row, add)
		v.checkRequired(row, add)
	}
	return problems
}

type reporter func(format string, args ...interface{})

func (v *Validator) checkModel(row exodus.Record, add reporter) {
	model := row["model"]
	if exemptModels[model] {
		return
	}
	if _, ok := v.profile.Classes[model]; !ok {
		add("%s has invalid model %s", row["source_identifier"], model)
	}
}

func (v *Validator) checkValues(fields []string, row exodus.Record, add reporter) {
	if exemptModels[row["model"]] {
		return
	}
	for _, field := range fields {
		if systemFields[field] {
			continue
		}
		value := row[field]
		spec, ok := v.profile.Properties[field]
		if !ok {
			add("%s is not listed in the m3 profile", field)
			continue
		}
		if !spec.AvailableOnModel(row["model"]) {
			if value != "" {
				add("%s is not available on %s for %s", field, row["model"], row["source_identifier"])
			}
			continue
		}
		v.checkCardinality(field, value, spec, row, add)
		v.checkRange(field, value, spec, row, add)
	}
}

func (v *Validator) checkCardinality(field, value string, spec PropertySpec, row exodus.Record, add reporter) {
	count := len(splitValues(value))
	if count > spec.Cardinality.Max() {
		add("%s has %d values but maximum is %d on %s", field, count, spec.Cardinality.Max(), row["source_identifier"])
	}
	if count < spec.Cardinality.Min() {
		add("%s has %d values but minimum is %d on %s on %s", field, count, spec.Cardinality.Min(), row["model"], row["source_identifier"])
	}
}

func (v *Validator) checkRange(field, value string, spec PropertySpec, row exodus.Record, add reporter) {
	for _, single := range splitValues(value) {
		if spec.Range == anyURIRange {
			if !strings.HasPrefix(single, "http") {
				add("%s is not a URI for %s", single, row["source_identifier"])
			}
		} else if strings.HasPrefix(single, "http:") {
			add("%s may be a URI for %s", single, row["source_identifier"])
		}
	}
}

// checkLicense applies to every row, exempt models included: a malformed
// license URL breaks import regardless of model.
func (v *Validator) checkLicense(row exodus.Record, add reporter) {
	license := row["license"]
	if license == "" {
		return
	}
	if !strings.Contains(license, "http://") || strings.Contains(license, "/rdf") {
		add("%s has invalid license: %s", row["source_identifier"], license)
	}
}

func (v *Validator) checkRequired(row exodus.Record, add reporter) {
	names := make([]string, 0, len(v.profile.Properties))
	for name := range v.profile.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := v.profile.Properties[name]
		if spec.Cardinality.Min() > 0 && spec.AvailableOnModel(row["model"]) {
			if _, ok := row[name]; !ok {
				add("%s has no %s but %s required on %s", row["source_identifier"], name, name, row["model"])
			}
		}
	}
}

// splitValues splits a delimiter-joined cell, dropping empty segments.
func splitValues(value string) []string {
	var out []string
	for _, v := range strings.Split(value, exodus.Delimiter) {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// readSheet loads a CSV sheet into records keyed by header name.
func readSheet(path string) ([]string, []exodus.Record, error) {
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
	fields := all[0]
	rows := make([]exodus.Record, 0, len(all)-1)
	for _, line := range all[1:] {
		row := make(exodus.Record, len(fields))
		for i, field := range fields {
			if i < len(line) {
				row[field] = line[i]
			} else {
				row[field] = ""
			}
		}
		rows = append(rows, row)
	}
	return fields, rows, nil
}
