package mods

import (
	"sort"

	"github.com/vvka-141/exodus/internal/xmldoc"
)

// MachineDates extracts EDTF-encoded created, issued, and other dates.
// Exactly two values for one date kind are read as an open-ended range and
// collapsed to "{min}/{max}" with lexicographic ordering, which is correct
// for EDTF strings.
func (e *Extractor) MachineDates(doc *xmldoc.Document) (map[string][]string, error) {
	fields := map[string][]string{}
	for field, expr := range map[string]string{
		"date_created_d": `mods:originInfo/mods:dateCreated[@encoding="edtf"]`,
		"date_issued_d":  `mods:originInfo/mods:dateIssued[@encoding="edtf"]`,
		"date_other_d":   `mods:originInfo/mods:dateOther[@encoding="edtf"]`,
	} {
		values, err := doc.Strings(expr)
		if err != nil {
			return nil, err
		}
		fields[field] = collapseRange(values)
	}
	return fields, nil
}

// collapseRange joins exactly two date values into a single sorted range.
// Any other count passes through unchanged.
func collapseRange(values []string) []string {
	if len(values) != 2 {
		return values
	}
	sorted := []string{values[0], values[1]}
	sort.Strings(sorted)
	return []string{sorted[0] + "/" + sorted[1]}
}
