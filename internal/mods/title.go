package mods

import (
	"github.com/vvka-141/exodus/internal/xmldoc"
)

// Titles maps titleInfo elements to the title and alternative_title fields.
//
// When a document carries both supplied and plain titles, the supplied ones
// win the title field and the plain ones demote to alternative_title.
// Explicitly typed alternative titles always land in alternative_title.
func (e *Extractor) Titles(doc *xmldoc.Document) (map[string][]string, error) {
	plain, err := doc.Strings(`mods:titleInfo[not(@supplied)][not(@type="alternative")]/mods:title`)
	if err != nil {
		return nil, err
	}
	supplied, err := doc.Strings(`mods:titleInfo[@supplied]/mods:title`)
	if err != nil {
		return nil, err
	}
	typedAlternatives, err := doc.Strings(`mods:titleInfo[@type="alternative"]/mods:title`)
	if err != nil {
		return nil, err
	}

	var titles, alternatives []string
	if len(supplied) > 0 && len(plain) > 0 {
		titles = append(titles, supplied...)
		alternatives = append(alternatives, plain...)
	} else {
		titles = append(titles, supplied...)
		titles = append(titles, plain...)
	}
	alternatives = append(alternatives, typedAlternatives...)

	return map[string][]string{
		"title":             titles,
		"alternative_title": alternatives,
	}, nil
}
