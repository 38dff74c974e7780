package mods

import (
	"github.com/vvka-141/exodus/internal/xmldoc"
)

// Publishers collects publisher authority URIs.
func (e *Extractor) Publishers(doc *xmldoc.Document) (map[string][]string, error) {
	uris, err := doc.Strings(`mods:originInfo/mods:publisher/@valueURI`)
	if err != nil {
		return nil, err
	}
	return map[string][]string{"publisher": uris}, nil
}

// PublicationPlaces collects place-of-publication authority URIs.
func (e *Extractor) PublicationPlaces(doc *xmldoc.Document) (map[string][]string, error) {
	uris, err := doc.Strings(`mods:originInfo/mods:place/mods:placeTerm/@valueURI`)
	if err != nil {
		return nil, err
	}
	return map[string][]string{"publication_place": uris}, nil
}

// languageURIs maps the language names and codes that occur in the legacy
// corpus to ISO 639-2 URIs. Anything outside this set is dropped.
var languageURIs = map[string]string{
	"English":               "http://id.loc.gov/vocabulary/iso639-2/eng",
	"French":                "http://id.loc.gov/vocabulary/iso639-2/fre",
	"German":                "http://id.loc.gov/vocabulary/iso639-2/ger",
	"Italian":               "http://id.loc.gov/vocabulary/iso639-2/ita",
	"Latin":                 "http://id.loc.gov/vocabulary/iso639-2/lat",
	"No linguistic content": "http://id.loc.gov/vocabulary/iso639-2/zxx",
	"Russian":               "http://id.loc.gov/vocabulary/iso639-2/rus",
	"Spanish":               "http://id.loc.gov/vocabulary/iso639-2/spa",
	"Swedish":               "http://id.loc.gov/vocabulary/iso639-2/swe",
	"en":                    "http://id.loc.gov/vocabulary/iso639-2/eng",
}

// Languages maps languageTerm values to ISO 639-2 URIs.
func (e *Extractor) Languages(doc *xmldoc.Document) (map[string][]string, error) {
	terms, err := doc.Strings(`mods:language/mods:languageTerm`)
	if err != nil {
		return nil, err
	}

	var uris []string
	for _, term := range terms {
		if uri, ok := languageURIs[term]; ok {
			uris = append(uris, uri)
		}
	}
	return map[string][]string{"language": uris}, nil
}

// Extents renders physical extents, attaching the unit attribute when one
// is present. Unit-bearing values precede unit-less ones.
func (e *Extractor) Extents(doc *xmldoc.Document) (map[string][]string, error) {
	withUnit, err := doc.Nodes(`mods:physicalDescription/mods:extent[@unit]`)
	if err != nil {
		return nil, err
	}
	withoutUnit, err := doc.Strings(`mods:physicalDescription/mods:extent[not(@unit)]`)
	if err != nil {
		return nil, err
	}

	var extents []string
	for _, node := range withUnit {
		text := xmldoc.NodeText(node)
		if text == "" {
			continue
		}
		extents = append(extents, text+" "+xmldoc.Attr(node, "unit"))
	}
	extents = append(extents, withoutUnit...)
	return map[string][]string{"extent": extents}, nil
}
