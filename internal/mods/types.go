package mods

import (
	"github.com/antchfx/xmlquery"

	"github.com/vvka-141/exodus/internal/xmldoc"
)

// genreURIs maps the free-text genre strings the legacy repository emits to
// Library of Congress resourceType URIs.
var genreURIs = map[string]string{
	"cartographic":  "http://id.loc.gov/vocabulary/resourceTypes/car",
	"image":         "http://id.loc.gov/vocabulary/resourceTypes/img",
	"notated music": "http://id.loc.gov/vocabulary/resourceTypes/not",
	"still image":   "http://id.loc.gov/vocabulary/resourceTypes/img",
	"text":          "http://id.loc.gov/vocabulary/resourceTypes/txt",
}

// typeOfResourceURIs maps MODS typeOfResource strings to resourceType URIs.
var typeOfResourceURIs = map[string]string{
	"text":                       "http://id.loc.gov/vocabulary/resourceTypes/txt",
	"cartographic":               "http://id.loc.gov/vocabulary/resourceTypes/car",
	"notated music":              "http://id.loc.gov/vocabulary/resourceTypes/not",
	"sound recording-nonmusical": "http://id.loc.gov/vocabulary/resourceTypes/aun",
	"sound recording":            "http://id.loc.gov/vocabulary/resourceTypes/aud",
	"still image":                "http://id.loc.gov/vocabulary/resourceTypes/img",
	"moving image":               "http://id.loc.gov/vocabulary/resourceTypes/mov",
	"three dimensional object":   "http://id.loc.gov/vocabulary/resourceTypes/art",
}

const collectionTypeURI = "http://id.loc.gov/vocabulary/resourceTypes/col"

// matchedGenreStrings returns the genre texts that map to resourceType URIs:
// bare genre elements saying cartographic or notated music, and dct-authority
// genres saying image, still image, or text.
func matchedGenreStrings(doc *xmldoc.Document) ([]string, error) {
	nodes, err := doc.Nodes(`mods:genre`)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, node := range nodes {
		text := xmldoc.NodeText(node)
		switch {
		case len(node.Attr) == 0 && (text == "cartographic" || text == "notated music"):
			matches = append(matches, text)
		case xmldoc.Attr(node, "authority") == "dct" &&
			(text == "image" || text == "still image" || text == "text"):
			matches = append(matches, text)
		}
	}
	return matches, nil
}

// bareGenres returns attribute-free genre elements, minus the two strings
// that map to controlled resourceType URIs.
func bareGenres(doc *xmldoc.Document) ([]string, error) {
	nodes, err := doc.Nodes(`mods:genre`)
	if err != nil {
		return nil, err
	}

	var values []string
	for _, node := range nodes {
		if len(node.Attr) != 0 {
			continue
		}
		text := xmldoc.NodeText(node)
		if text == "" || text == "cartographic" || text == "notated music" {
			continue
		}
		values = append(values, text)
	}
	return values, nil
}

// typeOfResourceValues splits typeOfResource elements into plain values and
// a flag for collection-level records.
func typeOfResourceValues(doc *xmldoc.Document) (plain []string, hasCollection bool, err error) {
	nodes, err := doc.Nodes(`mods:typeOfResource`)
	if err != nil {
		return nil, false, err
	}
	for _, node := range nodes {
		if xmldoc.Attr(node, "collection") != "" {
			hasCollection = true
			continue
		}
		if text := xmldoc.NodeText(node); text != "" {
			plain = append(plain, text)
		}
	}
	return plain, hasCollection, nil
}

// Types maps genre and typeOfResource values to controlled URIs:
// form (edm:hasType URIs), resource_type (dcterms:type URIs), and the
// human-readable leftovers in form_local.
func (e *Extractor) Types(doc *xmldoc.Document) (map[string][]string, error) {
	form, err := e.typeURIForms(doc)
	if err != nil {
		return nil, err
	}

	genreMatches, err := matchedGenreStrings(doc)
	if err != nil {
		return nil, err
	}
	plainResources, hasCollection, err := typeOfResourceValues(doc)
	if err != nil {
		return nil, err
	}

	var resourceTypes []string
	for _, match := range genreMatches {
		if uri, ok := genreURIs[match]; ok {
			resourceTypes = append(resourceTypes, uri)
		}
	}
	for _, value := range plainResources {
		if uri, ok := typeOfResourceURIs[value]; ok {
			resourceTypes = append(resourceTypes, uri)
		}
	}
	if hasCollection {
		resourceTypes = append(resourceTypes, collectionTypeURI)
	}

	formLocal, err := e.localForms(doc, true)
	if err != nil {
		return nil, err
	}

	return map[string][]string{
		"form":          form,
		"resource_type": resourceTypes,
		"form_local":    formLocal,
	}, nil
}

// LocalTypes is the literal variant of Types: matched strings stay as-is in
// resource_type_local instead of being swapped for URIs.
func (e *Extractor) LocalTypes(doc *xmldoc.Document) (map[string][]string, error) {
	genreMatches, err := matchedGenreStrings(doc)
	if err != nil {
		return nil, err
	}
	plainResources, hasCollection, err := typeOfResourceValues(doc)
	if err != nil {
		return nil, err
	}

	var resourceTypes []string
	for _, match := range genreMatches {
		if _, ok := genreURIs[match]; ok {
			resourceTypes = append(resourceTypes, match)
		}
	}
	for _, value := range plainResources {
		if _, ok := typeOfResourceURIs[value]; ok {
			resourceTypes = append(resourceTypes, value)
		}
	}
	if hasCollection {
		resourceTypes = append(resourceTypes, collectionTypeURI)
	}

	formLocal, err := e.localForms(doc, false)
	if err != nil {
		return nil, err
	}

	return map[string][]string{
		"resource_type_local": resourceTypes,
		"form_local":          formLocal,
	}, nil
}

// typeURIForms collects edm:hasType URIs from lcgft genres and form elements.
func (e *Extractor) typeURIForms(doc *xmldoc.Document) ([]string, error) {
	lcgft, err := doc.Strings(`mods:genre[@authority="lcgft"]/@valueURI`)
	if err != nil {
		return nil, err
	}
	forms, err := doc.Strings(`mods:physicalDescription/mods:form/@valueURI`)
	if err != nil {
		return nil, err
	}

	var uris []string
	uris = append(uris, lcgft...)
	uris = append(uris, forms...)
	return uris, nil
}

// localForms collects human-readable form and genre strings. The strict
// variant skips URI-valued forms and attribute-bearing genres; the loose
// variant keeps them.
func (e *Extractor) localForms(doc *xmldoc.Document, strict bool) ([]string, error) {
	formExpr := `mods:physicalDescription/mods:form[not(@type="material")]`
	if strict {
		formExpr = `mods:physicalDescription/mods:form[not(@valueURI)][not(@type="material")]`
	}
	forms, err := doc.Strings(formExpr)
	if err != nil {
		return nil, err
	}

	var genres []string
	if strict {
		genres, err = bareGenres(doc)
		if err != nil {
			return nil, err
		}
	} else {
		nodes, err := doc.Nodes(`mods:genre`)
		if err != nil {
			return nil, err
		}
		genres = genreTextsExcludingMapped(nodes)
	}

	var values []string
	values = append(values, forms...)
	values = append(values, genres...)
	return values, nil
}

func genreTextsExcludingMapped(nodes []*xmlquery.Node) []string {
	var values []string
	for _, node := range nodes {
		text := xmldoc.NodeText(node)
		if text == "" || text == "cartographic" || text == "notated music" {
			continue
		}
		values = append(values, text)
	}
	return values
}
