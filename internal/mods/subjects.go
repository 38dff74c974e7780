package mods

import (
	"strings"

	"github.com/vvka-141/exodus/internal/xmldoc"
)

// subjectURIExpressions lists, in fixed output order, every place a
// controlled-vocabulary subject URI can live in a MODS document.
var subjectURIExpressions = []string{
	`mods:subject[mods:topic]/@valueURI`,
	`mods:subject/mods:topic/@valueURI`,
	`mods:subject[mods:name/mods:namePart]/@valueURI`,
	`mods:subject/mods:name/@valueURI`,
	`mods:genre[@authority="aat"]/@valueURI`,
	`mods:genre[@authority="lcmpt"]/@valueURI`,
	`mods:genre[@authority="lcsh"]/@valueURI`,
}

// Subjects collects controlled-vocabulary subject URIs from topic, name and
// genre elements, concatenated in a fixed expression order.
func (e *Extractor) Subjects(doc *xmldoc.Document) (map[string][]string, error) {
	var uris []string
	for _, expr := range subjectURIExpressions {
		matched, err := doc.Strings(expr)
		if err != nil {
			return nil, err
		}
		uris = append(uris, matched...)
	}
	return map[string][]string{"subject": uris}, nil
}

// Keywords is the literal-text complement of Subjects: topic and name values
// with no valueURI anywhere in the chain.
func (e *Extractor) Keywords(doc *xmldoc.Document) (map[string][]string, error) {
	topics, err := doc.Strings(`mods:subject[not(@valueURI)]/mods:topic[not(@valueURI)]`)
	if err != nil {
		return nil, err
	}
	names, err := doc.Strings(`mods:subject[not(@valueURI)]/mods:name[not(@valueURI)]/mods:namePart[not(@valueURI)]`)
	if err != nil {
		return nil, err
	}

	var keywords []string
	keywords = append(keywords, topics...)
	keywords = append(keywords, names...)
	return map[string][]string{"keyword": keywords}, nil
}

// GeoNames collects geographic subject URIs under the configured field name.
// Subject-level URIs come first, then geonames.org URIs with the trailing
// about.rdf stripped so they reference the place rather than its RDF view.
func (e *Extractor) GeoNames(doc *xmldoc.Document, field string) (map[string][]string, error) {
	subjectLevel, err := doc.Strings(`mods:subject[mods:geographic]/@valueURI`)
	if err != nil {
		return nil, err
	}
	geographic, err := doc.Strings(`mods:subject/mods:geographic/@valueURI`)
	if err != nil {
		return nil, err
	}

	var uris []string
	uris = append(uris, subjectLevel...)
	for _, uri := range geographic {
		uris = append(uris, strings.Replace(uri, "about.rdf", "", 1))
	}
	return map[string][]string{field: uris}, nil
}
