package mods

import (
	"fmt"
	"strings"

	"github.com/vvka-141/exodus/internal/xmldoc"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// ExtractorKind names a special-purpose extractor in a mapping configuration.
type ExtractorKind string

// The closed set of named extractors a mapping configuration may reference.
const (
	KindTitle             ExtractorKind = "TitleProperty"
	KindName              ExtractorKind = "NameProperty"
	KindRoleAndName       ExtractorKind = "RoleAndNameProperty"
	KindGeoNames          ExtractorKind = "GeoNamesProperty"
	KindDataProvider      ExtractorKind = "DataProvider"
	KindPhysicalLocations ExtractorKind = "PhysicalLocationsProperties"
	KindSubject           ExtractorKind = "SubjectProperty"
	KindKeyword           ExtractorKind = "KeywordProperty"
	KindTypes             ExtractorKind = "TypesProperties"
	KindLocalTypes        ExtractorKind = "LocalTypesProperties"
	KindLanguageURI       ExtractorKind = "LanguageURIProperty"
	KindPublisher         ExtractorKind = "PublisherProperty"
	KindPublicationPlace  ExtractorKind = "PublicationPlaceProperty"
	KindRightsOrLicense   ExtractorKind = "RightsOrLicenseProperties"
	KindExtent            ExtractorKind = "ExtentProperty"
	KindMachineDate       ExtractorKind = "MachineDate"
)

// extractorFunc produces one or more named field value lists from a document.
// The field argument carries the configured output field name for extractors
// that honor it.
type extractorFunc func(e *Extractor, doc *xmldoc.Document, field string) (map[string][]string, error)

var extractors = map[ExtractorKind]extractorFunc{
	KindTitle: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Titles(doc)
	},
	KindName: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Names(doc)
	},
	KindRoleAndName: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.RolesAndNames(doc)
	},
	KindGeoNames: func(e *Extractor, doc *xmldoc.Document, field string) (map[string][]string, error) {
		return e.GeoNames(doc, field)
	},
	KindDataProvider: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.DataProviders(doc)
	},
	KindPhysicalLocations: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.PhysicalLocations(doc)
	},
	KindSubject: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Subjects(doc)
	},
	KindKeyword: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Keywords(doc)
	},
	KindTypes: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Types(doc)
	},
	KindLocalTypes: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.LocalTypes(doc)
	},
	KindLanguageURI: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Languages(doc)
	},
	KindPublisher: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Publishers(doc)
	},
	KindPublicationPlace: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.PublicationPlaces(doc)
	},
	KindRightsOrLicense: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.RightsOrLicense(doc)
	},
	KindExtent: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.Extents(doc)
	},
	KindMachineDate: func(e *Extractor, doc *xmldoc.Document, _ string) (map[string][]string, error) {
		return e.MachineDates(doc)
	},
}

// Extractor runs property extraction against parsed MODS documents.
type Extractor struct {
	logger exodus.Logger
}

// New creates an Extractor that reports skipped malformed structures
// through the given logger.
func New(logger exodus.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// KnownKind reports whether kind names a built-in extractor. Mapping
// configurations are checked with this before any file is processed.
func KnownKind(kind ExtractorKind) bool {
	_, ok := extractors[kind]
	return ok
}

// Run dispatches to the named extractor. An unrecognized kind is a
// configuration error and aborts the run.
func (e *Extractor) Run(kind ExtractorKind, doc *xmldoc.Document, field string) (map[string][]string, error) {
	fn, ok := extractors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", exodus.ErrUnknownExtractor, kind)
	}
	return fn(e, doc, field)
}

// Standard evaluates a list of XPath expressions in order and concatenates
// their matched text values. Used for direct-mapping field rules.
func (e *Extractor) Standard(doc *xmldoc.Document, xpaths []string) ([]string, error) {
	var values []string
	for _, expr := range xpaths {
		matched, err := doc.Strings(expr)
		if err != nil {
			return nil, err
		}
		values = append(values, matched...)
	}
	return values, nil
}

// normalizeRole turns a MODS roleTerm into an output field key.
func normalizeRole(term string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(term)), " ", "_")
}
