package mods

import (
	"strings"

	"github.com/vvka-141/exodus/internal/xmldoc"
)

const canonicalRepository = "University of Tennessee, Knoxville. Special Collections"

// canonicalRepositoryMarker is deliberately missing the final two letters of
// "Tennessee" so it substring-matches the inconsistent spellings that appear
// in legacy records.
const canonicalRepositoryMarker = "University of Tennesse"

// PhysicalLocations extracts the holding repository and archival collection.
func (e *Extractor) PhysicalLocations(doc *xmldoc.Document) (map[string][]string, error) {
	repositories, err := e.repositories(doc)
	if err != nil {
		return nil, err
	}
	collections, err := e.archivalCollections(doc)
	if err != nil {
		return nil, err
	}
	return map[string][]string{
		"repository":          repositories,
		"archival_collection": collections,
	}, nil
}

// repositories prefers physicalLocation elements labeled Repository; any
// unlabeled ones that are empty or name the university in one of its legacy
// spellings normalize to the canonical repository string.
func (e *Extractor) repositories(doc *xmldoc.Document) ([]string, error) {
	labeled, err := doc.Strings(`mods:location/mods:physicalLocation[@displayLabel="Repository"]`)
	if err != nil {
		return nil, err
	}
	unlabeled, err := doc.Nodes(`mods:location/mods:physicalLocation[not(@displayLabel)]`)
	if err != nil {
		return nil, err
	}

	var repositories []string
	repositories = append(repositories, labeled...)
	for _, node := range unlabeled {
		text := xmldoc.NodeText(node)
		if text == "" || strings.Contains(text, canonicalRepositoryMarker) {
			repositories = append(repositories, canonicalRepository)
		} else {
			repositories = append(repositories, text)
		}
	}
	return repositories, nil
}

// archivalCollections merges labeled physicalLocation values with structured
// relatedItem collections rendered as "{title}, {identifier}".
func (e *Extractor) archivalCollections(doc *xmldoc.Document) ([]string, error) {
	labeled, err := doc.Strings(`mods:location/mods:physicalLocation[@displayLabel="Collection"]`)
	if err != nil {
		return nil, err
	}

	var collections []string
	for _, value := range labeled {
		if !contains(collections, value) {
			collections = append(collections, value)
		}
	}

	related, err := doc.Nodes(`mods:relatedItem[@displayLabel="Collection"][mods:titleInfo]`)
	if err != nil {
		return nil, err
	}
	for _, node := range related {
		item := xmldoc.Wrap(node)
		identifier, err := item.First(`mods:identifier`)
		if err != nil {
			return nil, err
		}
		title, err := item.First(`mods:titleInfo/mods:title`)
		if err != nil {
			return nil, err
		}

		var rendered string
		switch {
		case title != "" && identifier != "":
			rendered = title + ", " + identifier
		case identifier != "":
			rendered = identifier
		case title != "":
			rendered = title
		}
		if rendered != "" {
			collections = append(collections, rendered)
		}
	}
	return collections, nil
}

const utkLibraries = "University of Tennessee, Knoxville. Libraries"

// DataProviders stamps the fixed provider and surfaces any other record
// content source as an intermediate provider.
func (e *Extractor) DataProviders(doc *xmldoc.Document) (map[string][]string, error) {
	sources, err := doc.Strings(`mods:recordInfo/mods:recordContentSource`)
	if err != nil {
		return nil, err
	}

	var intermediates []string
	for _, source := range sources {
		if source != utkLibraries {
			intermediates = append(intermediates, source)
		}
	}
	return map[string][]string{
		"provider":              {utkLibraries},
		"intermediate_provider": intermediates,
	}, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
