package mods

import (
	"strings"

	"github.com/vvka-141/exodus/internal/xmldoc"
)

// nameEntry is one mods:name element reduced to its role keys and values.
// Authority URIs and literal name parts are kept apart because they feed
// different output fields.
type nameEntry struct {
	roles []string
	uris  []string
	texts []string
}

// parseNames walks every mods:name element once and classifies its values.
// A name-level valueURI shadows any namePart children. A namePart whose text
// is itself a URI counts as a URI value, not a literal.
func (e *Extractor) parseNames(doc *xmldoc.Document) ([]nameEntry, error) {
	nodes, err := doc.Nodes(`mods:name`)
	if err != nil {
		return nil, err
	}

	var entries []nameEntry
	for _, node := range nodes {
		var entry nameEntry

		roleDoc := xmldoc.Wrap(node)
		terms, err := roleDoc.Strings(`mods:role/mods:roleTerm`)
		if err != nil {
			return nil, err
		}
		for _, term := range terms {
			if key := normalizeRole(term); key != "" {
				entry.roles = append(entry.roles, key)
			}
		}
		if len(entry.roles) == 0 {
			e.logger.Info("skipping name without role term: %s", xmldoc.NodeText(node))
			continue
		}

		if uri := xmldoc.Attr(node, "valueURI"); uri != "" {
			entry.uris = append(entry.uris, uri)
			entries = append(entries, entry)
			continue
		}

		parts, err := roleDoc.Nodes(`mods:namePart`)
		if err != nil {
			return nil, err
		}
		for _, part := range parts {
			if uri := xmldoc.Attr(part, "valueURI"); uri != "" {
				entry.uris = append(entry.uris, uri)
				continue
			}
			text := xmldoc.NodeText(part)
			if text == "" {
				continue
			}
			if strings.HasPrefix(text, "http") {
				entry.uris = append(entry.uris, text)
			} else {
				entry.texts = append(entry.texts, text)
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Names maps name elements to role-keyed fields. Authority URIs go to the
// bare role field and literal name parts to the utk_-prefixed variant, so
// "Smith, Jane" as a photographer yields utk_photographer while her LC URI
// yields photographer.
func (e *Extractor) Names(doc *xmldoc.Document) (map[string][]string, error) {
	entries, err := e.parseNames(doc)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	for _, entry := range entries {
		for _, role := range entry.roles {
			if len(entry.uris) > 0 {
				fields[role] = append(fields[role], entry.uris...)
			}
			if len(entry.texts) > 0 {
				local := "utk_" + role
				fields[local] = append(fields[local], entry.texts...)
			}
		}
	}
	return fields, nil
}

// RolesAndNames is the literal-only variant of Names: it emits only the
// utk_-prefixed fields with plain-text name parts.
func (e *Extractor) RolesAndNames(doc *xmldoc.Document) (map[string][]string, error) {
	entries, err := e.parseNames(doc)
	if err != nil {
		return nil, err
	}

	fields := map[string][]string{}
	for _, entry := range entries {
		if len(entry.texts) == 0 {
			continue
		}
		for _, role := range entry.roles {
			local := "utk_" + role
			fields[local] = append(fields[local], entry.texts...)
		}
	}
	return fields, nil
}
