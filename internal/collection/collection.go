// Package collection builds Collection rows for parent objects straight
// from the live repository: MODS metadata read over the Fedora REST API and
// visibility derived from the object's access policy.
package collection

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/exodus/internal/mapping"
	"github.com/vvka-141/exodus/internal/restrict"
	"github.com/vvka-141/exodus/internal/xmldoc"
	"github.com/vvka-141/exodus/pkg/exodus"
)

// stubMODS stands in for collections whose MODS datastream is not well
// formed; the import still needs a row for them.
const stubMODS = `<mods xmlns="http://www.loc.gov/mods/v3" xmlns:xlink="http://www.w3.org/1999/xlink">
  <titleInfo>
    <title></title>
  </titleInfo>
</mods>`

// contributorRoles are the MODS role terms mapped to utk_contributor.
var contributorRoles = []string{
	"Contributor", "Addressee", "Arranger", "Associated Name", "Autographer",
	"Censor", "Choreographer", "Client", "Contractor", "Copyright Holder",
	"Dedicatee", "Depicted", "Distributor", "Donor", "Editor",
	"Editor of Compilation", "Former Owner", "Honoree", "Host Institution",
	"Instrumentalist", "Interviewer", "Issuing Body", "Music Copyist",
	"Musical Director", "Organizer", "Originator", "Owner", "Performer",
	"Printer", "Printer of Plates", "Producer", "Production Company",
	"Publisher", "Restorationist", "Set Designer", "Signer", "Speaker",
	"Stage Director", "Stage Manager", "Standards Body", "Surveyor",
	"Translator", "Videographer", "Witness",
}

// creatorRoles are the MODS role terms mapped to utk_creator.
var creatorRoles = []string{
	"Creator", "Architect", "Artist", "Attributed Name", "Author",
	"Binding Designer", "Cartographer", "Compiler", "Composer",
	"Correspondent", "Costume Designer", "Designer", "Engraver",
	"Illustrator", "Interviewee", "Lithographer", "Lyricist", "Photographer",
}

// collectionFields is the fixed column order of a collection sheet.
var collectionFields = []string{
	"source_identifier", "model", "parents", "title", "abstract",
	"contributor", "utk_contributor", "creator", "utk_creator",
	"date_created", "date_issued", "date_created_d", "date_issued_d",
	"utk_publisher", "publisher", "publication_place", "extent", "form",
	"subject", "keyword", "spatial", "resource_type", "note", "repository",
	"visibility",
}

// Importer builds collection rows from the live repository.
type Importer struct {
	repo     exodus.ObjectRepository
	logger   exodus.Logger
	progress func(done, total int)
}

// Option configures an Importer.
type Option func(*Importer)

// WithProgress installs a callback invoked after each collection.
func WithProgress(fn func(done, total int)) Option {
	return func(i *Importer) {
		i.progress = fn
	}
}

// New creates an Importer reading through the given repository.
func New(repo exodus.ObjectRepository, logger exodus.Logger, opts ...Option) *Importer {
	i := &Importer{repo: repo, logger: logger}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Records builds one Collection row per pid.
func (i *Importer) Records(ctx context.Context, pids []string) (*mapping.Sheet, error) {
	sheet := &mapping.Sheet{}
	sheet.AddFields(collectionFields...)
	for n, pid := range pids {
		record, err := i.record(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("collection %s: %w", pid, err)
		}
		sheet.Records = append(sheet.Records, record)
		if i.progress != nil {
			i.progress(n+1, len(pids))
		}
	}
	return sheet, nil
}

// WriteCSV renders the collection rows for pids to path.
func (i *Importer) WriteCSV(ctx context.Context, pids []string, path string) error {
	sheet, err := i.Records(ctx, pids)
	if err != nil {
		return err
	}
	return mapping.WriteCSV(sheet, path)
}

func (i *Importer) record(ctx context.Context, pid string) (exodus.Record, error) {
	doc, err := i.loadMODS(ctx, pid)
	if err != nil {
		return nil, err
	}
	visibility, err := i.visibility(ctx, pid)
	if err != nil {
		return nil, err
	}

	record := exodus.Record{
		"source_identifier": pid,
		"model":             "Collection",
		"parents":           "",
		"title":             joined(doc, "mods:titleInfo/mods:title"),
		"abstract":          joined(doc, "mods:abstract"),
		"contributor":       "",
		"utk_contributor":   namesForRoles(doc, contributorRoles),
		"creator":           "",
		"utk_creator":       namesForRoles(doc, creatorRoles),
		"date_created":      joined(doc, "mods:originInfo/mods:dateCreated[not(@encoding)]"),
		"date_issued":       joined(doc, "mods:originInfo/mods:dateIssued[not(@encoding)]"),
		"date_created_d":    joined(doc, "mods:originInfo/mods:dateCreated[@encoding]"),
		"date_issued_d":     joined(doc, "mods:originInfo/mods:dateIssued[@encoding]"),
		"utk_publisher":     joined(doc, "mods:originInfo/mods:publisher"),
		"publisher":         "",
		"publication_place": "",
		"extent":            joined(doc, "mods:physicalDescription/mods:extent"),
		"form":              joined(doc, "mods:physicalDescription/mods:form"),
		"subject":           joined(doc, "mods:subject/mods:topic/@valueURI", "mods:subject[mods:topic]/@valueURI"),
		"keyword":           joined(doc, "mods:subject/mods:topic"),
		"spatial":           "",
		"resource_type":     "",
		"note":              joined(doc, "mods:note"),
		"repository":        "",
		"visibility":        visibility,
	}
	return record, nil
}

// loadMODS reads and parses the collection's MODS, substituting the stub
// document when the datastream is malformed.
func (i *Importer) loadMODS(ctx context.Context, pid string) (*xmldoc.Document, error) {
	content, err := i.repo.GetDatastream(ctx, pid, "MODS")
	if err != nil {
		return nil, err
	}
	doc, err := xmldoc.ParseBytes(content)
	if err != nil {
		i.logger.Info("collection %s has malformed MODS, using empty record", pid)
		return xmldoc.ParseBytes([]byte(stubMODS))
	}
	return doc, nil
}

// visibility evaluates the object's POLICY datastream. Objects without one
// are open.
func (i *Importer) visibility(ctx context.Context, pid string) (string, error) {
	content, err := i.repo.GetDatastream(ctx, pid, "POLICY")
	if err != nil {
		return exodus.VisibilityOpen, nil
	}
	doc, err := xmldoc.ParseBytes(content)
	if err != nil {
		return exodus.VisibilityOpen, nil
	}
	restricted, err := restrict.NewRestrictions(doc).WorkRestricted()
	if err != nil {
		return "", err
	}
	if restricted {
		return exodus.VisibilityRestricted, nil
	}
	return exodus.VisibilityOpen, nil
}

// joined evaluates xpaths in order and joins all matches.
func joined(doc *xmldoc.Document, xpaths ...string) string {
	var values []string
	for _, expr := range xpaths {
		matched, err := doc.Strings(expr)
		if err != nil {
			continue
		}
		values = append(values, matched...)
	}
	return strings.Join(values, exodus.Delimiter)
}

// namesForRoles collects namePart values for names carrying any of the
// given role terms, in role order.
func namesForRoles(doc *xmldoc.Document, roles []string) string {
	var values []string
	for _, role := range roles {
		expr := fmt.Sprintf(`mods:name[mods:role/mods:roleTerm[contains(.,"%s")]]/mods:namePart`, role)
		matched, err := doc.Strings(expr)
		if err != nil {
			continue
		}
		values = append(values, matched...)
	}
	return strings.Join(values, exodus.Delimiter)
}
