package exodus

import (
	"context"
	"fmt"
)

// WorkType is the migration-side content model of a repository object.
// The set is closed: it mirrors the Islandora content models the legacy
// repository actually contains.
type WorkType string

const (
	WorkTypeAudio          WorkType = "Audio"
	WorkTypeBook           WorkType = "Book"
	WorkTypeCompoundObject WorkType = "CompoundObject"
	WorkTypeGeneric        WorkType = "Generic"
	WorkTypeImage          WorkType = "Image"
	WorkTypePdf            WorkType = "Pdf"
	WorkTypeVideo          WorkType = "Video"
)

// contentModels maps Islandora content-model IRIs to work types.
var contentModels = map[string]WorkType{
	"info:fedora/islandora:sp-audioCModel":        WorkTypeAudio,
	"info:fedora/islandora:bookCModel":            WorkTypeBook,
	"info:fedora/islandora:compoundCModel":        WorkTypeCompoundObject,
	"info:fedora/islandora:binaryObjectCModel":    WorkTypeGeneric,
	"info:fedora/islandora:sp_large_image_cmodel": WorkTypeImage,
	"info:fedora/islandora:sp_basic_image":        WorkTypeImage,
	"info:fedora/islandora:sp_pdf":                WorkTypePdf,
	"info:fedora/islandora:sp_videoCModel":        WorkTypeVideo,
}

// ontologyValues maps work types to the UTK works-ontology IRIs stamped into
// the has_work_type column.
var ontologyValues = map[WorkType]string{
	WorkTypeAudio:          "https://ontology.lib.utk.edu/works#AudioWork",
	WorkTypeBook:           "https://ontology.lib.utk.edu/works#BookWork",
	WorkTypeCompoundObject: "https://ontology.lib.utk.edu/works#CompoundObjectWork",
	WorkTypeGeneric:        "https://ontology.lib.utk.edu/works#GenericWork",
	WorkTypeImage:          "https://ontology.lib.utk.edu/works#ImageWork",
	WorkTypePdf:            "https://ontology.lib.utk.edu/works#PDFWork",
	WorkTypeVideo:          "https://ontology.lib.utk.edu/works#VideoWork",
}

// WorkTypeForModel resolves a content-model IRI to a WorkType.
// Unknown IRIs return ErrUnknownContentModel: an unmapped model means the
// run is misconfigured and must not continue.
func WorkTypeForModel(iri string) (WorkType, error) {
	wt, ok := contentModels[iri]
	if !ok {
		return "", fmt.Errorf("content model %q: %w", iri, ErrUnknownContentModel)
	}
	return wt, nil
}

// OntologyValue returns the works-ontology IRI for a work type, or the empty
// string for types (Page, Collection) that have none.
func OntologyValue(wt WorkType) string {
	return ontologyValues[wt]
}

// Record is one flat output row of an import sheet. Values are already
// delimiter-joined; multivalued fields use Delimiter.
type Record map[string]string

// Clone returns a copy of the record. Child rows (pages, compound parts)
// start as clones of their parent and override only the identity fields.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// FieldRule is one entry of the declarative mapping configuration. Exactly
// one of XPaths or Special is set: XPaths makes the rule a direct extraction
// into Name; Special names a built-in extractor which may emit several
// fields (in which case Name is informational only).
type FieldRule struct {
	Name    string   `yaml:"name"`
	XPaths  []string `yaml:"xpaths,omitempty"`
	Special string   `yaml:"special,omitempty"`
}

// PageEntry is one page of a paged work (Book), as reported by the resource
// index. Number is kept as text: the legacy index stores it as a literal and
// sheets carry it verbatim.
type PageEntry struct {
	PID    string
	Number string
}

// PartEntry is one constituent of a compound object.
type PartEntry struct {
	PID      string
	Sequence string
	Model    string
}

// ResourceIndex is the read-only triple-store collaborator. All methods are
// idempotent queries against the legacy resource index.
type ResourceIndex interface {
	// GetWorkType returns the content-model IRI of an object.
	GetWorkType(ctx context.Context, pid string) (string, error)

	// GetParentCollections returns the PIDs of the collections an object is
	// a member of.
	GetParentCollections(ctx context.Context, pid string) ([]string, error)

	// FindPagesInBook returns the pages of a book with their page numbers.
	FindPagesInBook(ctx context.Context, pid string) ([]PageEntry, error)

	// GetCompoundObjectParts returns the constituents of a compound object
	// with their sequence numbers and content-model IRIs.
	GetCompoundObjectParts(ctx context.Context, pid string) ([]PartEntry, error)

	// GetDatastreamIDs returns the datastream ids an object disseminates.
	GetDatastreamIDs(ctx context.Context, pid string) ([]string, error)
}

// ObjectRepository is the binary-object collaborator (Fedora 3 REST API).
type ObjectRepository interface {
	// GetDatastream downloads a datastream's content.
	GetDatastream(ctx context.Context, pid, dsid string) ([]byte, error)

	// DownloadDatastream streams a datastream to a file under dir, deriving
	// the extension from the response content type. Returns the written path.
	DownloadDatastream(ctx context.Context, pid, dsid, dir string) (string, error)
}
