package exodus

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Run completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid mapping configuration or content model
	ExitConnectionError  = 11 // Resource index or Fedora unreachable
	ExitValidationFailed = 12 // Import sheet failed M3 validation
)

const (
	// Delimiter joins multivalued fields in sheet cells. Splitting a cell
	// on Delimiter reproduces the original value sequence.
	Delimiter = " | "

	// DefaultRemote is the public address files are served from during
	// import, used to build remote_files URLs.
	DefaultRemote = "https://digital.lib.utk.edu/collections/islandora/object/"

	// DefaultRIEndpoint is the legacy resource-index search endpoint.
	DefaultRIEndpoint = "https://porter.lib.utk.edu/fedora/risearch"

	// DefaultRetryMaxAttempts bounds retries of read-only index queries.
	DefaultRetryMaxAttempts = 3

	// DefaultRequestTimeout bounds a single index or Fedora request.
	DefaultRequestTimeout = 90 * time.Second
)

// Visibility values stamped on import sheet rows.
const (
	VisibilityOpen       = "open"
	VisibilityRestricted = "restricted"
)

// SystemFields are the sheet columns every record carries regardless of
// which extractors fired, in their fixed header order.
var SystemFields = []string{
	"source_identifier",
	"model",
	"sequence",
	"remote_files",
	"parents",
	"visibility",
}
