package exodus

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
var (
	// ErrParse indicates a source XML document is not well formed.
	ErrParse = errors.New("malformed xml")

	// ErrUnknownContentModel indicates the resource index returned a
	// content-model IRI with no mapping. Fatal for the run: continuing
	// would silently misfile every object of that model.
	ErrUnknownContentModel = errors.New("unknown content model")

	// ErrUnknownExtractor indicates the mapping configuration names a
	// special extractor that does not exist. Fatal before any file is
	// processed.
	ErrUnknownExtractor = errors.New("unknown special extractor")

	// ErrInvalidMapping indicates the mapping configuration itself is
	// malformed (missing name, both or neither of xpaths/special set).
	ErrInvalidMapping = errors.New("invalid mapping configuration")

	// ErrValidationFailed indicates the finished sheet violates the M3
	// profile. The full itemized report is printed before this is returned.
	ErrValidationFailed = errors.New("migration sheet validation failed")

	// ErrIndexUnavailable indicates the resource index or Fedora could not
	// be reached after retries.
	ErrIndexUnavailable = errors.New("repository service unavailable")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUnknownContentModel),
		errors.Is(err, ErrUnknownExtractor),
		errors.Is(err, ErrInvalidMapping):
		return ExitConfigError
	case errors.Is(err, ErrIndexUnavailable):
		return ExitConnectionError
	case errors.Is(err, ErrValidationFailed):
		return ExitValidationFailed
	}

	return ExitGeneralError
}
