// Package mods extracts flat output properties from MODS XML documents.
//
// Each extractor is a pure function of one parsed document plus fixed lookup
// tables. Extractors never raise on malformed optional structure; they fall
// back to documented defaults and keep going, so one odd record cannot take
// down a whole migration run. The only hard failure is an unparseable
// document, which callers see before any extractor runs.
//
// Named extractors are dispatched through a closed table keyed by
// ExtractorKind; mapping configurations reference them by name.
package mods
