// Package mapping turns a directory of exported MODS documents into a flat
// import sheet. A declarative yaml configuration names the output fields and
// the XPath expressions or built-in extractors that populate them; the
// resource index supplies content models, collection membership, and the
// page and compound-part structure of paged works.
//
// Runs are deterministic: files are processed in sorted order and the output
// column order is the first-seen field order, so identical inputs produce
// byte-identical sheets.
package mapping
