// Package editing renders archive records as plain-text forms and rebuilds
// records from forms a user has edited.
//
// A form is an ordered list of labelled fields joined by a "---" delimiter
// line. Each field has a Kind that fixes how it renders, how it parses and
// whether it may be left blank. Entity codecs in this package map each record
// type onto a fixed field layout (its Schema) and back, resolving free-text
// references such as broadcast labels and people names against reference data
// supplied by the caller.
//
// Parsing is all-or-nothing: any structural, validation or reference error is
// returned before a record is built, so callers never see a partial record.
package editing
