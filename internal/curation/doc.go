// Package curation runs edit sessions against the archive.
//
// A session renders a record as a text form, hands it to an editor, parses
// what comes back and saves the reconstructed record. New-record forms carry
// the list of valid reference values as a commented placeholder; forms for
// existing records do not. A cancelled session returns a nil record and a nil
// error, and nothing is saved when parsing or reference resolution fails.
package curation
