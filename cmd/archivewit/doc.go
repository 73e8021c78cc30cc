// Package main hosts the archivewit CLI entrypoint and command graph.
//
// The Cobra-based command tree opens the archive database, takes the edit
// session lock and hands records to the curation service, which round-trips
// them through the configured text editor. Listing commands render tables;
// print commands render the same text form an edit would open.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
