// Package logging assembles the structured slog loggers used by archivewit.
//
// It owns the configurable console/JSON handlers and the level and output
// plumbing, and defines the attribute keys edit sessions tag their lines with.
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
