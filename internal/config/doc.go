// Package config loads, normalizes, and validates archivewit configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ARCHIVEWIT_DB. Commands obtain the database location, log settings and
// editor command from the Config type instead of reading the environment
// themselves.
package config
