// Package store persists the archive in SQLite.
//
// It is the only place identities are assigned: savers accept records with
// ID 0 as new and return them with identities filled in. Reference fetchers
// return the ordered lists edit sessions inject as choices and resolve names
// against. Every save runs in a single transaction.
package store
