// Package archive defines the records curated in the footage archive: master
// videos and their uploaded copies, news networks, affiliates and broadcasts,
// the people who appear in footage, and the NIST tape/video annotations.
//
// Records with ID 0 have not been persisted yet. Identities are assigned by
// the store package only; nothing here invents them.
package archive
