package archive

import (
	"fmt"
	"time"
)

// DateLayout is the canonical rendering of calendar dates in forms and labels.
const DateLayout = "2006-01-02"

// ReleaseFile is a file from one of the NIST FOIA releases. Size is 0 until the
// store resolves the path against its catalog.
type ReleaseFile struct {
	ID   int64
	Path string
	Size int64
}

// NewsNetwork is a national broadcaster such as "ABC News".
type NewsNetwork struct {
	ID          int64
	Name        string
	Description string
}

// NewsAffiliate is a regional station belonging to a network.
type NewsAffiliate struct {
	ID          int64
	Name        string
	Description string
	Region      string
	Network     NewsNetwork
}

// NewsBroadcast is one day of coverage from either a network or an affiliate.
type NewsBroadcast struct {
	ID          int64
	Date        *time.Time
	Description string
	Network     *NewsNetwork
	Affiliate   *NewsAffiliate
}

// String renders the label used to pick broadcasts in forms, e.g.
// "WABC-TV (2001-09-11)".
func (b NewsBroadcast) String() string {
	var title string
	switch {
	case b.Network != nil:
		title = b.Network.Name
	case b.Affiliate != nil:
		title = b.Affiliate.Name
	}
	if b.Date != nil {
		title += fmt.Sprintf(" (%s)", b.Date.Format(DateLayout))
	}
	return title
}

// Source returns the network or affiliate name carrying the broadcast.
func (b NewsBroadcast) Source() string {
	switch {
	case b.Network != nil:
		return b.Network.Name
	case b.Affiliate != nil:
		return b.Affiliate.Name
	default:
		return ""
	}
}

// MasterVideo is the canonical record for a piece of footage. Uploaded copies
// are Videos pointing back at it.
type MasterVideo struct {
	ID             int64
	Title          string
	Date           *time.Time
	Description    string
	Categories     []Category
	Links          []string
	Timestamps     []EventTimestamp
	NistNotes      string
	People         []Person
	NewsBroadcasts []NewsBroadcast
	NistFiles      []ReleaseFile
}

// PeopleWithType returns the names of people tagged with the given type, in
// record order.
func (m MasterVideo) PeopleWithType(t PersonType) []string {
	var names []string
	for _, p := range m.People {
		if p.HasType(t) {
			names = append(names, p.Name)
		}
	}
	return names
}

// Video is an uploaded copy of a master video.
type Video struct {
	ID          int64
	Master      MasterVideo
	Title       string
	Channel     string
	Description string
	Link        string
	Duration    time.Duration
	IsPrimary   bool
}

// NistVideo is a row of the NIST video table with the archive's own
// annotations (IsMissing, AdditionalNotes).
type NistVideo struct {
	VideoID         int64
	Title           string
	Network         string
	BroadcastDate   *time.Time
	DurationMin     int
	Subject         string
	Notes           string
	IsMissing       bool
	AdditionalNotes string
}

// NistTape is a row of the NIST tape table plus the release files the archive
// has matched to it.
type NistTape struct {
	TapeID       int64
	VideoID      int64
	Name         string
	Source       string
	Copy         int
	DerivedFrom  int64
	Format       string
	DurationMin  int
	Batch        bool
	Clips        bool
	Timecode     bool
	ReleaseFiles []ReleaseFile
}
