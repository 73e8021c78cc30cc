package editing

import (
	"fmt"
	"time"

	"archivewit/internal/archive"
)

// Reference list names used in resolution errors.
const (
	ListNewsBroadcasts = "news broadcasts"
	ListMasterVideos   = "master videos"
	ListNetworks       = "networks"
	ListAffiliates     = "affiliates"
)

// NewMasterVideoForm lays out a master video for editing. People are
// partitioned into one list per role.
func NewMasterVideoForm(m archive.MasterVideo) *Form {
	broadcasts := make([]string, len(m.NewsBroadcasts))
	for i, b := range m.NewsBroadcasts {
		broadcasts[i] = b.String()
	}
	categories := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		categories[i] = c.String()
	}
	timestamps := make([]string, len(m.Timestamps))
	for i, ts := range m.Timestamps {
		timestamps[i] = ts.String()
	}
	nistFiles := make([]string, len(m.NistFiles))
	for i, f := range m.NistFiles {
		nistFiles[i] = f.Path
	}

	form := NewForm(
		NewChoiceList("News Broadcasts", broadcasts),
		NewText("Title", m.Title),
		NewList("Categories", categories),
		NewOptionalText("Date", formatDate(m.Date)),
		NewMultilineText("Description", m.Description),
		NewOptionalList("Links", m.Links),
		NewOptionalMultilineList("Timestamps", timestamps),
		NewOptionalMultilineText("NIST Notes", m.NistNotes),
	)
	for _, role := range roleFields {
		form.Add(NewOptionalList(role.Field, m.PeopleWithType(role.Type)))
	}
	form.Add(NewOptionalMultilineList("NIST Files", nistFiles))
	return form
}

// MasterVideoSchema is the layout of a master video form.
var MasterVideoSchema = NewMasterVideoForm(archive.MasterVideo{}).Schema()

// MasterVideoFromForm rebuilds a master video from a parsed form. Broadcasts
// must name exactly one entry of broadcasts by its display string; people are matched
// by exact name against people and otherwise treated as new.
func MasterVideoFromForm(id int64, form *Form, broadcasts []archive.NewsBroadcast, people []archive.Person) (archive.MasterVideo, error) {
	m := archive.MasterVideo{ID: id}

	selected, err := form.List("News Broadcasts")
	if err != nil {
		return archive.MasterVideo{}, err
	}
	labels := make([]string, len(broadcasts))
	for i, b := range broadcasts {
		labels[i] = b.String()
	}
	for _, label := range selected {
		match := -1
		matches := 0
		for i, candidate := range labels {
			if candidate == label {
				if match < 0 {
					match = i
				}
				matches++
			}
		}
		switch matches {
		case 0:
			return archive.MasterVideo{}, notInList(label, ListNewsBroadcasts, labels)
		case 1:
			m.NewsBroadcasts = append(m.NewsBroadcasts, broadcasts[match])
		default:
			return archive.MasterVideo{}, &AmbiguousReferenceError{Value: label, List: ListNewsBroadcasts, Matches: matches}
		}
	}

	if m.Title, err = form.Text("Title"); err != nil {
		return archive.MasterVideo{}, err
	}

	categories, err := form.List("Categories")
	if err != nil {
		return archive.MasterVideo{}, err
	}
	for _, value := range categories {
		category, err := archive.ParseCategory(value)
		if err != nil {
			return archive.MasterVideo{}, invalidValue("Categories", err)
		}
		m.Categories = append(m.Categories, category)
	}

	date, err := form.Text("Date")
	if err != nil {
		return archive.MasterVideo{}, err
	}
	if m.Date, err = parseDate("Date", date); err != nil {
		return archive.MasterVideo{}, err
	}

	if m.Description, err = form.Text("Description"); err != nil {
		return archive.MasterVideo{}, err
	}
	if m.Links, err = form.List("Links"); err != nil {
		return archive.MasterVideo{}, err
	}

	timestamps, err := form.List("Timestamps")
	if err != nil {
		return archive.MasterVideo{}, err
	}
	for _, line := range timestamps {
		ts, err := archive.ParseEventTimestamp(line)
		if err != nil {
			return archive.MasterVideo{}, invalidValue("Timestamps", err)
		}
		m.Timestamps = append(m.Timestamps, ts)
	}

	if m.NistNotes, err = form.Text("NIST Notes"); err != nil {
		return archive.MasterVideo{}, err
	}
	if m.People, err = peopleFromForm(form, people); err != nil {
		return archive.MasterVideo{}, err
	}
	if m.NistFiles, err = releaseFiles(form, "NIST Files"); err != nil {
		return archive.MasterVideo{}, err
	}
	return m, nil
}

// ParseMasterVideo parses an edited master video document and rebuilds the
// record in one step.
func ParseMasterVideo(id int64, text string, broadcasts []archive.NewsBroadcast, people []archive.Person) (archive.MasterVideo, error) {
	form, err := MasterVideoSchema.Parse(text)
	if err != nil {
		return archive.MasterVideo{}, err
	}
	return MasterVideoFromForm(id, form, broadcasts, people)
}

func releaseFiles(form *Form, field string) ([]archive.ReleaseFile, error) {
	paths, err := form.List(field)
	if err != nil {
		return nil, err
	}
	var files []archive.ReleaseFile
	for _, path := range paths {
		files = append(files, archive.ReleaseFile{Path: path})
	}
	return files, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(archive.DateLayout)
}

// parseDate reads an optional YYYY-MM-DD value.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(archive.DateLayout, value)
	if err != nil {
		return nil, invalidValue(field, fmt.Errorf("expected YYYY-MM-DD, got %q", value))
	}
	return &t, nil
}
