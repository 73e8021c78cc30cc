package editing

import (
	"archivewit/internal/archive"
)

// NewVideoForm lays out a video for editing.
func NewVideoForm(v archive.Video) *Form {
	return NewForm(
		NewChoice("Master", v.Master.Title),
		NewText("Title", v.Title),
		NewText("Channel", v.Channel),
		NewOptionalMultilineText("Description", v.Description),
		NewText("Link", v.Link),
		NewText("Duration", archive.FormatDuration(v.Duration)),
		NewBool("Primary", v.IsPrimary),
	)
}

// NewVideoDraftForm lays out a video that has not been saved yet. An unknown
// (zero) duration is left blank for the user to fill in.
func NewVideoDraftForm(v archive.Video) *Form {
	form := NewVideoForm(v)
	if v.Duration == 0 {
		form.Add(NewText("Duration", ""))
	}
	return form
}

// VideoSchema is the layout of a video form.
var VideoSchema = NewVideoForm(archive.Video{}).Schema()

// VideoFromForm rebuilds a video from a parsed form, resolving the master by
// title.
func VideoFromForm(id int64, form *Form, masters []archive.MasterVideo) (archive.Video, error) {
	v := archive.Video{ID: id}

	title, err := form.Text("Master")
	if err != nil {
		return archive.Video{}, err
	}
	titles := make([]string, len(masters))
	found := false
	for i, m := range masters {
		titles[i] = m.Title
		if !found && m.Title == title {
			v.Master = m
			found = true
		}
	}
	if !found {
		return archive.Video{}, notInList(title, ListMasterVideos, titles)
	}

	if v.Title, err = form.Text("Title"); err != nil {
		return archive.Video{}, err
	}
	if v.Channel, err = form.Text("Channel"); err != nil {
		return archive.Video{}, err
	}
	if v.Description, err = form.Text("Description"); err != nil {
		return archive.Video{}, err
	}
	if v.Link, err = form.Text("Link"); err != nil {
		return archive.Video{}, err
	}
	duration, err := form.Text("Duration")
	if err != nil {
		return archive.Video{}, err
	}
	if v.Duration, err = archive.ParseDuration(duration); err != nil {
		return archive.Video{}, invalidValue("Duration", err)
	}
	if v.IsPrimary, err = form.Bool("Primary"); err != nil {
		return archive.Video{}, err
	}
	return v, nil
}

// ParseVideo parses an edited video document and rebuilds the record.
func ParseVideo(id int64, text string, masters []archive.MasterVideo) (archive.Video, error) {
	form, err := VideoSchema.Parse(text)
	if err != nil {
		return archive.Video{}, err
	}
	return VideoFromForm(id, form, masters)
}
