package editing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"archivewit/internal/archive"
)

func sampleMasters() []archive.MasterVideo {
	return []archive.MasterVideo{
		{ID: 1, Title: "CNN: Live Coverage"},
		{ID: 2, Title: "WABC-TV/ABC7: 9/11 Broadcast [0842 – 1042]"},
	}
}

func TestVideoEmptyFormWithChoices(t *testing.T) {
	form := NewVideoDraftForm(archive.Video{})
	titles := []string{}
	for _, m := range sampleMasters() {
		titles = append(titles, m.Title)
	}
	if err := form.AddChoices("Master", titles); err != nil {
		t.Fatalf("AddChoices: %v", err)
	}
	if diff := cmp.Diff(readFixture(t, "video_form_empty.txt"), form.String()); diff != "" {
		t.Fatalf("empty form mismatch (-want +got):\n%s", diff)
	}
}

func TestVideoRoundTrip(t *testing.T) {
	masters := sampleMasters()
	v := archive.Video{
		ID:          9,
		Master:      masters[1],
		Title:       "9/11 WABC-TV Part 1",
		Channel:     "911archive",
		Description: "Uploaded from the NIST release.\nPart one of four.",
		Link:        "https://www.youtube.com/watch?v=abc123",
		Duration:    time.Hour + 2*time.Minute + 3*time.Second + 250*time.Millisecond,
		IsPrimary:   true,
	}
	text := NewVideoForm(v).String()
	if !strings.Contains(text, "Duration: 01:02:03.250") {
		t.Fatalf("rendered form missing duration:\n%s", text)
	}
	if !strings.Contains(text, "Link: https://www.youtube.com/watch?v=abc123") {
		t.Fatalf("rendered form missing link:\n%s", text)
	}
	got, err := ParseVideo(9, text, masters)
	if err != nil {
		t.Fatalf("ParseVideo: %v", err)
	}
	if diff := cmp.Diff(v, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVideoZeroDurationRoundTrips(t *testing.T) {
	masters := sampleMasters()
	v := archive.Video{
		ID:      3,
		Master:  masters[0],
		Title:   "Still frame",
		Channel: "911archive",
		Link:    "https://example.com/still",
	}
	text := NewVideoForm(v).String()
	if !strings.Contains(text, "Duration: 00:00:00") {
		t.Fatalf("rendered form missing zero duration:\n%s", text)
	}
	got, err := ParseVideo(3, text, masters)
	if err != nil {
		t.Fatalf("ParseVideo: %v", err)
	}
	if diff := cmp.Diff(v, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVideoDraftFormBlanksUnknownDuration(t *testing.T) {
	blank := NewVideoDraftForm(archive.Video{})
	if d, err := blank.Text("Duration"); err != nil || d != "" {
		t.Fatalf("draft duration = %q, %v; want blank", d, err)
	}
	known := NewVideoDraftForm(archive.Video{Duration: 90 * time.Second})
	if d, err := known.Text("Duration"); err != nil || d != "00:01:30" {
		t.Fatalf("draft duration = %q, %v; want 00:01:30", d, err)
	}
	if len(blank.Schema()) != len(VideoSchema) {
		t.Fatalf("draft form has %d sections, want %d", len(blank.Schema()), len(VideoSchema))
	}
}

func TestVideoSectionCount(t *testing.T) {
	if len(VideoSchema) != 7 {
		t.Fatalf("video form has %d sections, want 7", len(VideoSchema))
	}
	text := NewVideoForm(archive.Video{Title: "x"}).String()
	text = text[:strings.LastIndex(text, Delimiter)]
	if _, err := ParseVideo(0, text, sampleMasters()); !errors.Is(err, ErrMalformedForm) {
		t.Fatalf("err = %v, want ErrMalformedForm", err)
	}
}

func TestVideoUnknownMaster(t *testing.T) {
	v := archive.Video{
		Master:   archive.MasterVideo{Title: "Unknown Master"},
		Title:    "x",
		Channel:  "y",
		Link:     "https://example.com",
		Duration: time.Minute,
	}
	_, err := ParseVideo(0, NewVideoForm(v).String(), sampleMasters())
	var refErr *ReferenceError
	if !errors.As(err, &refErr) || refErr.List != ListMasterVideos || refErr.Value != "Unknown Master" {
		t.Fatalf("err = %v, want a master videos reference error", err)
	}
}

func TestVideoInvalidDuration(t *testing.T) {
	form := NewVideoForm(archive.Video{Master: sampleMasters()[0], Title: "x", Channel: "y", Link: "z"})
	form.Add(NewText("Duration", "ninety minutes"))
	if _, err := VideoFromForm(0, form, sampleMasters()); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("err = %v, want ErrInvalidValue", err)
	}
}
