package editing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"archivewit/internal/archive"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse(archive.DateLayout, value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return &d
}

func sampleBroadcasts(t *testing.T) []archive.NewsBroadcast {
	cnn := archive.NewsNetwork{ID: 1, Name: "CNN"}
	abc := archive.NewsNetwork{ID: 2, Name: "ABC"}
	wabc := archive.NewsAffiliate{ID: 1, Name: "WABC-TV", Region: "New York", Network: abc}
	return []archive.NewsBroadcast{
		{ID: 1, Date: date(t, "2001-09-11"), Network: &cnn},
		{ID: 2, Date: date(t, "2001-09-11"), Affiliate: &wabc},
	}
}

func TestMasterVideoSchemaLayout(t *testing.T) {
	if len(MasterVideoSchema) != 17 {
		t.Fatalf("master video form has %d sections, want 17", len(MasterVideoSchema))
	}
	if MasterVideoSchema[0].Name != "News Broadcasts" || MasterVideoSchema[16].Name != "NIST Files" {
		t.Fatalf("unexpected first/last sections: %v", MasterVideoSchema)
	}
}

func TestMasterVideoEmptyFormWithChoices(t *testing.T) {
	form := NewMasterVideoForm(archive.MasterVideo{})
	labels := make([]string, 0)
	for _, b := range sampleBroadcasts(t) {
		labels = append(labels, b.String())
	}
	if err := form.AddChoices("News Broadcasts", labels); err != nil {
		t.Fatalf("AddChoices: %v", err)
	}
	want := strings.TrimSpace(readFixture(t, "master_form_empty.txt"))
	if diff := cmp.Diff(want, form.String()); diff != "" {
		t.Fatalf("empty form mismatch (-want +got):\n%s", diff)
	}
}

func TestMasterVideoCompletedForm(t *testing.T) {
	people := []archive.Person{
		{ID: 7, Name: "Bill Ritter", HistoricalTitle: "WABC-TV anchor", Types: []archive.PersonType{archive.PersonReporter}},
	}
	m, err := ParseMasterVideo(0, readFixture(t, "master_form_completed.txt"), sampleBroadcasts(t), people)
	if err != nil {
		t.Fatalf("ParseMasterVideo: %v", err)
	}

	if m.Title != "WABC-TV/ABC7: 9/11 Broadcast [0842 – 1042]" {
		t.Fatalf("Title = %q", m.Title)
	}
	if len(m.NewsBroadcasts) != 1 || m.NewsBroadcasts[0].ID != 2 {
		t.Fatalf("NewsBroadcasts = %+v, want the WABC-TV broadcast", m.NewsBroadcasts)
	}
	if len(m.Timestamps) != 6 {
		t.Fatalf("got %d timestamps, want 6", len(m.Timestamps))
	}
	if m.Timestamps[5].TimeOfDay != nil || m.Timestamps[5].EventType != archive.EventCameraSource {
		t.Fatalf("last timestamp = %+v", m.Timestamps[5])
	}
	if len(m.NistFiles) != 2 || m.NistFiles[1].Path != "42A0039 - G14D6/WABC-TV Part 2.avi" || m.NistFiles[1].Size != 0 {
		t.Fatalf("NistFiles = %+v", m.NistFiles)
	}

	wantPeople := []archive.Person{
		{Name: "Jane Smith", Types: []archive.PersonType{archive.PersonEyewitness, archive.PersonReporter}},
		{Name: "Joe Blake", Types: []archive.PersonType{archive.PersonPolice}},
		{ID: 7, Name: "Bill Ritter", HistoricalTitle: "WABC-TV anchor", Types: []archive.PersonType{archive.PersonReporter}},
		{Name: "Diana Williams", Types: []archive.PersonType{archive.PersonReporter}},
	}
	if diff := cmp.Diff(wantPeople, m.People); diff != "" {
		t.Fatalf("People mismatch (-want +got):\n%s", diff)
	}
}

func TestMasterVideoRoundTrip(t *testing.T) {
	broadcasts := sampleBroadcasts(t)
	fixture := strings.TrimSpace(readFixture(t, "master_form_completed.txt"))
	m, err := ParseMasterVideo(12, fixture, broadcasts, nil)
	if err != nil {
		t.Fatalf("ParseMasterVideo: %v", err)
	}
	rendered := NewMasterVideoForm(m).String()
	if diff := cmp.Diff(fixture, rendered); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}

	again, err := ParseMasterVideo(12, rendered, broadcasts, m.People)
	if err != nil {
		t.Fatalf("ParseMasterVideo (second pass): %v", err)
	}
	if diff := cmp.Diff(m, again, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMasterVideoRoundTripFromRecord(t *testing.T) {
	broadcasts := sampleBroadcasts(t)
	m := archive.MasterVideo{
		ID:             3,
		Title:          "Sample",
		Date:           date(t, "2001-09-11"),
		Description:    "Some text",
		Categories:     []archive.Category{archive.CategoryAmateurFootage, archive.CategorySurvivorAccount},
		Links:          []string{"https://example.com/a"},
		Timestamps:     []archive.EventTimestamp{{Offset: 90 * time.Second, Description: "Smoke visible.", EventType: archive.EventNormal}},
		NistNotes:      "Dubbed copy.",
		NewsBroadcasts: broadcasts[:1],
		People: []archive.Person{
			{ID: 4, Name: "Alice", Types: []archive.PersonType{archive.PersonFire, archive.PersonReporter}},
		},
		NistFiles: []archive.ReleaseFile{{Path: "release/a.avi"}},
	}
	got, err := ParseMasterVideo(3, NewMasterVideoForm(m).String(), broadcasts, m.People)
	if err != nil {
		t.Fatalf("ParseMasterVideo: %v", err)
	}
	if diff := cmp.Diff(m, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestMasterVideoRequiredFields(t *testing.T) {
	_, err := ParseMasterVideo(0, readFixture(t, "master_form_with_empty_required.txt"), nil, nil)
	if !errors.Is(err, ErrRequiredFieldEmpty) {
		t.Fatalf("err = %v, want ErrRequiredFieldEmpty", err)
	}
	var formErr *FormError
	if !errors.As(err, &formErr) || formErr.Field != "Categories" {
		t.Fatalf("err = %v, want the Categories field", err)
	}
}

func TestMasterVideoConcreteScenario(t *testing.T) {
	sections := []string{
		"News Broadcasts: WABC-TV (2001-09-11)",
		"Title: Sample",
		"Categories: news",
		"Date: 2001-09-11",
		"Description:\nSome text",
		"Links:",
		"Timestamps:",
		"NIST Notes:",
		"Eyewitnesses:",
		"Fire:",
		"Police:",
		"Port Authority:",
		"Reporters: Jane Doe",
		"Survivors:",
		"Victims:",
		"Videographers:",
		"NIST Files:",
	}
	m, err := ParseMasterVideo(0, strings.Join(sections, "\n---\n"), sampleBroadcasts(t), nil)
	if err != nil {
		t.Fatalf("ParseMasterVideo: %v", err)
	}
	if len(m.NewsBroadcasts) != 1 || m.NewsBroadcasts[0].String() != "WABC-TV (2001-09-11)" {
		t.Fatalf("NewsBroadcasts = %+v", m.NewsBroadcasts)
	}
	if diff := cmp.Diff([]archive.Category{archive.CategoryNews}, m.Categories); diff != "" {
		t.Fatalf("Categories mismatch (-want +got):\n%s", diff)
	}
	want := []archive.Person{{Name: "Jane Doe", Types: []archive.PersonType{archive.PersonReporter}}}
	if diff := cmp.Diff(want, m.People); diff != "" {
		t.Fatalf("People mismatch (-want +got):\n%s", diff)
	}
	if len(m.Links) != 0 || len(m.Timestamps) != 0 || m.NistNotes != "" || len(m.NistFiles) != 0 {
		t.Fatalf("expected empty optional collections, got %+v", m)
	}
}

func TestMasterVideoPersonMerge(t *testing.T) {
	form := NewMasterVideoForm(archive.MasterVideo{Title: "Sample", Description: "x", Categories: []archive.Category{archive.CategoryNews}})
	form.Add(NewOptionalList("Fire", []string{"Alice"}))
	form.Add(NewOptionalList("Reporters", []string{"Alice"}))

	m, err := MasterVideoFromForm(0, form, nil, nil)
	if err != nil {
		t.Fatalf("MasterVideoFromForm: %v", err)
	}
	want := []archive.Person{{Name: "Alice", Types: []archive.PersonType{archive.PersonFire, archive.PersonReporter}}}
	if diff := cmp.Diff(want, m.People); diff != "" {
		t.Fatalf("People mismatch (-want +got):\n%s", diff)
	}
}

func TestMasterVideoUnknownBroadcast(t *testing.T) {
	form := NewMasterVideoForm(archive.MasterVideo{
		Title:       "Sample",
		Description: "x",
		Categories:  []archive.Category{archive.CategoryNews},
	})
	form.Add(NewChoiceList("News Broadcasts", []string{"WABC (2001-09-11)"}))

	_, err := MasterVideoFromForm(0, form, sampleBroadcasts(t), nil)
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("err = %v, want *ReferenceError", err)
	}
	if refErr.List != ListNewsBroadcasts || refErr.Suggestion != "WABC-TV (2001-09-11)" {
		t.Fatalf("ReferenceError = %+v", refErr)
	}
	if !errors.Is(err, ErrNotInList) || ErrorKindOf(err) != KindReference {
		t.Fatalf("err = %v does not classify as a reference error", err)
	}
}

func TestMasterVideoAmbiguousBroadcast(t *testing.T) {
	broadcasts := sampleBroadcasts(t)
	second := broadcasts[1]
	second.ID = 3
	second.Description = "Second recording of the same feed"
	broadcasts = append(broadcasts, second)

	form := NewMasterVideoForm(archive.MasterVideo{
		Title:          "Sample",
		Description:    "x",
		Categories:     []archive.Category{archive.CategoryNews},
		NewsBroadcasts: []archive.NewsBroadcast{second},
	})

	_, err := MasterVideoFromForm(0, form, broadcasts, nil)
	var ambiguous *AmbiguousReferenceError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("err = %v, want *AmbiguousReferenceError", err)
	}
	if ambiguous.Value != "WABC-TV (2001-09-11)" || ambiguous.Matches != 2 || ambiguous.List != ListNewsBroadcasts {
		t.Fatalf("AmbiguousReferenceError = %+v", ambiguous)
	}
	if !errors.Is(err, ErrAmbiguousReference) || ErrorKindOf(err) != KindReference {
		t.Fatalf("err = %v does not classify as a reference error", err)
	}
}

func TestMasterVideoInvalidValues(t *testing.T) {
	base := archive.MasterVideo{Title: "Sample", Description: "x", Categories: []archive.Category{archive.CategoryNews}}
	tests := []struct {
		field string
		value Field
	}{
		{"Categories", NewList("Categories", []string{"cartoon"})},
		{"Date", NewOptionalText("Date", "11/09/2001")},
		{"Timestamps", NewOptionalMultilineList("Timestamps", []string{"not a timestamp"})},
	}
	for _, tc := range tests {
		form := NewMasterVideoForm(base)
		form.Add(tc.value)
		_, err := MasterVideoFromForm(0, form, nil, nil)
		if !errors.Is(err, ErrInvalidValue) {
			t.Fatalf("%s: err = %v, want ErrInvalidValue", tc.field, err)
		}
		var formErr *FormError
		if !errors.As(err, &formErr) || formErr.Field != tc.field {
			t.Fatalf("%s: err = %v names the wrong field", tc.field, err)
		}
	}
}
