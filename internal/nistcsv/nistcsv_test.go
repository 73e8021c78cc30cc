package nistcsv

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"archivewit/internal/archive"
)

func TestReadVideosFile(t *testing.T) {
	videos, err := ReadVideosFile(filepath.Join("testdata", "videos.csv"))
	if err != nil {
		t.Fatalf("ReadVideosFile: %v", err)
	}
	if len(videos) != 3 {
		t.Fatalf("expected 3 videos, got %d", len(videos))
	}
	first := videos[0]
	if first.VideoID != 1 || first.Title != "CNN Live Coverage" || first.DurationMin != 480 {
		t.Fatalf("unexpected first video %+v", first)
	}
	if first.BroadcastDate == nil || first.BroadcastDate.Format(archive.DateLayout) != "2001-09-11" {
		t.Fatalf("unexpected broadcast date %v", first.BroadcastDate)
	}
	if videos[1].Title != "WABC-TV, Eyewitness News" || videos[1].Notes != "Tape 2 of 3" {
		t.Fatalf("quoted columns not preserved: %+v", videos[1])
	}
	if videos[2].BroadcastDate != nil {
		t.Fatalf("expected blank date to stay nil, got %v", videos[2].BroadcastDate)
	}
}

func TestReadTapesFile(t *testing.T) {
	tapes, err := ReadTapesFile(filepath.Join("testdata", "tapes.csv"))
	if err != nil {
		t.Fatalf("ReadTapesFile: %v", err)
	}
	want := []archive.NistTape{
		{TapeID: 10, VideoID: 1, Name: "CNN 0900-1000", Source: "CNN", Format: "Beta SP", DurationMin: 60, Batch: true, Timecode: true},
		{TapeID: 11, VideoID: 1, Name: "CNN 0900-1000 dub", Source: "CNN", Copy: 1, DerivedFrom: 10, Format: "VHS", DurationMin: 60},
	}
	if diff := cmp.Diff(want, tapes); diff != "" {
		t.Fatalf("tapes mismatch (-want +got):\n%s", diff)
	}
}

func TestReadVideosRejectsWrongColumnCount(t *testing.T) {
	input := "header\n1,Title,CNN\n"
	_, err := ReadVideos(strings.NewReader(input))
	if !errors.Is(err, ErrColumnCount) {
		t.Fatalf("expected ErrColumnCount, got %v", err)
	}
	var rowErr *RowError
	if !errors.As(err, &rowErr) || rowErr.Line != 2 {
		t.Fatalf("expected row error on line 2, got %v", err)
	}
}

func TestReadTapesRejectsBadFlag(t *testing.T) {
	input := "header\n10,1,Name,CNN,0,,VHS,60,yes,0,0\n"
	_, err := ReadTapes(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "batch") {
		t.Fatalf("expected batch column error, got %v", err)
	}
}

func TestReadVideosRejectsBadDate(t *testing.T) {
	input := "header\n1,Title,CNN,2001-09-11,60,,\n"
	if _, err := ReadVideos(strings.NewReader(input)); err == nil {
		t.Fatal("expected date error")
	}
}

func TestReadEmptyInput(t *testing.T) {
	videos, err := ReadVideos(strings.NewReader(""))
	if err != nil || len(videos) != 0 {
		t.Fatalf("expected no videos and no error, got %v %v", videos, err)
	}
}
