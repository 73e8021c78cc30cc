package nistcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"archivewit/internal/archive"
)

const (
	videoColumns = 7
	tapeColumns  = 11

	dateLayout = "01/02/06 15:04:05"
)

// ErrColumnCount is returned when a row has the wrong number of columns.
var ErrColumnCount = errors.New("wrong number of columns")

// RowError identifies the line of the export a conversion failed on.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadVideos parses the NIST video table.
func ReadVideos(r io.Reader) ([]archive.NistVideo, error) {
	var videos []archive.NistVideo
	err := readRows(r, videoColumns, func(record []string) error {
		v, err := videoFromRecord(record)
		if err != nil {
			return err
		}
		videos = append(videos, v)
		return nil
	})
	return videos, err
}

// ReadTapes parses the NIST tape table.
func ReadTapes(r io.Reader) ([]archive.NistTape, error) {
	var tapes []archive.NistTape
	err := readRows(r, tapeColumns, func(record []string) error {
		t, err := tapeFromRecord(record)
		if err != nil {
			return err
		}
		tapes = append(tapes, t)
		return nil
	})
	return tapes, err
}

// ReadVideosFile opens path and parses it with ReadVideos.
func ReadVideosFile(path string) ([]archive.NistVideo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nist video table: %w", err)
	}
	defer f.Close()
	return ReadVideos(f)
}

// ReadTapesFile opens path and parses it with ReadTapes.
func ReadTapesFile(path string) ([]archive.NistTape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open nist tape table: %w", err)
	}
	defer f.Close()
	return ReadTapes(f)
}

func readRows(r io.Reader, columns int, fn func([]string) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) != columns {
			return &RowError{Line: line, Err: fmt.Errorf("%w: expected %d, found %d", ErrColumnCount, columns, len(record))}
		}
		if err := fn(record); err != nil {
			return &RowError{Line: line, Err: err}
		}
	}
}

func videoFromRecord(record []string) (archive.NistVideo, error) {
	var (
		v   archive.NistVideo
		err error
	)
	if v.VideoID, err = parseInt64("video id", record[0]); err != nil {
		return v, err
	}
	v.Title = record[1]
	v.Network = record[2]
	if raw := strings.TrimSpace(record[3]); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return v, fmt.Errorf("broadcast date %q: %w", raw, err)
		}
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		v.BroadcastDate = &day
	}
	if v.DurationMin, err = parseInt("duration", record[4]); err != nil {
		return v, err
	}
	v.Subject = record[5]
	v.Notes = record[6]
	return v, nil
}

func tapeFromRecord(record []string) (archive.NistTape, error) {
	var (
		t   archive.NistTape
		err error
	)
	if t.TapeID, err = parseInt64("tape id", record[0]); err != nil {
		return t, err
	}
	if t.VideoID, err = parseInt64("video id", record[1]); err != nil {
		return t, err
	}
	t.Name = record[2]
	t.Source = record[3]
	if t.Copy, err = parseInt("copy", record[4]); err != nil {
		return t, err
	}
	// Originals have no parent tape and leave the column blank.
	if raw := strings.TrimSpace(record[5]); raw != "" {
		if t.DerivedFrom, err = parseInt64("derived from", raw); err != nil {
			return t, err
		}
	}
	t.Format = record[6]
	if t.DurationMin, err = parseInt("duration", record[7]); err != nil {
		return t, err
	}
	if t.Batch, err = parseFlag("batch", record[8]); err != nil {
		return t, err
	}
	if t.Clips, err = parseFlag("clips", record[9]); err != nil {
		return t, err
	}
	if t.Timecode, err = parseFlag("timecode", record[10]); err != nil {
		return t, err
	}
	return t, nil
}

func parseInt64(column, raw string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", column, raw, err)
	}
	return value, nil
}

func parseInt(column, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", column, raw, err)
	}
	return value, nil
}

func parseFlag(column, raw string) (bool, error) {
	value, err := parseInt(column, raw)
	if err != nil {
		return false, err
	}
	return value != 0, nil
}
