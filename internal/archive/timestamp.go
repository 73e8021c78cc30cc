package archive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// EventType tags what happens at a timestamp.
type EventType string

const (
	EventCameraSource   EventType = "camera-source"
	EventJumper         EventType = "jumper"
	EventKey            EventType = "key"
	EventNormal         EventType = "normal"
	EventPerson         EventType = "person"
	EventPentagonAttack EventType = "pentagon-attack"
	EventReport         EventType = "report"
	EventWTC1Collapse   EventType = "wtc1-collapse"
	EventWTC1Impact     EventType = "wtc1-impact"
	EventWTC2Collapse   EventType = "wtc2-collapse"
	EventWTC2Impact     EventType = "wtc2-impact"
)

var eventTypes = []EventType{
	EventCameraSource, EventJumper, EventKey, EventNormal, EventPerson,
	EventPentagonAttack, EventReport, EventWTC1Collapse, EventWTC1Impact,
	EventWTC2Collapse, EventWTC2Impact,
}

// ParseEventType maps a bracketed tag such as "wtc2-impact" to an EventType.
func ParseEventType(value string) (EventType, error) {
	key := folder.String(strings.TrimSpace(value))
	for _, t := range eventTypes {
		if string(t) == key {
			return t, nil
		}
	}
	return "", fmt.Errorf("%q is not a valid event type", value)
}

// TimeOfDay is the wall-clock time (local to the footage) an event occurred.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d%02d", t.Hour, t.Minute) }

// EventTimestamp marks an event at an offset into a master video.
type EventTimestamp struct {
	ID          int64
	Offset      time.Duration
	Description string
	TimeOfDay   *TimeOfDay
	EventType   EventType
}

var (
	timestampWithTimeOfDay = regexp.MustCompile(`^(?P<time>\d{2}:\d{2}:\d{2}): (?P<description>.+?) \[(?P<tod>\d{4})?\] \[(?P<event>[\w-]+)\]$`)
	timestampSimple        = regexp.MustCompile(`^(?P<time>\d{2}:\d{2}:\d{2}): (?P<description>.+?) \[(?P<event>[\w-]+)\]$`)
)

// ParseEventTimestamp parses a line such as
// "00:20:00: UA175 hits the South Tower. [0903] [wtc2-impact]". The
// time-of-day bracket is optional.
func ParseEventTimestamp(line string) (EventTimestamp, error) {
	line = strings.TrimSpace(line)
	re := timestampWithTimeOfDay
	match := re.FindStringSubmatch(line)
	if match == nil {
		re = timestampSimple
		match = re.FindStringSubmatch(line)
	}
	if match == nil {
		return EventTimestamp{}, fmt.Errorf("timestamp %q: expected \"HH:MM:SS: description [HHMM] [event-type]\"", line)
	}
	group := func(name string) string {
		return match[re.SubexpIndex(name)]
	}

	offset, err := ParseDuration(group("time"))
	if err != nil {
		return EventTimestamp{}, fmt.Errorf("timestamp %q: %w", line, err)
	}
	eventType, err := ParseEventType(group("event"))
	if err != nil {
		return EventTimestamp{}, fmt.Errorf("timestamp %q: %w", line, err)
	}

	ts := EventTimestamp{
		Offset:      offset,
		Description: strings.TrimSpace(group("description")),
		EventType:   eventType,
	}
	if re == timestampWithTimeOfDay {
		if tod := group("tod"); tod != "" {
			hour, _ := strconv.Atoi(tod[:2])
			minute, _ := strconv.Atoi(tod[2:])
			if hour > 23 || minute > 59 {
				return EventTimestamp{}, fmt.Errorf("timestamp %q: invalid time of day %s", line, tod)
			}
			ts.TimeOfDay = &TimeOfDay{Hour: hour, Minute: minute}
		}
	}
	return ts, nil
}

func (e EventTimestamp) String() string {
	var b strings.Builder
	b.WriteString(FormatDuration(e.Offset))
	b.WriteString(": ")
	b.WriteString(e.Description)
	if e.TimeOfDay != nil {
		fmt.Fprintf(&b, " [%s]", e.TimeOfDay)
	}
	fmt.Fprintf(&b, " [%s]", e.EventType)
	return b.String()
}
