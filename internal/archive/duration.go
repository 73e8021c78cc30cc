package archive

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses "HH:MM:SS" with an optional fraction of at most three
// digits ("HH:MM:SS.250"). Durations are stored in milliseconds, so finer
// fractions are rejected rather than silently dropped.
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("duration %q: expected HH:MM:SS", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("duration %q: invalid hours", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("duration %q: invalid minutes", value)
	}
	secPart, fracPart, hasFrac := strings.Cut(parts[2], ".")
	seconds, err := strconv.Atoi(secPart)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("duration %q: invalid seconds", value)
	}
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if hasFrac {
		if fracPart == "" || len(fracPart) > 3 {
			return 0, fmt.Errorf("duration %q: invalid fraction", value)
		}
		frac, err := strconv.Atoi(fracPart)
		if err != nil || strings.Trim(fracPart, "0123456789") != "" {
			return 0, fmt.Errorf("duration %q: invalid fraction", value)
		}
		for i := len(fracPart); i < 3; i++ {
			frac *= 10
		}
		d += time.Duration(frac) * time.Millisecond
	}
	return d, nil
}

// FormatDuration renders d as "HH:MM:SS", appending milliseconds only when
// they are non-zero so ParseDuration reproduces the value.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int64(d / time.Hour)
	minutes := int64(d%time.Hour) / int64(time.Minute)
	seconds := int64(d%time.Minute) / int64(time.Second)
	s := fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	if millis := int64(d%time.Second) / int64(time.Millisecond); millis != 0 {
		s += fmt.Sprintf(".%03d", millis)
	}
	return s
}
