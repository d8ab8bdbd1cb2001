package repository

import (
	"fmt"
	"time"
)

// timeFormats are the accepted date/time layouts, tried in order:
// plain dates, SQLite's CURRENT_TIMESTAMP output, then RFC3339.
var timeFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseTime parses a date string in one of the accepted layouts.
// Note: mirrors validation.ParseTime, which is intentionally kept local to avoid cross-layer imports.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeFormats {
		if parsed, err := time.Parse(layout, str); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date: unrecognized format %q", str)
}
