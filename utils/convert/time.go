package convert

import (
	"errors"
	"time"
)

// ISO-8601 layouts accepted for date filters, most specific first
var isoFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseISOTime parses an ISO-8601 date or date-time string.
// Values without an offset are read as UTC.
func ParseISOTime(str string) (time.Time, error) {
	for _, format := range isoFormats {
		if t, err := time.ParseInLocation(format, str, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("cannot parse string as ISO-8601 time: " + str)
}
