package forum

import (
	"time"

	"github.com/araddon/dateparse"
)

const (
	// DisplayLayout renders e.g. "Friday, January 05, 2024, 14:30".
	DisplayLayout = "Monday, January 02, 2006, 15:04"

	InvalidDate = "Invalid Date"
)

type DateFormatter struct {
	location *time.Location
}

func NewDateFormatter(location *time.Location) *DateFormatter {
	if location == nil {
		location = time.UTC
	}
	return &DateFormatter{location: location}
}

func (f *DateFormatter) Location() *time.Location {
	return f.location
}

// Parse reads created_at leniently. Timestamps without a zone are taken to
// be in the display location.
func (f *DateFormatter) Parse(createdAt string) (time.Time, error) {
	t, err := dateparse.ParseIn(createdAt, f.location)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(f.location), nil
}

func (f *DateFormatter) Format(createdAt string) string {
	t, err := f.Parse(createdAt)
	if err != nil {
		return InvalidDate
	}
	return t.Format(DisplayLayout)
}
