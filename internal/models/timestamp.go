package models

import "time"

// TimeLayout is the fixed format used for every timestamp in the document
// and the audit log: day.month.year hour:minute, local zone.
const TimeLayout = "02.01.2006 15:04"

// Now returns the current local time in the document timestamp format.
func Now() string {
	return time.Now().Format(TimeLayout)
}

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses a document timestamp in the local zone. Malformed or
// foreign entries come back as an error and are handled policy-side.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeLayout, s, time.Local)
}
