package core

import (
	"time"
)

// FileStampLayout is the layout used to suffix generated file names
const FileStampLayout = "20060102_150405"

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// FileStamp formats the timestamp for use in a file name
func (t Timestamp) FileStamp() string {
	return time.Time(t).Format(FileStampLayout)
}
