package models

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ist is the timezone every program date is interpreted in.
func ist() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800) // Fallback: UTC+5:30
	}
	return loc
}

// FlexibleDate accepts several date formats from the frontend
type FlexibleDate struct {
	time.Time
}

// UnmarshalJSON accepts plain dates as well as full timestamps
func (fd *FlexibleDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		fd.Time = time.Time{}
		return nil
	}

	// All formats are parsed in Indian time regardless of what the
	// frontend sends
	formats := []string{
		"2006-01-02",          // "2025-06-30"
		"2006-01-02T15:04:05", // "2025-06-30T18:00:00"
		"2006-01-02T15:04",    // "2025-06-30T18:00"
		time.RFC3339,          // "2025-06-30T18:00:00Z" (the Z is ignored)
		time.RFC3339Nano,
	}

	loc := ist()
	for _, layout := range formats {
		parsedTime, parseErr := time.ParseInLocation(layout, s, loc)
		if parseErr == nil {
			fd.Time = parsedTime
			return nil
		}
	}

	return fmt.Errorf("invalid date format: %s", s)
}

// MarshalJSON returns the date in Indian time as a plain date string
func (fd FlexibleDate) MarshalJSON() ([]byte, error) {
	if fd.Time.IsZero() {
		return []byte("null"), nil
	}

	// MongoDB stores dates in UTC, so convert back to IST
	return []byte("\"" + fd.Time.In(ist()).Format("2006-01-02") + "\""), nil
}

// MarshalBSONValue tells MongoDB to store FlexibleDate as a date (not a document)
func (fd *FlexibleDate) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if fd == nil || fd.Time.IsZero() {
		return bsontype.Null, nil, nil
	}

	// Milliseconds since Unix epoch, little-endian (MongoDB wire format)
	timestampMs := fd.Time.UnixMilli()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(timestampMs))

	return bsontype.DateTime, buf, nil
}

// UnmarshalBSONValue lets the MongoDB driver decode a date into FlexibleDate
func (fd *FlexibleDate) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.DateTime {
		if len(data) < 8 {
			return fmt.Errorf("invalid DateTime data: need 8 bytes, got %d", len(data))
		}

		timestampMs := int64(binary.LittleEndian.Uint64(data[:8]))
		seconds := timestampMs / 1000
		nanos := (timestampMs % 1000) * 1000000

		fd.Time = time.Unix(seconds, nanos)
		return nil
	}

	if t == bsontype.Null {
		fd.Time = time.Time{}
		return nil
	}

	return fmt.Errorf("cannot decode %v into FlexibleDate (expected DateTime)", t)
}

// EndOfDay returns the last instant of the date in Indian time.
// Used for inclusive registration deadlines.
func (fd FlexibleDate) EndOfDay() time.Time {
	if fd.Time.IsZero() {
		return time.Time{}
	}
	d := fd.Time.In(ist())
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, ist())
}

// StartOfDayIST returns midnight of the given instant's day in Indian time.
// Deadline sweeps compare against this so a date-only deadline, stored as
// midnight of its day, stays valid through the whole day.
func StartOfDayIST(t time.Time) time.Time {
	d := t.In(ist())
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, ist())
}
