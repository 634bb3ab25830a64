package infra

import (
	"fmt"
	"time"
)

// Clock stamps every business timestamp in one fixed UTC offset so ledger
// entries written from different branches stay comparable. The offset comes
// from TZ_OFFSET (default +08:00); named zones with DST are deliberately not
// supported.
type Clock struct {
	loc *time.Location
}

// NewClock parses an offset of the form "+08:00" or "-05:30".
func NewClock(offset string) (*Clock, error) {
	var sign int
	switch {
	case len(offset) == 6 && offset[0] == '+':
		sign = 1
	case len(offset) == 6 && offset[0] == '-':
		sign = -1
	default:
		return nil, fmt.Errorf("invalid TZ offset %q, want ±HH:MM", offset)
	}
	var hh, mm int
	if _, err := fmt.Sscanf(offset[1:], "%02d:%02d", &hh, &mm); err != nil {
		return nil, fmt.Errorf("invalid TZ offset %q: %w", offset, err)
	}
	if hh > 14 || mm > 59 {
		return nil, fmt.Errorf("invalid TZ offset %q", offset)
	}
	return &Clock{loc: time.FixedZone("UTC"+offset, sign*(hh*3600+mm*60))}, nil
}

// Now returns the current time in the configured fixed offset.
func (c *Clock) Now() time.Time { return time.Now().In(c.loc) }

// In converts an arbitrary timestamp to the configured offset for display.
func (c *Clock) In(t time.Time) time.Time { return t.In(c.loc) }
