package scrape

import (
	"fmt"
	"time"
)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses an H:M cell with one or two digits per field. ok is false
// for anything else.
func ParseClock(s string) (c Clock, ok bool) {
	t, err := time.Parse("15:4", s)
	if err != nil {
		return 0, false
	}
	return Clock(t.Hour()*60 + t.Minute()), true
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Observation window, both ends inclusive.
var (
	WindowStart = Clock(6*60 + 15)
	WindowEnd   = Clock(22 * 60)
)

func InWindow(c Clock) bool {
	return c >= WindowStart && c <= WindowEnd
}
