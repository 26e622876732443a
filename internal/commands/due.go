package commands

import (
	"fmt"
	"strings"
	"time"
)

// dueLayouts are the accepted --due formats, tried in order.
var dueLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDue parses a --due value in local time.
func parseDue(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid due date: %s (want YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}
