package iomigrate

import (
	"strconv"
	"strings"
	"time"
)

// dateLayouts covers the formats seen in legacy exports. The first
// match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02T15:04:05Z07:00",
}

// parseID parses a required integer identifier. An empty or malformed
// value returns ok=false; the caller decides whether that is fatal.
func parseID(s *string) (int, bool) {
	v := trimmed(s)
	if v == "" {
		return 0, false
	}
	// legacy exports sometimes carry ids as "123.0"
	if i := strings.IndexByte(v, '.'); i >= 0 {
		if rest := v[i+1:]; strings.Trim(rest, "0") == "" {
			v = v[:i]
		}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDate interprets a textual date in any of the known export
// layouts. Unparseable or empty values resolve to nil.
func parseDate(s *string) *time.Time {
	v := trimmed(s)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}

// parseFlag interprets the legacy yes/no markers. Anything other than
// an affirmative value is false.
func parseFlag(s *string) bool {
	switch strings.ToLower(trimmed(s)) {
	case "y", "yes", "true", "t", "1":
		return true
	}
	return false
}

// textOrNil returns the trimmed value, or nil when it is empty. Used
// for passing optional text and numeric columns to the database, which
// performs the final type coercion.
func textOrNil(s *string) *string {
	v := trimmed(s)
	if v == "" {
		return nil
	}
	return &v
}
