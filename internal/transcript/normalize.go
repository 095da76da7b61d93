package transcript

import (
	"strings"
	"time"
)

// ExtractText flattens message content into plain text. Content is either a
// plain string, or a list whose items are raw strings or typed blocks of
// which only {"type":"text"} carries searchable text.
func ExtractText(content any) string {
	switch c := content.(type) {
	case string:
		return c
	case []any:
		parts := make([]string, 0, len(c))
		for _, item := range c {
			switch block := item.(type) {
			case string:
				parts = append(parts, block)
			case map[string]any:
				if asString(block["type"]) == "text" {
					parts = append(parts, asString(block["text"]))
				}
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

// ParseTimestamp parses the ISO-8601 timestamps Claude writes, including the
// trailing-Z form. A failed parse is a quiet miss, never an error.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
