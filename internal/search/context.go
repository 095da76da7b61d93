package search

import (
	"regexp"
	"strings"
)

const contextSize = 150

// extractContext returns a window of ±contextSize chars around the first
// literal occurrence of query, ellipsis-truncated at either end, with every
// occurrence of the match wrapped in a **…** highlight marker. When the
// query does not occur literally, the head of the content is returned with a
// doubled window.
func extractContext(content, query string, caseSensitive bool) string {
	var pos int
	if caseSensitive {
		pos = strings.Index(content, query)
	} else {
		pos = strings.Index(strings.ToLower(content), strings.ToLower(query))
	}

	if pos < 0 {
		head := contextSize * 2
		if len(content) > head {
			return content[:head] + "..."
		}
		return content
	}

	start := pos - contextSize
	if start < 0 {
		start = 0
	}
	end := pos + len(query) + contextSize
	if end > len(content) {
		end = len(content)
	}

	context := content[start:end]
	if start > 0 {
		context = "..." + context
	}
	if end < len(content) {
		context = context + "..."
	}

	if caseSensitive {
		return strings.ReplaceAll(context, query, "**"+query+"**")
	}
	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
	return pattern.ReplaceAllLiteralString(context, "**"+strings.ToUpper(query)+"**")
}

// regexContext is the narrower ±100 char window regex mode uses around its
// first match, without highlight markers inside the snippet.
func regexContext(content string, matchStart, matchEnd int) string {
	const step = 100
	start := matchStart - step
	if start < 0 {
		start = 0
	}
	end := matchEnd + step
	if end > len(content) {
		end = len(content)
	}
	return "..." + content[start:end] + "..."
}
