package search

import "strings"

// Words too common to carry relevance signal; removed from both query and
// content before token overlap and proximity checks.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "being": {},
	"have": {}, "has": {}, "had": {}, "do": {}, "does": {}, "did": {},
	"will": {}, "would": {}, "could": {}, "should": {}, "may": {}, "might": {},
	"i": {}, "you": {}, "we": {}, "they": {}, "it": {},
	"this": {}, "that": {}, "these": {}, "those": {},
}

// tokenize splits on whitespace and drops stop words. Case folding happens
// here so scoring code never re-lowers tokens.
func tokenize(s string, caseSensitive bool) map[string]struct{} {
	if !caseSensitive {
		s = strings.ToLower(s)
	}
	tokens := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens[w] = struct{}{}
	}
	return tokens
}

// calculateRelevance scores content against a query with three signals:
// an exact-substring bonus (0.5, plus up to 0.3 for repeats), token overlap
// (up to 0.4), and a proximity bonus (0.1) when every query token co-occurs
// within a sliding window of twice the query length. Clamped to [0, 1].
func calculateRelevance(content, query string, queryTokens map[string]struct{}, caseSensitive bool) float64 {
	relevance := 0.0

	if !caseSensitive {
		content = strings.ToLower(content)
		query = strings.ToLower(query)
	}

	if strings.Contains(content, query) {
		relevance += 0.5
		count := strings.Count(content, query)
		relevance += min(0.3, float64(count)*0.1)
	}

	contentTokens := tokenize(content, true)
	if len(queryTokens) > 0 && len(contentTokens) > 0 {
		overlap := 0
		for t := range queryTokens {
			if _, ok := contentTokens[t]; ok {
				overlap++
			}
		}
		relevance += min(0.4, float64(overlap)/float64(len(queryTokens))*0.4)
	}

	if len(queryTokens) > 1 && allTokensNearby(content, queryTokens) {
		relevance += 0.1
	}

	return clamp(relevance)
}

// allTokensNearby reports whether every query token appears inside some
// window of 2x the query token count.
func allTokensNearby(content string, queryTokens map[string]struct{}) bool {
	words := strings.Fields(content)
	n := len(queryTokens)
	for i := 0; i < len(words)-n; i++ {
		end := i + n*2
		if end > len(words) {
			end = len(words)
		}
		window := make(map[string]struct{}, end-i)
		for _, w := range words[i:end] {
			window[w] = struct{}{}
		}
		all := true
		for t := range queryTokens {
			if _, ok := window[t]; !ok {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
