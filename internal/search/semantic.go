package search

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"github.com/sytelus/claude-sessions/internal/transcript"
)

// Lemmatizer reduces a token to its base form. It is an injectable,
// best-effort capability: construct the Searcher with nil and semantic mode
// silently behaves as smart mode.
type Lemmatizer interface {
	Lemma(token string) string
}

// Stemmer is the default Lemmatizer, backed by the snowball English stemmer.
type Stemmer struct{}

func (Stemmer) Lemma(token string) string {
	stem, err := snowball.Stem(token, "english", false)
	if err != nil || stem == "" {
		return strings.ToLower(token)
	}
	return stem
}

const semanticThreshold = 0.3

func (s *Searcher) searchSemantic(f transcript.File, messages []transcript.Message, query string, opts Options) []Result {
	queryLower := strings.ToLower(query)
	queryTokens := alphaTokens(queryLower)
	if len(queryTokens) == 0 {
		return nil
	}
	queryStems := make([]string, len(queryTokens))
	for i, t := range queryTokens {
		queryStems[i] = s.lemmatizer.Lemma(t)
	}

	var results []Result
	for _, m := range candidates(messages, opts.Speaker) {
		contentLower := strings.ToLower(m.Text)
		contentTokens := alphaTokens(contentLower)

		contentStems := make(map[string]struct{}, len(contentTokens))
		contentSet := make(map[string]struct{}, len(contentTokens))
		for _, t := range contentTokens {
			contentSet[t] = struct{}{}
			contentStems[s.lemmatizer.Lemma(t)] = struct{}{}
		}

		similar := 0
		for i, t := range queryTokens {
			if _, ok := contentSet[t]; ok {
				similar++
				continue
			}
			if _, ok := contentStems[queryStems[i]]; ok {
				similar++
			}
		}

		similarity := float64(similar) / float64(len(queryTokens))
		if strings.Contains(contentLower, queryLower) {
			similarity = clamp(similarity + 0.3)
		}
		if similarity <= semanticThreshold {
			continue
		}
		results = append(results, s.result(f, m, truncate(m.Text, maxMatchedContent),
			extractContext(m.Text, query, false), similarity))
	}
	return results
}

// alphaTokens keeps alphabetic, non-stop-word tokens in order.
func alphaTokens(s string) []string {
	var tokens []string
	for _, w := range strings.Fields(s) {
		w = strings.TrimFunc(w, func(r rune) bool { return !unicode.IsLetter(r) })
		if w == "" || !isAlpha(w) {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
