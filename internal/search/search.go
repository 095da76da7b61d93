// Package search scans transcript files per query and ranks matches by a
// heuristic relevance score. There is no persistent index; every search
// re-reads the files it needs, skipping anything malformed.
package search

import (
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/sytelus/claude-sessions/internal/transcript"
)

type Mode string

const (
	ModeSmart    Mode = "smart"
	ModeExact    Mode = "exact"
	ModeRegex    Mode = "regex"
	ModeSemantic Mode = "semantic"
)

const (
	DefaultMaxResults  = 20
	relevanceThreshold = 0.1
	maxMatchedContent  = 200
)

// Options filter and shape a search. Zero values mean: smart mode, both
// speakers, no date bounds, DefaultMaxResults, case-insensitive.
type Options struct {
	Mode          Mode
	Speaker       string // "human", "assistant", or "" for both
	From          time.Time
	To            time.Time
	MaxResults    int
	CaseSensitive bool
}

// Result is one scored match. Context carries the highlighted snippet;
// Relevance is always in [0, 1].
type Result struct {
	Path           string
	ConversationID string
	Speaker        string
	Matched        string
	Context        string
	Relevance      float64
	Timestamp      time.Time
	HasTime        bool
	Line           int
}

type Searcher struct {
	lemmatizer Lemmatizer
	log        *slog.Logger
}

// New builds a Searcher. lem may be nil, in which case semantic mode
// transparently degrades to smart scoring. log may be nil.
func New(lem Lemmatizer, log *slog.Logger) *Searcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Searcher{lemmatizer: lem, log: log}
}

// Search scans dir for transcripts matching query and returns results best
// first. An invalid dir is the only error; malformed files and lines are
// skipped, and an invalid regex pattern yields an empty result set.
func (s *Searcher) Search(query, dir string, opts Options) ([]Result, error) {
	files, err := transcript.Discover(dir)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	files = filterByDate(files, opts.From, opts.To)

	mode := opts.Mode
	if mode == "" {
		mode = ModeSmart
	}
	if mode == ModeSemantic && s.lemmatizer == nil {
		mode = ModeSmart
	}

	var re *regexp.Regexp
	if mode == ModeRegex {
		pattern := query
		if !opts.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err = regexp.Compile(pattern)
		if err != nil {
			s.log.Warn("invalid regex pattern", "pattern", query, "err", err)
			return nil, nil
		}
	}

	var all []Result
	for _, f := range files {
		messages, err := transcript.ReadFile(f.Path)
		if err != nil {
			s.log.Warn("skipping unreadable transcript", "path", f.Path, "err", err)
			continue
		}
		var results []Result
		switch mode {
		case ModeRegex:
			results = s.searchRegex(f, messages, re, opts)
		case ModeExact:
			results = s.searchExact(f, messages, query, opts)
		case ModeSemantic:
			results = s.searchSemantic(f, messages, query, opts)
		default:
			results = s.searchSmart(f, messages, query, opts)
		}
		all = append(all, results...)
	}

	// Relevance descending, stable by discovery order on ties.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Relevance > all[j].Relevance
	})
	if len(all) > opts.MaxResults {
		all = all[:opts.MaxResults]
	}
	return all, nil
}

// candidates yields the searchable messages of a file after the speaker
// filter. Only user and assistant turns are scored.
func candidates(messages []transcript.Message, speaker string) []transcript.Message {
	out := make([]transcript.Message, 0, len(messages))
	for _, m := range messages {
		if m.Kind != transcript.KindUser && m.Kind != transcript.KindAssistant {
			continue
		}
		if speaker != "" && m.Speaker != speaker {
			continue
		}
		if m.Text == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *Searcher) searchSmart(f transcript.File, messages []transcript.Message, query string, opts Options) []Result {
	queryTokens := tokenize(query, opts.CaseSensitive)

	var results []Result
	for _, m := range candidates(messages, opts.Speaker) {
		relevance := calculateRelevance(m.Text, query, queryTokens, opts.CaseSensitive)
		if relevance <= relevanceThreshold {
			continue
		}
		results = append(results, s.result(f, m, truncate(m.Text, maxMatchedContent),
			extractContext(m.Text, query, opts.CaseSensitive), relevance))
	}
	return results
}

func (s *Searcher) searchExact(f transcript.File, messages []transcript.Message, query string, opts Options) []Result {
	needle := query
	if !opts.CaseSensitive {
		needle = strings.ToLower(needle)
	}

	var results []Result
	for _, m := range candidates(messages, opts.Speaker) {
		content := m.Text
		if !opts.CaseSensitive {
			content = strings.ToLower(content)
		}
		count := strings.Count(content, needle)
		if count == 0 {
			continue
		}
		relevance := clamp(float64(count) * 0.2)
		results = append(results, s.result(f, m, truncate(m.Text, maxMatchedContent),
			extractContext(m.Text, query, opts.CaseSensitive), relevance))
	}
	return results
}

func (s *Searcher) searchRegex(f transcript.File, messages []transcript.Message, re *regexp.Regexp, opts Options) []Result {
	var results []Result
	for _, m := range candidates(messages, opts.Speaker) {
		matches := re.FindAllStringIndex(m.Text, -1)
		if len(matches) == 0 {
			continue
		}
		relevance := clamp(float64(len(matches)) * 0.2)
		first := matches[0]
		results = append(results, s.result(f, m, m.Text[first[0]:first[1]],
			regexContext(m.Text, first[0], first[1]), relevance))
	}
	return results
}

func (s *Searcher) result(f transcript.File, m transcript.Message, matched, context string, relevance float64) Result {
	return Result{
		Path:           f.Path,
		ConversationID: transcript.ConversationID(f.Path),
		Speaker:        m.Speaker,
		Matched:        matched,
		Context:        context,
		Relevance:      relevance,
		Timestamp:      m.Timestamp,
		HasTime:        m.HasTime,
		Line:           m.Line,
	}
}

func filterByDate(files []transcript.File, from, to time.Time) []transcript.File {
	if from.IsZero() && to.IsZero() {
		return files
	}
	filtered := make([]transcript.File, 0, len(files))
	for _, f := range files {
		if !from.IsZero() && f.ModTime.Before(from) {
			continue
		}
		if !to.IsZero() && f.ModTime.After(to) {
			continue
		}
		filtered = append(filtered, f)
	}
	return filtered
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0 {
		return 0
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
