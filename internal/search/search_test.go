package search

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTranscript(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func userLine(text string) string {
	return `{"type":"user","content":"` + text + `"}`
}

func assistantLine(text string) string {
	return `{"type":"assistant","content":"` + text + `"}`
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

// Two files, one about Python, one about JavaScript: smart search for
// "python" finds exactly the first, exact search for "rust" finds nothing.
func TestScenarioTwoFiles(t *testing.T) {
	dir := t.TempDir()
	pyPath := writeTranscript(t, dir, "py.jsonl", userLine("Python decorators are great"))
	writeTranscript(t, dir, "js.jsonl", userLine("Explain JavaScript promises"))

	s := New(nil, nil)

	results, err := s.Search("python", dir, Options{Mode: ModeSmart})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != pyPath {
		t.Fatalf("unexpected path: %s", results[0].Path)
	}
	if results[0].Relevance < 0.5 {
		t.Fatalf("expected relevance >= 0.5, got %f", results[0].Relevance)
	}

	results, err = s.Search("rust", dir, Options{Mode: ModeExact})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 results, got %d", len(results))
	}
}

func TestExactModeFormula(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl",
		userLine("cat"),
		userLine("cat cat cat"),
		userLine("dog"),
	)

	s := New(nil, nil)
	results, err := s.Search("cat", dir, Options{Mode: ModeExact})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Best first: three occurrences score 0.6, one scores 0.2.
	if !near(results[0].Relevance, 0.6) || !near(results[1].Relevance, 0.2) {
		t.Fatalf("unexpected relevances: %f, %f", results[0].Relevance, results[1].Relevance)
	}
}

func TestExactModeClamped(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl", userLine(strings.TrimSpace(strings.Repeat("cat ", 12))))

	s := New(nil, nil)
	results, err := s.Search("cat", dir, Options{Mode: ModeExact})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Relevance != 1.0 {
		t.Fatalf("expected single clamped result, got %#v", results)
	}
}

func TestRelevanceBounds(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl",
		userLine("python python python error handling in python code"),
		assistantLine("You can fix the python error"),
		userLine("unrelated words entirely"),
	)

	s := New(Stemmer{}, nil)
	for _, mode := range []Mode{ModeSmart, ModeExact, ModeRegex, ModeSemantic} {
		results, err := s.Search("python error", dir, Options{Mode: mode})
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range results {
			if r.Relevance < 0.0 || r.Relevance > 1.0 {
				t.Fatalf("mode %s: relevance out of range: %f", mode, r.Relevance)
			}
		}
	}
}

func TestSmartModeIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl",
		userLine("python decorators explained"),
		assistantLine("decorators wrap python functions"),
	)
	writeTranscript(t, dir, "b.jsonl", userLine("more python content here"))

	s := New(nil, nil)
	first, err := s.Search("python decorators", dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Search("python decorators", dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("smart search not idempotent\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestSpeakerFilter(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl",
		userLine("tell me about goroutines"),
		assistantLine("goroutines are lightweight threads"),
	)

	s := New(nil, nil)
	results, err := s.Search("goroutines", dir, Options{Mode: ModeExact, Speaker: "human"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Speaker != "human" {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestInvalidRegexIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl", userLine("anything at all"))

	s := New(nil, nil)
	results, err := s.Search("([unclosed", dir, Options{Mode: ModeRegex})
	if err != nil {
		t.Fatalf("invalid pattern must not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %#v", results)
	}
}

func TestRegexMode(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl",
		userLine("import os and import sys"),
		userLine("no module loading here"),
	)

	s := New(nil, nil)
	results, err := s.Search(`import \w+`, dir, Options{Mode: ModeRegex})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !near(results[0].Relevance, 0.4) {
		t.Fatalf("expected relevance 0.4 for two matches, got %f", results[0].Relevance)
	}
	if results[0].Matched != "import os" {
		t.Fatalf("unexpected matched text: %q", results[0].Matched)
	}
}

// A corrupt line among valid ones changes nothing about the matches the
// valid lines produce.
func TestMalformedLineEquivalence(t *testing.T) {
	clean := t.TempDir()
	dirty := t.TempDir()
	lines := []string{
		userLine("python decorators are great"),
		assistantLine("they wrap functions"),
	}
	writeTranscript(t, clean, "s.jsonl", lines...)
	writeTranscript(t, dirty, "s.jsonl", lines[0], `{"type":"user","content": BROKEN`, lines[1])

	s := New(nil, nil)
	cleanResults, err := s.Search("python", clean, Options{})
	if err != nil {
		t.Fatal(err)
	}
	dirtyResults, err := s.Search("python", dirty, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(cleanResults) != len(dirtyResults) {
		t.Fatalf("corrupt line changed result count: %d vs %d", len(cleanResults), len(dirtyResults))
	}
	for i := range cleanResults {
		if cleanResults[i].Relevance != dirtyResults[i].Relevance ||
			cleanResults[i].Context != dirtyResults[i].Context {
			t.Fatalf("corrupt line changed result %d", i)
		}
	}
}

func TestEmptyQuery(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl", userLine("something"))

	s := New(nil, nil)
	for _, q := range []string{"", "   "} {
		results, err := s.Search(q, dir, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 0 {
			t.Fatalf("expected no results for query %q", q)
		}
	}
}

func TestMissingDirIsError(t *testing.T) {
	s := New(nil, nil)
	if _, err := s.Search("x", filepath.Join(t.TempDir(), "absent"), Options{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestMaxResults(t *testing.T) {
	dir := t.TempDir()
	lines := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		lines = append(lines, userLine("python snippet"))
	}
	writeTranscript(t, dir, "a.jsonl", lines...)

	s := New(nil, nil)
	results, err := s.Search("python", dir, Options{MaxResults: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
}

func TestCaseSensitivity(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl", userLine("Python is Python"))

	s := New(nil, nil)
	insensitive, err := s.Search("python", dir, Options{Mode: ModeExact})
	if err != nil {
		t.Fatal(err)
	}
	if len(insensitive) != 1 {
		t.Fatalf("expected insensitive match, got %#v", insensitive)
	}

	sensitive, err := s.Search("python", dir, Options{Mode: ModeExact, CaseSensitive: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(sensitive) != 0 {
		t.Fatalf("expected no case-sensitive match, got %#v", sensitive)
	}
}
