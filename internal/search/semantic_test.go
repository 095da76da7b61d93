package search

import (
	"reflect"
	"testing"
)

func TestStemmerLemma(t *testing.T) {
	s := Stemmer{}
	if s.Lemma("running") != s.Lemma("runs") {
		t.Fatalf("expected shared stem: %q vs %q", s.Lemma("running"), s.Lemma("runs"))
	}
	if s.Lemma("Running") != s.Lemma("running") {
		t.Fatal("expected case-folded stem")
	}
}

func TestSemanticMatchesInflections(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl",
		userLine("debugging the tests"),
		userLine("completely unrelated text"),
	)

	s := New(Stemmer{}, nil)
	results, err := s.Search("debug test", dir, Options{Mode: ModeSemantic})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 semantic result, got %d", len(results))
	}
	if results[0].Relevance <= 0.3 || results[0].Relevance > 1.0 {
		t.Fatalf("unexpected relevance: %f", results[0].Relevance)
	}
}

func TestSemanticExactPhraseBoost(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl",
		userLine("python error in the build"),
		userLine("python without the second word"),
	)

	s := New(Stemmer{}, nil)
	results, err := s.Search("python error", dir, Options{Mode: ModeSemantic})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// The exact phrase carries a 0.3 boost and sorts first.
	if results[0].Relevance <= results[1].Relevance {
		t.Fatalf("expected phrase boost to win: %f vs %f", results[0].Relevance, results[1].Relevance)
	}
}

// With no lemmatizer injected, semantic mode is smart mode, not an error.
func TestSemanticFallsBackToSmart(t *testing.T) {
	dir := t.TempDir()
	writeTranscript(t, dir, "a.jsonl", userLine("python decorators are great"))

	s := New(nil, nil)
	semantic, err := s.Search("python", dir, Options{Mode: ModeSemantic})
	if err != nil {
		t.Fatal(err)
	}
	smart, err := s.Search("python", dir, Options{Mode: ModeSmart})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(semantic, smart) {
		t.Fatalf("fallback differs from smart\nsemantic: %#v\nsmart:    %#v", semantic, smart)
	}
}
