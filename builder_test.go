package blaze

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}
	return dir
}

func TestBuild_ProducesQueryableIndex(t *testing.T) {
	corpus := writeCorpus(t, map[string]string{
		"1.txt": "hello world",
		"2.txt": "hello man",
	})
	indexBase := filepath.Join(t.TempDir(), "idx")

	cfg := DefaultBuildConfig()
	cfg.MaxDocFrequencyRatio = 1.0 // keep "hello", which is in every document
	if err := BuildWithConfig(corpus, indexBase, cfg); err != nil {
		t.Fatalf("BuildWithConfig: %v", err)
	}

	vocab, err := LoadVocabulary(indexBase)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	for _, term := range []string{"hello", "world", "man"} {
		if _, ok := vocab.TermIndex(term); !ok {
			t.Errorf("vocabulary missing expected term %q", term)
		}
	}

	docs, err := LoadDocuments(indexBase)
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}
	if got := docs.NumDocuments(); got != 2 {
		t.Fatalf("NumDocuments() = %d, want 2", got)
	}
}

func TestBuild_SkipsDotfiles(t *testing.T) {
	corpus := writeCorpus(t, map[string]string{
		"visible.txt": "alpha beta",
		".hidden.txt": "gamma delta",
	})
	indexBase := filepath.Join(t.TempDir(), "idx")

	if err := Build(corpus, indexBase); err != nil {
		t.Fatalf("Build: %v", err)
	}

	docs, err := LoadDocuments(indexBase)
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}
	if got := docs.NumDocuments(); got != 1 {
		t.Fatalf("NumDocuments() = %d, want 1 (dotfile should be skipped)", got)
	}
	if got := docs.DocPath(0); filepath.Base(got) != "visible.txt" {
		t.Errorf("DocPath(0) = %q, want visible.txt", got)
	}
}

func TestBuild_FrequencyBandFilter(t *testing.T) {
	corpus := writeCorpus(t, map[string]string{
		"1.txt": "common rare",
		"2.txt": "common",
		"3.txt": "common",
	})
	indexBase := filepath.Join(t.TempDir(), "idx")

	cfg := DefaultBuildConfig()
	cfg.MinDocFrequency = 1 // a term must appear in strictly more than 1 document to survive
	cfg.MaxDocFrequencyRatio = 1.0

	if err := BuildWithConfig(corpus, indexBase, cfg); err != nil {
		t.Fatalf("BuildWithConfig: %v", err)
	}

	vocab, err := LoadVocabulary(indexBase)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}

	if _, ok := vocab.TermIndex("common"); !ok {
		t.Error("vocabulary missing \"common\" (document frequency 3, should survive MinDocFrequency=1)")
	}
	if _, ok := vocab.TermIndex("rare"); ok {
		t.Error("vocabulary retains \"rare\" (document frequency 1, should be dropped at MinDocFrequency=1)")
	}
}

func TestBuild_DeterministicDocIDOrder(t *testing.T) {
	corpus := writeCorpus(t, map[string]string{
		"b.txt": "second",
		"a.txt": "first",
		"c.txt": "third",
	})
	indexBase := filepath.Join(t.TempDir(), "idx")

	if err := Build(corpus, indexBase); err != nil {
		t.Fatalf("Build: %v", err)
	}

	docs, err := LoadDocuments(indexBase)
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}

	want := []string{"a.txt", "b.txt", "c.txt"}
	for i, w := range want {
		if got := filepath.Base(docs.DocPath(uint32(i))); got != w {
			t.Errorf("DocPath(%d) = %q, want %q (sorted file order)", i, got, w)
		}
	}
}
