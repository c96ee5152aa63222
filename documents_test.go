package blaze

import (
	"path/filepath"
	"testing"
)

func TestDocuments_WriteAndLoad(t *testing.T) {
	base := filepath.Join(t.TempDir(), "docs_unit")

	docs := []Document{
		{Path: "document1.txt", Length: 100},
		{Path: "document2.txt", Length: 150},
	}

	if err := WriteDocuments(docs, base); err != nil {
		t.Fatalf("WriteDocuments: %v", err)
	}

	loaded, err := LoadDocuments(base)
	if err != nil {
		t.Fatalf("LoadDocuments: %v", err)
	}

	if got := loaded.NumDocuments(); got != uint32(len(docs)) {
		t.Fatalf("NumDocuments() = %d, want %d", got, len(docs))
	}

	for i, d := range docs {
		if got := loaded.DocPath(uint32(i)); got != d.Path {
			t.Errorf("DocPath(%d) = %q, want %q", i, got, d.Path)
		}
		if got := loaded.DocLen(uint32(i)); got != d.Length {
			t.Errorf("DocLen(%d) = %d, want %d", i, got, d.Length)
		}
	}

	if want := 125.0; loaded.AvgDocLen() != want {
		t.Errorf("AvgDocLen() = %v, want %v", loaded.AvgDocLen(), want)
	}
}

func TestMatchingPrefixLen(t *testing.T) {
	cases := []struct {
		s1, s2 string
		want   int
	}{
		{"hello", "hell", 4},
		{"abc", "xyz", 0},
		{"", "", 0},
		{"apple", "appetizer", 3},
		{"rust", "rust", 4},
	}
	for _, c := range cases {
		if got := matchingPrefixLen(c.s1, c.s2); got != c.want {
			t.Errorf("matchingPrefixLen(%q, %q) = %d, want %d", c.s1, c.s2, got, c.want)
		}
	}
}
