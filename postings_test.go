package blaze

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestPostings_WriteAndLoad(t *testing.T) {
	base := filepath.Join(t.TempDir(), "postings_unit")

	terms := []string{"hello", "world"}
	postings := []PostingList{
		{
			Documents: []PostingEntry{
				{DocumentID: 0, DocumentFrequency: 1, Positions: []uint32{0}},
				{DocumentID: 2, DocumentFrequency: 2, Positions: []uint32{1, 4}},
			},
		},
		{
			Documents: []PostingEntry{
				{DocumentID: 1, DocumentFrequency: 1, Positions: []uint32{3}},
			},
		},
	}
	for i := range postings {
		postings[i].CollectionFrequency = uint32(len(postings[i].Documents))
	}

	if err := WritePostings(terms, postings, base); err != nil {
		t.Fatalf("WritePostings: %v", err)
	}

	reader, err := LoadPostingsReader(base)
	if err != nil {
		t.Fatalf("LoadPostingsReader: %v", err)
	}
	defer reader.Close()

	for i, want := range postings {
		got, err := reader.LoadPostingsList(i)
		if err != nil {
			t.Fatalf("LoadPostingsList(%d): %v", i, err)
		}
		if got.CollectionFrequency != want.CollectionFrequency {
			t.Errorf("LoadPostingsList(%d).CollectionFrequency = %d, want %d", i, got.CollectionFrequency, want.CollectionFrequency)
		}
		if !reflect.DeepEqual(got.Documents, want.Documents) {
			t.Errorf("LoadPostingsList(%d).Documents = %+v, want %+v", i, got.Documents, want.Documents)
		}
	}
}

func TestPostings_UnknownTermIndex(t *testing.T) {
	base := filepath.Join(t.TempDir(), "postings_empty")

	if err := WritePostings(nil, nil, base); err != nil {
		t.Fatalf("WritePostings: %v", err)
	}

	reader, err := LoadPostingsReader(base)
	if err != nil {
		t.Fatalf("LoadPostingsReader: %v", err)
	}
	defer reader.Close()

	if _, err := reader.LoadPostingsList(0); err == nil {
		t.Error("LoadPostingsList(0) on an empty vocabulary should fail")
	}
}
