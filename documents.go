package blaze

import (
	"github.com/avenwood/lexicon/bitstream"
)

const documentsExtension = ".docs"

// Document is a single corpus entry: its path and its token count.
type Document struct {
	Path   string
	Length uint32
}

// Documents is the read-only, path-and-length table for every document in a
// built index, loaded entirely into memory.
type Documents struct {
	docs   []Document
	avgLen float64
}

// WriteDocuments writes docs to path+documentsExtension, prefix-compressing
// each path against the previous one in iteration order.
func WriteDocuments(docs []Document, path string) error {
	w, err := bitstream.NewWriter(path + documentsExtension)
	if err != nil {
		return err
	}

	if _, err := w.WriteVbyte(uint32(len(docs))); err != nil {
		w.Close()
		return err
	}

	prev := ""
	for _, d := range docs {
		prefixLen := matchingPrefixLen(prev, d.Path)
		if _, err := w.WriteGamma(uint32(prefixLen)); err != nil {
			w.Close()
			return err
		}
		remaining := string([]rune(d.Path)[prefixLen:])
		prev = d.Path

		if _, err := w.WriteStr(remaining); err != nil {
			w.Close()
			return err
		}
		if _, err := w.WriteVbyte(d.Length); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

// LoadDocuments loads the documents table previously written by
// WriteDocuments.
func LoadDocuments(path string) (*Documents, error) {
	r, err := bitstream.NewReader(path + documentsExtension)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	n, err := r.ReadVbyte()
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, n)
	prev := ""
	var lengthSum uint64

	for i := uint32(0); i < n; i++ {
		prefixLen, err := r.ReadGamma()
		if err != nil {
			return nil, err
		}
		suffix, err := r.ReadStr()
		if err != nil {
			return nil, err
		}
		full := string([]rune(prev)[:prefixLen]) + suffix
		prev = full

		length, err := r.ReadVbyte()
		if err != nil {
			return nil, err
		}
		lengthSum += uint64(length)

		docs = append(docs, Document{Path: full, Length: length})
	}

	avgLen := float64(0)
	if len(docs) > 0 {
		avgLen = float64(lengthSum) / float64(len(docs))
	}

	return &Documents{docs: docs, avgLen: avgLen}, nil
}

// NumDocuments returns the total number of documents in the table.
func (d *Documents) NumDocuments() uint32 {
	return uint32(len(d.docs))
}

// DocLen returns the token count of docID.
func (d *Documents) DocLen(docID uint32) uint32 {
	return d.docs[docID].Length
}

// AvgDocLen returns the mean token count across all documents.
func (d *Documents) AvgDocLen() float64 {
	return d.avgLen
}

// DocPath returns the path of docID.
func (d *Documents) DocPath(docID uint32) string {
	return d.docs[docID].Path
}

// matchingPrefixLen returns the number of leading runes s1 and s2 share.
func matchingPrefixLen(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	n := len(r1)
	if len(r2) < n {
		n = len(r2)
	}
	i := 0
	for i < n && r1[i] == r2[i] {
		i++
	}
	return i
}
