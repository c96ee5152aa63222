package blaze

import (
	"sync"

	"github.com/avenwood/lexicon/bitstream"
)

const (
	postingsExtension = ".postings"
	offsetsExtension  = ".offsets"
)

// PostingEntry is one document's occurrences of a single term.
type PostingEntry struct {
	DocumentID        uint32
	DocumentFrequency uint32 // term occurrences within this document
	Positions         []uint32
}

// PostingList is every document containing a term, sorted by ascending
// DocumentID.
type PostingList struct {
	Documents           []PostingEntry
	CollectionFrequency uint32 // number of documents containing the term
}

// WritePostings writes terms' posting lists to output+postingsExtension and
// their bit-offsets to output+offsetsExtension. terms and postings must be
// the same length and in the same (ascending, vocabulary) order; postings[i]
// is the posting list for terms[i].
func WritePostings(terms []string, postings []PostingList, output string) error {
	pw, err := bitstream.NewWriter(output + postingsExtension)
	if err != nil {
		return err
	}
	defer pw.Close()

	ow, err := bitstream.NewWriter(output + offsetsExtension)
	if err != nil {
		return err
	}
	defer ow.Close()

	if _, err := ow.WriteVbyte(uint32(len(terms))); err != nil {
		return err
	}

	var offset uint64
	var prevOffset uint32

	for _, pl := range postings {
		if _, err := ow.WriteGamma(uint32(offset) - prevOffset); err != nil {
			return err
		}
		prevOffset = uint32(offset)

		n, err := pw.WriteVbyte(uint32(len(pl.Documents)))
		if err != nil {
			return err
		}
		offset += n

		var prevDocID uint32
		for _, entry := range pl.Documents {
			n, err := pw.WriteGamma(entry.DocumentID - prevDocID)
			if err != nil {
				return err
			}
			offset += n

			n, err = pw.WriteGamma(entry.DocumentFrequency)
			if err != nil {
				return err
			}
			offset += n

			n, err = pw.WriteVbyteGammaGapVector(entry.Positions)
			if err != nil {
				return err
			}
			offset += n

			prevDocID = entry.DocumentID
		}
	}

	return nil
}

// Postings is an open, randomly seekable handle on an index's postings
// file, addressed by the term's vocabulary index via its offsets file.
type Postings struct {
	mu      sync.Mutex
	reader  *bitstream.Reader
	offsets []uint64
}

// LoadPostingsReader opens the postings and offsets files written by
// WritePostings.
func LoadPostingsReader(input string) (*Postings, error) {
	or, err := bitstream.NewReader(input + offsetsExtension)
	if err != nil {
		return nil, err
	}
	defer or.Close()

	n, err := or.ReadVbyte()
	if err != nil {
		return nil, err
	}

	offsets := make([]uint64, 0, n)
	var offset uint64
	for i := uint32(0); i < n; i++ {
		gap, err := or.ReadGamma()
		if err != nil {
			return nil, err
		}
		offset += uint64(gap)
		offsets = append(offsets, offset)
	}

	reader, err := bitstream.NewReader(input + postingsExtension)
	if err != nil {
		return nil, err
	}

	return &Postings{reader: reader, offsets: offsets}, nil
}

// Close closes the underlying postings file.
func (p *Postings) Close() error {
	return p.reader.Close()
}

// LoadPostingsList seeks to and decodes the posting list for the term at
// vocabulary index termIndex. Concurrent calls are serialized since they
// share one seekable reader.
func (p *Postings) LoadPostingsList(termIndex int) (PostingList, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if termIndex < 0 || termIndex >= len(p.offsets) {
		return PostingList{}, ErrUnknownTerm
	}

	if err := p.reader.Seek(p.offsets[termIndex]); err != nil {
		return PostingList{}, err
	}

	n, err := p.reader.ReadVbyte()
	if err != nil {
		return PostingList{}, err
	}

	documents := make([]PostingEntry, 0, n)
	var documentID uint32

	for i := uint32(0); i < n; i++ {
		delta, err := p.reader.ReadGamma()
		if err != nil {
			return PostingList{}, err
		}
		documentID += delta

		df, err := p.reader.ReadGamma()
		if err != nil {
			return PostingList{}, err
		}

		positions, err := p.reader.ReadVbyteGammaGapVector()
		if err != nil {
			return PostingList{}, err
		}

		documents = append(documents, PostingEntry{
			DocumentID:        documentID,
			DocumentFrequency: df,
			Positions:         positions,
		})
	}

	return PostingList{Documents: documents, CollectionFrequency: uint32(len(documents))}, nil
}
