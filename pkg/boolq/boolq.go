// Package boolq implements the boolean query engine of spec.md §4.6:
// "+required -excluded optional" parsing and set-algebra evaluation.
// Grounded on original_source/search_engine.cpp's parseBooleanQuery and
// executeBooleanQuery, with set operations expressed over
// github.com/RoaringBitmap/roaring bitmaps instead of std::set<int>,
// following the QueryBuilder pattern in _examples/Zeeeepa-blaze/query.go.
package boolq

import (
	"strings"

	"github.com/RoaringBitmap/roaring"

	"textsearch/pkg/text"
)

// Query is a parsed boolean query.
type Query struct {
	Required []string
	Excluded []string
	Optional []string
}

// HasRequired reports whether the query has at least one required term.
func (q Query) HasRequired() bool { return len(q.Required) > 0 }

// HasOptional reports whether the query has at least one optional term.
func (q Query) HasOptional() bool { return len(q.Optional) > 0 }

// Parse splits raw on whitespace; a leading '+' marks a required term, a
// leading '-' marks an excluded term, and a bare token is optional. The
// remainder of each token after its sigil is re-tokenized by the
// analyzer and only the first resulting term is kept.
func Parse(raw string) Query {
	var q Query

	for _, tok := range strings.Fields(raw) {
		prefix := byte(0)
		word := tok
		if len(tok) > 1 && (tok[0] == '+' || tok[0] == '-') {
			prefix = tok[0]
			word = tok[1:]
		}

		parsed := text.Tokenize(word)
		if len(parsed) == 0 {
			continue
		}
		term := parsed[0]

		switch prefix {
		case '+':
			q.Required = append(q.Required, term)
		case '-':
			q.Excluded = append(q.Excluded, term)
		default:
			q.Optional = append(q.Optional, term)
		}
	}

	return q
}

// BitmapLookup returns the bitmap of docIDs containing term, and whether
// the term exists in the index at all.
type BitmapLookup func(term string) (*roaring.Bitmap, bool)

// Verifier confirms that every term in terms appears in the source
// document for docID (spec.md §4.6 step 5's content-verification pass).
type Verifier func(docID int, terms []string) bool

func bitmapFor(term string, lookup BitmapLookup) *roaring.Bitmap {
	b, ok := lookup(term)
	if !ok {
		return roaring.NewBitmap()
	}
	return b.Clone()
}

func unionOf(terms []string, lookup BitmapLookup) *roaring.Bitmap {
	out := roaring.NewBitmap()
	for _, term := range terms {
		out.Or(bitmapFor(term, lookup))
	}
	return out
}

// Execute evaluates q against lookup, then runs verify over any
// surviving candidates when the query has required terms (spec.md §4.6).
// Result order is ascending by docID, matching roaring.Bitmap's
// iteration order.
func Execute(q Query, lookup BitmapLookup, verify Verifier) []int {
	var candidates *roaring.Bitmap
	hasCandidates := false

	if q.HasRequired() {
		for _, term := range q.Required {
			termDocs := bitmapFor(term, lookup)
			if termDocs.IsEmpty() {
				return nil
			}

			if !hasCandidates {
				candidates = termDocs
				hasCandidates = true
			} else {
				candidates = roaring.And(candidates, termDocs)
			}

			if candidates.IsEmpty() {
				return nil
			}
		}
	} else if q.HasOptional() {
		candidates = unionOf(q.Optional, lookup)
		hasCandidates = true
	}

	if !hasCandidates {
		return nil
	}

	if len(q.Excluded) > 0 {
		excluded := unionOf(q.Excluded, lookup)
		candidates = roaring.AndNot(candidates, excluded)
	}

	if q.HasRequired() {
		var verified []int
		it := candidates.Iterator()
		for it.HasNext() {
			docID := int(it.Next())
			if verify(docID, q.Required) {
				verified = append(verified, docID)
			}
		}
		return verified
	}

	result := make([]int, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		result = append(result, int(it.Next()))
	}
	return result
}
