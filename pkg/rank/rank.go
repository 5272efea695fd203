// Package rank implements the TF-IDF query engine and Zipf report of
// spec.md §4.7, grounded on original_source/search_engine.cpp's
// calculateTfIdfScores/rankDocuments/getTermStatistics.
package rank

import (
	"math"
	"sort"

	pq "github.com/emirpasic/gods/v2/queues/priorityqueue"

	"textsearch/pkg/vbyte"
)

// PostingLookup decodes the posting list for term, reporting whether the
// term exists in the index at all.
type PostingLookup func(term string) ([]vbyte.Posting, bool)

// DocLength reports the word count of docID, and whether it is known.
type DocLength func(docID int) (int, bool)

// Score computes TF-IDF scores for queryTerms per spec.md §4.7: for each
// term present in the index, idf = ln(N/df(t)); for each posting,
// tf = termFreq/docLength, and tf*idf accumulates into score[docId].
// Terms absent from the index, and postings whose docLengths entry is
// missing or zero, contribute nothing.
func Score(queryTerms []string, totalDocs int, lookup PostingLookup, docLength DocLength) map[int]float64 {
	scores := map[int]float64{}

	for _, term := range queryTerms {
		postings, ok := lookup(term)
		if !ok || len(postings) == 0 {
			continue
		}

		idf := math.Log(float64(totalDocs) / float64(len(postings)))

		for _, p := range postings {
			length, ok := docLength(p.DocID)
			if !ok || length == 0 {
				continue
			}
			tf := float64(p.Freq) / float64(length)
			scores[p.DocID] += tf * idf
		}
	}

	return scores
}

// ScoredDoc pairs a docID with its accumulated score.
type ScoredDoc struct {
	DocID int
	Score float64
}

// Rank drops documents below minScore and returns the remainder sorted
// by descending score, ties broken by ascending docID (spec.md §9 fixes
// this tie-break for determinism). This is the full logical result.
func Rank(scores map[int]float64, minScore float64) []ScoredDoc {
	results := make([]ScoredDoc, 0, len(scores))
	for docID, score := range scores {
		if score >= minScore {
			results = append(results, ScoredDoc{DocID: docID, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].DocID < results[j].DocID
	})

	return results
}

// scoredDocLess is the ascending comparator used by the bounded top-K
// priority queue: a document is "less" (evicted first) when it has a
// lower score, or, on a tied score, a larger docID (since ties favor the
// smaller docID).
func scoredDocLess(a, b ScoredDoc) int {
	switch {
	case a.Score < b.Score:
		return -1
	case a.Score > b.Score:
		return 1
	case a.DocID > b.DocID:
		return -1
	case a.DocID < b.DocID:
		return 1
	default:
		return 0
	}
}

// TopK extracts the k highest-scoring documents at or above minScore
// directly from scores using a bounded priority queue, rather than
// sorting the full result set a second time. Ties are broken by
// ascending docID, matching Rank.
func TopK(scores map[int]float64, minScore float64, k int) []ScoredDoc {
	if k <= 0 {
		return nil
	}

	heap := pq.NewWith(scoredDocLess)

	for docID, score := range scores {
		if score < minScore {
			continue
		}
		candidate := ScoredDoc{DocID: docID, Score: score}

		if heap.Size() < k {
			heap.Enqueue(candidate)
			continue
		}

		worst, ok := heap.Peek()
		if ok && scoredDocLess(candidate, worst) > 0 {
			heap.Dequeue()
			heap.Enqueue(candidate)
		}
	}

	out := make([]ScoredDoc, 0, heap.Size())
	for {
		v, ok := heap.Dequeue()
		if !ok {
			break
		}
		out = append(out, v)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return out
}

// TermStats is a single row of the Zipf report.
type TermStats struct {
	Term            string
	TotalFrequency  int
	DocumentFreqCnt int
}

// TermStatistics decodes every term's posting list and reports its
// document frequency and total frequency, sorted by descending total
// frequency (spec.md §4.7's Zipf report).
func TermStatistics(index map[string][]byte) ([]TermStats, error) {
	stats := make([]TermStats, 0, len(index))

	for term, data := range index {
		postings, err := vbyte.Decompress(data)
		if err != nil {
			return nil, err
		}

		total := 0
		for _, p := range postings {
			total += p.Freq
		}

		stats = append(stats, TermStats{
			Term:            term,
			TotalFrequency:  total,
			DocumentFreqCnt: len(postings),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].TotalFrequency != stats[j].TotalFrequency {
			return stats[i].TotalFrequency > stats[j].TotalFrequency
		}
		return stats[i].Term < stats[j].Term
	})

	return stats, nil
}

// ZipfRow is one displayed row of the Zipf analysis: term, total
// frequency, rank (1-based), and their product, which Zipf's law
// predicts should be roughly constant.
type ZipfRow struct {
	Term           string
	TotalFrequency int
	Rank           int
	Product        int64
}

// ZipfReport returns up to topN rows built from stats, which must
// already be sorted by descending total frequency.
func ZipfReport(stats []TermStats, topN int) []ZipfRow {
	limit := topN
	if limit > len(stats) {
		limit = len(stats)
	}

	rows := make([]ZipfRow, 0, limit)
	for i := 0; i < limit; i++ {
		rank := i + 1
		rows = append(rows, ZipfRow{
			Term:           stats[i].Term,
			TotalFrequency: stats[i].TotalFrequency,
			Rank:           rank,
			Product:        int64(stats[i].TotalFrequency) * int64(rank),
		})
	}

	return rows
}
