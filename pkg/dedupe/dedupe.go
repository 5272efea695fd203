// Package dedupe is a supplemental, diagnostic-only near-duplicate
// detector. It never influences DocId assignment, indexing, or query
// results (spec.md's retrieval contract is unaffected); it only reports
// candidate near-duplicate pairs for operator inspection. Grounded on
// the teacher's pkg/parser/doc.go simhash fingerprinting pass.
package dedupe

import (
	"math/bits"
	"sort"
	"strings"

	"github.com/mfonda/simhash"
)

// Fingerprint computes a 64-bit SimHash of tokens, treating the joined
// token stream as the feature set, matching the teacher's
// simhash.Simhash(simhash.NewWordFeatureSet(...)) call.
func Fingerprint(tokens []string) uint64 {
	return simhash.Simhash(simhash.NewWordFeatureSet([]byte(strings.Join(tokens, " "))))
}

// hammingDistance counts the differing bits between a and b.
func hammingDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Pair is a candidate near-duplicate pair, ordered so DocA < DocB.
type Pair struct {
	DocA, DocB int
	Distance   int
}

// FindPairs reports every pair of documents in fingerprints whose
// Hamming distance is at most threshold, sorted by ascending distance
// then by DocA/DocB for determinism.
func FindPairs(fingerprints map[int]uint64, threshold int) []Pair {
	ids := make([]int, 0, len(fingerprints))
	for id := range fingerprints {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var pairs []Pair
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			dist := hammingDistance(fingerprints[a], fingerprints[b])
			if dist <= threshold {
				pairs = append(pairs, Pair{DocA: a, DocB: b, Distance: dist})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Distance != pairs[j].Distance {
			return pairs[i].Distance < pairs[j].Distance
		}
		if pairs[i].DocA != pairs[j].DocA {
			return pairs[i].DocA < pairs[j].DocA
		}
		return pairs[i].DocB < pairs[j].DocB
	})

	return pairs
}
