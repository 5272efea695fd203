// Package corpus implements the indexer of spec.md §4.4: it walks a
// directory of .txt documents, tokenizes each one, accumulates
// per-document term frequencies, and compresses per-term posting lists
// for installation into the inverted index. Grounded on
// original_source/search_engine.cpp (indexDocuments/processDocument) and
// the teacher's pkg/indexer/index.go accumulation pattern.
package corpus

import (
	"log"
	"os"
	"path/filepath"
	"sort"

	"textsearch/pkg/text"
	"textsearch/pkg/vbyte"
)

// DocStats is the per-document record produced while walking the corpus.
type DocStats struct {
	DocID     int
	Filename  string
	WordCount int
	TermFreqs map[string]int
}

// ProcessDocument tokenizes the file at path and returns its per-document
// statistics. If the file cannot be opened, it logs a warning and
// returns a zero-length stats record so that DocId assignment still
// advances (spec.md §4.4: "Building must not abort on per-file I/O
// errors").
func ProcessDocument(path string, docID int) DocStats {
	stats := DocStats{
		DocID:    docID,
		Filename: filepath.Base(path),
	}

	content, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: cannot open file %s: %v", path, err)
		return stats
	}

	tokens := text.Tokenize(string(content))
	stats.WordCount = len(tokens)
	stats.TermFreqs = make(map[string]int, len(tokens))
	for _, tok := range tokens {
		stats.TermFreqs[tok]++
	}

	return stats
}

// BuildResult is the in-memory output of a full corpus build.
type BuildResult struct {
	InvertedIndex map[string][]byte
	DocNames      map[int]string
	DocLengths    map[int]int
	TotalDocs     int
}

// BuildFromDir walks dir non-recursively, selects regular *.txt files,
// assigns DocIds in directory-enumeration order starting at 1, and
// builds the in-memory inverted index, docNames, and docLengths tables.
func BuildFromDir(dir string) (BuildResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BuildResult{}, err
	}

	tempPostings := map[string][]vbyte.Posting{}
	docNames := map[int]string{}
	docLengths := map[int]int{}

	docID := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		docID++
		path := filepath.Join(dir, entry.Name())
		stats := ProcessDocument(path, docID)

		docNames[docID] = stats.Filename
		docLengths[docID] = stats.WordCount

		terms := make([]string, 0, len(stats.TermFreqs))
		for term := range stats.TermFreqs {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			tempPostings[term] = append(tempPostings[term], vbyte.Posting{
				DocID: docID,
				Freq:  stats.TermFreqs[term],
			})
		}
	}

	invertedIndex := make(map[string][]byte, len(tempPostings))
	for term, postings := range tempPostings {
		sort.Slice(postings, func(i, j int) bool {
			return postings[i].DocID < postings[j].DocID
		})
		compressed, err := vbyte.Compress(postings)
		if err != nil {
			return BuildResult{}, err
		}
		invertedIndex[term] = compressed
	}

	return BuildResult{
		InvertedIndex: invertedIndex,
		DocNames:      docNames,
		DocLengths:    docLengths,
		TotalDocs:     docID,
	}, nil
}
