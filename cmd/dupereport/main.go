// Command dupereport runs pkg/dedupe's SimHash near-duplicate scan
// over a corpus directory and prints candidate pairs. Standalone
// diagnostic tool; see SPEC_FULL.md §4.4.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"textsearch/pkg/dedupe"
	"textsearch/pkg/text"
)

const defaultHammingThreshold = 3

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: dupereport <corpusDir> [hammingThreshold]")
		os.Exit(1)
	}
	corpusDir := os.Args[1]

	threshold := defaultHammingThreshold
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatalf("invalid hammingThreshold %q: %v\n", os.Args[2], err)
		}
		threshold = n
	}

	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		log.Fatalf("reading corpus: %v\n", err)
	}

	fingerprints := map[int]uint64{}
	names := map[int]string{}
	docID := 0

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		docID++

		content, err := os.ReadFile(filepath.Join(corpusDir, entry.Name()))
		if err != nil {
			log.Printf("warning: cannot open file %s: %v\n", entry.Name(), err)
			continue
		}
		fingerprints[docID] = dedupe.Fingerprint(text.Tokenize(string(content)))
		names[docID] = entry.Name()
	}

	pairs := dedupe.FindPairs(fingerprints, threshold)
	if len(pairs) == 0 {
		fmt.Println("no near-duplicate pairs found")
		return
	}
	for _, pair := range pairs {
		fmt.Printf("%s <-> %s (hamming distance %d)\n", names[pair.DocA], names[pair.DocB], pair.Distance)
	}
}
