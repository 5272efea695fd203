// Command dictgen regenerates a lemma-dictionary file from a corpus
// directory using a Porter stemmer. It is a supplemental tool outside
// the retrieval path (spec.md §9's dictionary stays inert in the
// engine itself); see SPEC_FULL.md §4.8. Grounded on
// github.com/kljensen/snowball's use in several pack repos (e.g.
// Zeeeepa-blaze/analyzer.go and
// other_examples/natyhl-go-search-engine__invertedindex.go).
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/kljensen/snowball"

	"textsearch/pkg/text"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: dictgen <corpusDir> <outputDictPath>")
		os.Exit(1)
	}
	corpusDir, outputPath := os.Args[1], os.Args[2]

	tokens, err := collectUniqueTokens(corpusDir)
	if err != nil {
		log.Fatalf("reading corpus: %v\n", err)
	}

	if err := writeDictionary(outputPath, tokens); err != nil {
		log.Fatalf("writing dictionary: %v\n", err)
	}

	log.Printf("wrote %d lemma entries to %s\n", len(tokens), outputPath)
}

func collectUniqueTokens(corpusDir string) ([]string, error) {
	entries, err := os.ReadDir(corpusDir)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		content, err := os.ReadFile(filepath.Join(corpusDir, entry.Name()))
		if err != nil {
			log.Printf("warning: cannot open file %s: %v\n", entry.Name(), err)
			continue
		}
		for _, tok := range text.Tokenize(string(content)) {
			seen[tok] = struct{}{}
		}
	}

	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens, nil
}

func writeDictionary(path string, tokens []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, tok := range tokens {
		stem, err := snowball.Stem(tok, "english", true)
		if err != nil {
			stem = tok
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", tok, stem); err != nil {
			return err
		}
	}
	return bw.Flush()
}
