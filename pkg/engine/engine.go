// Package engine wires the analyzer, codec, indexer, persistence,
// boolean query, and TF-IDF packages into the lifecycle spec.md §3 and
// §6 describe: create, initialize, build-or-load, then serve read-only
// queries. Grounded on original_source/search_engine.cpp's SearchEngine
// class and the teacher's pkg/engine.Engine/cache.go shape, generalized
// from a URL-serving web index to a disk-backed corpus search engine.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring"
	lru "github.com/hashicorp/golang-lru/v2"

	"textsearch/pkg/boolq"
	"textsearch/pkg/config"
	"textsearch/pkg/corpus"
	"textsearch/pkg/dedupe"
	"textsearch/pkg/dict"
	"textsearch/pkg/rank"
	"textsearch/pkg/store"
	"textsearch/pkg/table"
	"textsearch/pkg/text"
	"textsearch/pkg/vbyte"
)

// ErrLoadFailure reports a missing or malformed persisted index
// (spec.md §7's LoadFailure kind): the caller should prompt a rebuild.
var ErrLoadFailure = errors.New("engine: failed to load persisted index")

// postingCacheSize bounds the decoded-posting-list LRU, grounded on the
// teacher's MemoryIndexListCache sizing.
const postingCacheSize = 256

// EngineStats summarizes a completed build for logging only; it is
// never persisted (spec.md's ambient observability analogue of the
// original's progress lines).
type EngineStats struct {
	DocCount      int
	TermCount     int
	PostingCount  int
	BuildDuration time.Duration
	DedupPairs    []dedupe.Pair
}

// Engine owns the entire in-memory index state. Per spec.md §4.3, the
// inverted index and the document metadata tables are key->value
// containers; this implementation backs them with table.Table rather
// than the reference's fixed 10 000-bucket hash map, which spec.md §9
// is explicit is not part of the external contract. It is not safe for
// concurrent use (spec.md §5).
type Engine struct {
	cfg config.Config

	invertedIndex *table.Table[string, []byte]
	docNames      *table.Table[int, string]
	docLengths    *table.Table[int, int]
	docUrls       *table.Table[int, string]
	totalDocs     int

	dictionary dict.Dictionary
	cache      *lru.Cache[string, []vbyte.Posting]
}

// New constructs an Engine from cfg. Call Initialize before any other
// method.
func New(cfg config.Config) *Engine {
	cache, _ := lru.New[string, []vbyte.Posting](postingCacheSize)
	return &Engine{cfg: cfg, cache: cache}
}

// Initialize loads the lemma dictionary (required; spec.md §7
// MissingDictionary aborts initialization) and the optional URLs table
// (missing is a warning only, per spec.md §7 MissingUrls).
func (e *Engine) Initialize() error {
	d, err := dict.Load(e.cfg.DictPath)
	if err != nil {
		return err
	}
	e.dictionary = d

	urls, err := e.readDocUrls()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot load urls file %s: %v\n", e.cfg.DocUrlsPath, err)
		urls = map[int]string{}
	}
	e.docUrls = table.FromMap(urls)

	return nil
}

func (e *Engine) readDocUrls() (map[int]string, error) {
	f, err := os.Open(e.cfg.DocUrlsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return store.ReadDocUrls(f)
}

// DictionarySize reports the number of loaded lemma entries, for
// startup logging.
func (e *Engine) DictionarySize() int { return e.dictionary.Size() }

// IndexDocuments walks cfg.DataDir and replaces any prior in-memory
// index wholesale (spec.md §4.4, §5). When dedupeThreshold is positive,
// it additionally computes a SimHash near-duplicate report over the
// freshly built corpus; this is purely diagnostic (spec.md §4.4).
func (e *Engine) IndexDocuments(dedupeThreshold int) (EngineStats, error) {
	start := time.Now()

	result, err := corpus.BuildFromDir(e.cfg.DataDir)
	if err != nil {
		return EngineStats{}, fmt.Errorf("indexing %s: %w", e.cfg.DataDir, err)
	}

	e.invertedIndex = table.FromMap(result.InvertedIndex)
	e.docNames = table.FromMap(result.DocNames)
	e.docLengths = table.FromMap(result.DocLengths)
	e.totalDocs = result.TotalDocs
	e.cache.Purge()

	stats := EngineStats{
		DocCount:      result.TotalDocs,
		TermCount:     len(result.InvertedIndex),
		BuildDuration: time.Since(start),
	}
	for _, data := range result.InvertedIndex {
		postings, err := vbyte.Decompress(data)
		if err != nil {
			return EngineStats{}, err
		}
		stats.PostingCount += len(postings)
	}

	if dedupeThreshold > 0 {
		stats.DedupPairs = e.detectDuplicates(dedupeThreshold)
	}

	return stats, nil
}

func (e *Engine) detectDuplicates(threshold int) []dedupe.Pair {
	fingerprints := make(map[int]uint64, e.docNames.Size())
	e.docNames.Each(func(docID int, name string) {
		content, err := os.ReadFile(filepath.Join(e.cfg.DataDir, name))
		if err != nil {
			return
		}
		fingerprints[docID] = dedupe.Fingerprint(text.Tokenize(string(content)))
	})
	return dedupe.FindPairs(fingerprints, threshold)
}

// Save persists the in-memory index and metadata tables to the
// configured paths (spec.md §4.5).
func (e *Engine) Save() error {
	if err := writeFile(e.cfg.InvIndexPath, func(f *os.File) error {
		return store.WriteInvertedIndex(f, e.invertedIndex.ToMap())
	}); err != nil {
		return err
	}
	if err := writeFile(e.cfg.DocNamesPath, func(f *os.File) error {
		return store.WriteDocNames(f, e.docNames.ToMap())
	}); err != nil {
		return err
	}
	if err := writeFile(e.cfg.DocLengthsPath, func(f *os.File) error {
		return store.WriteDocLengths(f, e.docLengths.ToMap())
	}); err != nil {
		return err
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// Load replaces the in-memory state with a previously persisted index.
// Any failure is wrapped in ErrLoadFailure so the caller can prompt a
// rebuild (spec.md §7).
func (e *Engine) Load() error {
	invertedIndex, err := readFile(e.cfg.InvIndexPath, store.ReadInvertedIndex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}
	docNames, err := readFile(e.cfg.DocNamesPath, store.ReadDocNames)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}
	docLengths, err := readFile(e.cfg.DocLengthsPath, store.ReadDocLengths)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailure, err)
	}

	e.invertedIndex = table.FromMap(invertedIndex)
	e.docNames = table.FromMap(docNames)
	e.docLengths = table.FromMap(docLengths)
	e.totalDocs = len(docLengths)
	e.cache.Purge()

	return nil
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return read(f)
}

// decode returns the decoded posting list for term, transparently
// caching decoded results (spec.md §4.7's decoded-posting-list cache).
// Cache misses always fall through to the authoritative inverted index
// and never change query results.
func (e *Engine) decode(term string) ([]vbyte.Posting, bool) {
	if postings, ok := e.cache.Get(term); ok {
		return postings, true
	}

	data, ok := e.invertedIndex.Find(term)
	if !ok {
		return nil, false
	}

	postings, err := vbyte.Decompress(data)
	if err != nil {
		return nil, false
	}

	e.cache.Add(term, postings)
	return postings, true
}

func (e *Engine) bitmapLookup(term string) (*roaring.Bitmap, bool) {
	postings, ok := e.decode(term)
	if !ok {
		return nil, false
	}
	b := roaring.NewBitmap()
	for _, p := range postings {
		b.Add(uint32(p.DocID))
	}
	return b, true
}

func (e *Engine) verifyContent(docID int, terms []string) bool {
	path, ok := e.documentPath(docID)
	if !ok {
		return false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	lower := text.ToLowerCase(string(content))
	for _, term := range terms {
		if !strings.Contains(lower, term) {
			return false
		}
	}
	return true
}

// BooleanSearch parses and evaluates query per spec.md §4.6.
func (e *Engine) BooleanSearch(query string) []int {
	q := boolq.Parse(query)
	return boolq.Execute(q, e.bitmapLookup, e.verifyContent)
}

// TFIDFSearch scores query per spec.md §4.7 and returns the top
// cfg.TopKResults documents, plus the full ranked result.
func (e *Engine) TFIDFSearch(query string) (top []rank.ScoredDoc, full []rank.ScoredDoc) {
	terms := text.Tokenize(query)
	scores := rank.Score(terms, e.totalDocs, e.decode, e.docLengths.Find)
	full = rank.Rank(scores, e.cfg.MinTfIdfScore)
	top = rank.TopK(scores, e.cfg.MinTfIdfScore, e.cfg.TopKResults)
	return top, full
}

// ZipfReport reports the top cfg.ZipfTopTerms terms by total frequency
// (spec.md §4.7's diagnostic report).
func (e *Engine) ZipfReport() ([]rank.ZipfRow, error) {
	stats, err := rank.TermStatistics(e.invertedIndex.ToMap())
	if err != nil {
		return nil, err
	}
	return rank.ZipfReport(stats, e.cfg.ZipfTopTerms), nil
}

// documentPath resolves docID to its on-disk path under cfg.DataDir.
func (e *Engine) documentPath(docID int) (string, bool) {
	name, ok := e.docNames.Find(docID)
	if !ok {
		return "", false
	}
	return filepath.Join(e.cfg.DataDir, name), true
}

// DisplayName resolves the result-rendering rule from spec.md §6: URL
// if present, else filename, else "[doc_<id>]".
func (e *Engine) DisplayName(docID int) string {
	if url, ok := e.docUrls.Find(docID); ok && url != "" {
		return url
	}
	if name, ok := e.docNames.Find(docID); ok && name != "" {
		return name
	}
	return fmt.Sprintf("[doc_%d]", docID)
}

// TotalDocs reports the document count captured at the last build or
// load (spec.md §3's N used in idf).
func (e *Engine) TotalDocs() int { return e.totalDocs }
