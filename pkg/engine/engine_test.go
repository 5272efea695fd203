package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"textsearch/pkg/config"
)

// newTestEngine builds the spec.md §8 end-to-end fixture corpus under a
// fresh temp directory and returns an initialized, built Engine.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	root := t.TempDir()
	dataDir := filepath.Join(root, "dataset_txt")
	require.NoError(t, os.Mkdir(dataDir, 0o755))

	docs := map[string]string{
		"1.txt": "cat dog",
		"2.txt": "cat cat dog",
		"3.txt": "dog bird",
		"4.txt": "cat bird",
		"5.txt": "bird bird bird",
	}
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644))
	}

	resourcesDir := filepath.Join(root, "resources")
	require.NoError(t, os.Mkdir(resourcesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(resourcesDir, "lemmas.txt"), []byte("running run\n"), 0o644))

	cfg := config.FromConfigDir(root)
	e := New(cfg)
	require.NoError(t, e.Initialize())

	_, err := e.IndexDocuments(0)
	require.NoError(t, err)

	return e
}

func TestInitializeFailsWithoutDictionary(t *testing.T) {
	root := t.TempDir()
	cfg := config.FromConfigDir(root)
	e := New(cfg)
	require.Error(t, e.Initialize())
}

func TestInitializeSucceedsWithMissingUrlsFile(t *testing.T) {
	root := t.TempDir()
	resourcesDir := filepath.Join(root, "resources")
	require.NoError(t, os.Mkdir(resourcesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(resourcesDir, "lemmas.txt"), []byte("a b\n"), 0o644))

	cfg := config.FromConfigDir(root)
	e := New(cfg)
	require.NoError(t, e.Initialize())
}

func TestIndexDocumentsBuildsExpectedStats(t *testing.T) {
	e := newTestEngine(t)
	require.Equal(t, 5, e.TotalDocs())
}

func TestBooleanSearchRequiredExcluded(t *testing.T) {
	e := newTestEngine(t)
	results := e.BooleanSearch("+cat -bird")
	require.Equal(t, []int{1, 2}, results)
}

func TestBooleanSearchOptionalUnion(t *testing.T) {
	e := newTestEngine(t)
	results := e.BooleanSearch("cat dog")
	require.Equal(t, []int{1, 2, 3, 4}, results)
}

func TestTFIDFSearchRanksDocTwoFirst(t *testing.T) {
	e := newTestEngine(t)
	top, _ := e.TFIDFSearch("cat dog")
	require.NotEmpty(t, top)
	require.Equal(t, 2, top[0].DocID)
}

func TestZipfReportOrdersByTotalFrequencyDescending(t *testing.T) {
	e := newTestEngine(t)
	rows, err := e.ZipfReport()
	require.NoError(t, err)
	require.Equal(t, "bird", rows[0].Term)
	require.Equal(t, 5, rows[0].TotalFrequency)
}

func TestSaveAndLoadRoundTripsResults(t *testing.T) {
	e := newTestEngine(t)
	before := e.BooleanSearch("+cat -bird")

	require.NoError(t, e.Save())

	reloaded := New(e.cfg)
	require.NoError(t, reloaded.Initialize())
	require.NoError(t, reloaded.Load())

	after := reloaded.BooleanSearch("+cat -bird")
	require.Equal(t, before, after)

	topBefore, _ := e.TFIDFSearch("cat dog")
	topAfter, _ := reloaded.TFIDFSearch("cat dog")
	require.Equal(t, topBefore, topAfter)
}

func TestLoadMissingIndexIsLoadFailure(t *testing.T) {
	root := t.TempDir()
	resourcesDir := filepath.Join(root, "resources")
	require.NoError(t, os.Mkdir(resourcesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(resourcesDir, "lemmas.txt"), []byte("a b\n"), 0o644))

	cfg := config.FromConfigDir(root)
	e := New(cfg)
	require.NoError(t, e.Initialize())

	require.ErrorIs(t, e.Load(), ErrLoadFailure)
}

func TestDisplayNameFallsBackThroughUrlNameDocId(t *testing.T) {
	e := newTestEngine(t)

	require.Equal(t, "1.txt", e.DisplayName(1))
	require.Equal(t, "[doc_999]", e.DisplayName(999))

	e.docUrls.Insert(1, "https://example.com/cat-dog")
	require.Equal(t, "https://example.com/cat-dog", e.DisplayName(1))
}

func TestIndexDocumentsWithDedupeThresholdReportsStats(t *testing.T) {
	root := t.TempDir()
	dataDir := filepath.Join(root, "dataset_txt")
	require.NoError(t, os.Mkdir(dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "a.txt"), []byte("quantum physics lecture notes"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "b.txt"), []byte("quantum physics lecture notes"), 0o644))

	resourcesDir := filepath.Join(root, "resources")
	require.NoError(t, os.Mkdir(resourcesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(resourcesDir, "lemmas.txt"), []byte("a b\n"), 0o644))

	cfg := config.FromConfigDir(root)
	e := New(cfg)
	require.NoError(t, e.Initialize())

	stats, err := e.IndexDocuments(3)
	require.NoError(t, err)
	require.Len(t, stats.DedupPairs, 1)
	require.Zero(t, stats.DedupPairs[0].Distance)
}
