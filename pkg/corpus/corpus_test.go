package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"textsearch/pkg/vbyte"
)

// writeCorpus creates files[name]=content under a fresh temp directory
// and returns its path.
func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestBuildFromDirEndToEndScenario(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"1.txt": "cat dog",
		"2.txt": "cat cat dog",
		"3.txt": "dog bird",
		"4.txt": "cat bird",
		"5.txt": "bird bird bird",
	})

	result, err := BuildFromDir(dir)
	require.NoError(t, err)
	require.Equal(t, 5, result.TotalDocs)
	require.Len(t, result.DocLengths, 5)

	byName := map[string]int{}
	for id, name := range result.DocNames {
		byName[name] = id
	}

	expectedLengths := map[string]int{
		"1.txt": 2, "2.txt": 3, "3.txt": 2, "4.txt": 2, "5.txt": 3,
	}
	for name, wantLen := range expectedLengths {
		id, ok := byName[name]
		require.True(t, ok, name)
		require.Equal(t, wantLen, result.DocLengths[id])
	}

	dfAndTotal := func(term string) (df, total int) {
		data, ok := result.InvertedIndex[term]
		require.True(t, ok, term)
		postings, err := vbyte.Decompress(data)
		require.NoError(t, err)
		df = len(postings)
		for _, p := range postings {
			total += p.Freq
		}
		return
	}

	df, total := dfAndTotal("cat")
	require.Equal(t, 3, df)
	require.Equal(t, 4, total)

	df, total = dfAndTotal("dog")
	require.Equal(t, 3, df)
	require.Equal(t, 3, total)

	df, total = dfAndTotal("bird")
	require.Equal(t, 3, df)
	require.Equal(t, 5, total)
}

func TestBuildFromDirIgnoresNonTxtFiles(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"a.txt": "hello world",
		"b.md":  "not indexed",
	})

	result, err := BuildFromDir(dir)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalDocs)
}

func TestBuildFromDirEmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	result, err := BuildFromDir(dir)
	require.NoError(t, err)
	require.Equal(t, 0, result.TotalDocs)
	require.Empty(t, result.InvertedIndex)
	require.Empty(t, result.DocLengths)
}

func TestBuildFromDirDocumentOfOnlySeparators(t *testing.T) {
	dir := writeCorpus(t, map[string]string{
		"empty.txt": "!!! ...   ,,,",
	})

	result, err := BuildFromDir(dir)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalDocs)
	for _, length := range result.DocLengths {
		require.Zero(t, length)
	}
	require.Empty(t, result.InvertedIndex)
}

func TestProcessDocumentMissingFileStillAdvancesDocID(t *testing.T) {
	stats := ProcessDocument("/nonexistent/path/does-not-exist.txt", 7)
	require.Equal(t, 7, stats.DocID)
	require.Equal(t, "does-not-exist.txt", stats.Filename)
	require.Zero(t, stats.WordCount)
}
