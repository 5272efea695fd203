package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvertedIndexRoundTrip(t *testing.T) {
	index := map[string][]byte{
		"cat":  {1, 2, 3},
		"dog":  {4, 5},
		"bird": {},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInvertedIndex(&buf, index))

	got, err := ReadInvertedIndex(&buf)
	require.NoError(t, err)
	require.Equal(t, index, got)
}

func TestInvertedIndexEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInvertedIndex(&buf, map[string][]byte{}))
	require.Zero(t, buf.Len())

	got, err := ReadInvertedIndex(&buf)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestInvertedIndexTruncatedRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInvertedIndex(&buf, map[string][]byte{"cat": {1, 2, 3}}))

	truncated := buf.Bytes()[:buf.Len()-1]
	_, err := ReadInvertedIndex(bytes.NewReader(truncated))
	require.ErrorIs(t, err, ErrTruncatedRecord)
}

func TestDocLengthsRoundTrip(t *testing.T) {
	lengths := map[int]int{1: 5, 2: 0, 3: 12}

	var buf bytes.Buffer
	require.NoError(t, WriteDocLengths(&buf, lengths))

	got, err := ReadDocLengths(&buf)
	require.NoError(t, err)
	require.Equal(t, lengths, got)
}

func TestDocNamesWithSpaces(t *testing.T) {
	names := map[int]string{1: "my document.txt", 2: "plain.txt"}

	var buf bytes.Buffer
	require.NoError(t, WriteDocNames(&buf, names))

	got, err := ReadDocNames(&buf)
	require.NoError(t, err)
	require.Equal(t, names, got)
}

func TestDocUrlsTrimsLeadingWhitespace(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("1    https://example.com/a\n")
	buf.WriteString("2 https://example.com/b\n")
	buf.WriteString("\n")

	got, err := ReadDocUrls(&buf)
	require.NoError(t, err)
	require.Equal(t, map[int]string{
		1: "https://example.com/a",
		2: "https://example.com/b",
	}, got)
}

func TestReadDictionaryLowercases(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("Running RUN\nCATS Cat\n")

	got, err := ReadDictionary(&buf)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"running": "run",
		"cats":    "cat",
	}, got)
}
