package store

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"textsearch/pkg/text"
)

// WriteDocLengths writes "<docId> <length>" lines, one per entry.
func WriteDocLengths(w io.Writer, lengths map[int]int) error {
	bw := bufio.NewWriter(w)
	for _, id := range sortedIntKeys(lengths) {
		if _, err := fmt.Fprintf(bw, "%d %d\n", id, lengths[id]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDocLengths parses whitespace-delimited "<docId> <length>" pairs
// until EOF.
func ReadDocLengths(r io.Reader) (map[int]int, error) {
	lengths := map[int]int{}
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	for {
		id, ok, err := nextInt(sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		length, ok, err := nextInt(sc)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		lengths[id] = length
	}

	return lengths, nil
}

// WriteDocNames writes "<docId> <filename>" lines. The filename may
// itself contain spaces, so it is always the remainder of the line.
func WriteDocNames(w io.Writer, names map[int]string) error {
	bw := bufio.NewWriter(w)
	for _, id := range sortedIntKeys(names) {
		if _, err := fmt.Fprintf(bw, "%d %s\n", id, names[id]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDocNames reads the integer docId, skips whitespace, and takes the
// remainder of the line as the filename. Lines with an empty filename
// are skipped.
func ReadDocNames(r io.Reader) (map[int]string, error) {
	names := map[int]string{}
	sc := bufio.NewScanner(r)

	for sc.Scan() {
		line := sc.Text()
		id, rest, ok := splitIDAndRest(line)
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			continue
		}
		names[id] = rest
	}

	return names, sc.Err()
}

// WriteDocUrls writes "<docId> <url>" lines in the same "integer then
// rest-of-line" shape as WriteDocNames.
func WriteDocUrls(w io.Writer, urls map[int]string) error {
	bw := bufio.NewWriter(w)
	for _, id := range sortedIntKeys(urls) {
		if _, err := fmt.Fprintf(bw, "%d %s\n", id, urls[id]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDocUrls parses "<docId> <url>" lines, trimming leading whitespace
// from the URL. Empty lines are skipped.
func ReadDocUrls(r io.Reader) (map[int]string, error) {
	urls := map[int]string{}
	sc := bufio.NewScanner(r)

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		id, rest, ok := splitIDAndRest(line)
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, " \t")
		urls[id] = rest
	}

	return urls, sc.Err()
}

// ReadDictionary parses "<key> <value>" lines, lowercasing both sides
// with the analyzer's code-point case fold. spec.md §4.8 documents this
// dictionary as loaded but not consulted by retrieval.
func ReadDictionary(r io.Reader) (map[string]string, error) {
	dict := map[string]string{}
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	for sc.Scan() {
		k := sc.Text()
		if !sc.Scan() {
			break
		}
		v := sc.Text()
		dict[text.ToLowerCase(k)] = text.ToLowerCase(v)
	}

	return dict, sc.Err()
}

func nextInt(sc *bufio.Scanner) (int, bool, error) {
	if !sc.Scan() {
		return 0, false, sc.Err()
	}
	n, err := strconv.Atoi(sc.Text())
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func splitIDAndRest(line string) (int, string, bool) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	j := i
	for j < len(line) && line[j] >= '0' && line[j] <= '9' {
		j++
	}
	if j == i {
		return 0, "", false
	}
	id, err := strconv.Atoi(line[i:j])
	if err != nil {
		return 0, "", false
	}
	return id, line[j:], true
}

func sortedIntKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
