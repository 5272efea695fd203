// Package store implements the on-disk formats of spec.md §4.5: the
// binary inverted-index file and the text document-metadata files,
// adapted from the teacher's length-prefixed ByteWriter/ByteReader idiom
// (pkg/indexer/binary.go) to spec.md's exact little-endian u32 wire
// format.
package store

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
)

// ErrTruncatedRecord is returned when the inverted-index file ends in
// the middle of a record.
var ErrTruncatedRecord = errors.New("store: truncated inverted-index record")

// WriteInvertedIndex writes index as a concatenation of
// u32 termLen | term bytes | u32 dataLen | data bytes records,
// little-endian, with no header, count, or checksum. Terms are written
// in sorted order so the file is byte-for-byte reproducible across
// builds; spec.md leaves iteration order unspecified, so readers must
// not depend on this.
func WriteInvertedIndex(w io.Writer, index map[string][]byte) error {
	bw := bufio.NewWriter(w)

	terms := make([]string, 0, len(index))
	for term := range index {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		if err := writeRecord(bw, term, index[term]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeRecord(w io.Writer, term string, data []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(term))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, term); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(data))); err != nil {
		return err
	}
	if len(data) > 0 {
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// ReadInvertedIndex reads records written by WriteInvertedIndex until
// EOF. A truncated trailing record is reported as ErrTruncatedRecord.
func ReadInvertedIndex(r io.Reader) (map[string][]byte, error) {
	br := bufio.NewReader(r)
	index := map[string][]byte{}

	for {
		term, data, err := readRecord(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		index[term] = data
	}

	return index, nil
}

func readRecord(r *bufio.Reader) (string, []byte, error) {
	var termLen uint32
	if err := binary.Read(r, binary.LittleEndian, &termLen); err != nil {
		if err == io.EOF {
			return "", nil, io.EOF
		}
		return "", nil, fmt.Errorf("%w: %v", ErrTruncatedRecord, err)
	}

	termBytes := make([]byte, termLen)
	if _, err := io.ReadFull(r, termBytes); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTruncatedRecord, err)
	}

	var dataLen uint32
	if err := binary.Read(r, binary.LittleEndian, &dataLen); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTruncatedRecord, err)
	}

	data := make([]byte, dataLen)
	if dataLen > 0 {
		if _, err := io.ReadFull(r, data); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrTruncatedRecord, err)
		}
	}

	return string(termBytes), data, nil
}
