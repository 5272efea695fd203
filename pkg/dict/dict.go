// Package dict loads the lemma dictionary named in spec.md §4.8 / §9's
// Open Question. Per the chosen decision (b), the dictionary is loaded
// and its size validated at Initialize, but it is never consulted by
// pkg/boolq or pkg/rank: the mapping it defines is inert.
package dict

import (
	"errors"
	"os"

	"textsearch/pkg/store"
)

// ErrMissingDictionary is returned when the dictionary file is absent
// or empty, matching spec.md §7's MissingDictionary error kind.
var ErrMissingDictionary = errors.New("dict: dictionary file absent or empty")

// Dictionary is the loaded lemma table. It is kept only so its size can
// be reported; no lookup method is exposed on the retrieval path.
type Dictionary struct {
	entries map[string]string
}

// Size returns the number of loaded <key, value> entries.
func (d Dictionary) Size() int { return len(d.entries) }

// Load reads the dictionary file at path. A missing or empty dictionary
// is a hard initialization failure per spec.md §7.
func Load(path string) (Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dictionary{}, ErrMissingDictionary
	}
	defer f.Close()

	entries, err := store.ReadDictionary(f)
	if err != nil {
		return Dictionary{}, err
	}
	if len(entries) == 0 {
		return Dictionary{}, ErrMissingDictionary
	}
	return Dictionary{entries: entries}, nil
}
