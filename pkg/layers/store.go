package layers

import (
	"os"
	"path/filepath"
)

// Store is an insertion-ordered collection of name/value pairs. It backs
// Environment and Profile, which both persist as one-file-per-entry
// directories.
type Store struct {
	keys   []string
	values map[string]string
}

func (s *Store) Set(key, value string) {
	if s.values == nil {
		s.values = map[string]string{}
	}

	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}

	s.values[key] = value
}

func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *Store) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}

	delete(s.values, key)

	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the entry names in insertion order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Store) Len() int {
	return len(s.keys)
}

// Equal reports whether two stores hold the same entries. Insertion order
// does not participate; a store loaded from disk compares equal to the store
// that wrote it.
func (s *Store) Equal(o *Store) bool {
	if len(s.keys) != len(o.keys) {
		return false
	}

	for k, v := range s.values {
		ov, ok := o.values[k]
		if !ok || ov != v {
			return false
		}
	}

	return true
}

// loadDir populates the store from the regular files directly under dir,
// filename as key and file content as value. Entries are accepted through
// the filter; subdirectories are skipped. A missing dir loads as empty.
func (s *Store) loadDir(dir string, accept func(name string) bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return track(err)
	}

	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}

		if accept != nil && !accept(ent.Name()) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, ent.Name()))
		if err != nil {
			return track(err)
		}

		s.Set(ent.Name(), string(data))
	}

	return nil
}

// writeDir creates dir and writes one file per entry. Existing files are
// overwritten; files without an in-memory entry are left alone.
func (s *Store) writeDir(dir string) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return track(err)
	}

	for _, key := range s.keys {
		err = os.WriteFile(filepath.Join(dir, key), []byte(s.values[key]), 0644)
		if err != nil {
			return track(err)
		}
	}

	return nil
}
