package predict

import (
	"strings"

	"github.com/oakwood-commons/pilltag/internal/tagtext"
)

// Set is the suggestion pool a tag predicts from. Entries keep the casing they
// were stored with and are unique by exact string equality. Insertion order is
// kept only to make Values stable; prediction never depends on it.
type Set struct {
	values []string
	index  map[string]struct{}
}

// NewSet creates a set seeded with the given suggestions.
func NewSet(seed ...string) *Set {
	s := &Set{}
	s.Replace(seed)
	return s
}

// Replace swaps the whole pool for values. Duplicates and blank entries are dropped;
// the remaining strings are stored verbatim.
func (s *Set) Replace(values []string) {
	s.values = make([]string, 0, len(values))
	s.index = make(map[string]struct{}, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		s.insert(v)
	}
}

// Add title-cases the trimmed value and inserts it when it is new.
// It reports whether the pool grew.
func (s *Set) Add(value string) bool {
	value = tagtext.TitleCase(strings.TrimSpace(value))
	if value == "" {
		return false
	}
	return s.insert(value)
}

func (s *Set) insert(v string) bool {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.values = append(s.values, v)
	return true
}

// Contains reports whether v is stored exactly as given.
func (s *Set) Contains(v string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[v]
	return ok
}

// Len returns the number of stored suggestions.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns a copy of the stored suggestions.
func (s *Set) Values() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.values...)
}

// Suggestions implements Source.
func (s *Set) Suggestions() []string {
	if s == nil {
		return nil
	}
	return s.values
}
