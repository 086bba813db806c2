package servers

import "slices"

// ActiveSet is the set of server keys considered active (connected or
// enabled) at reconciliation time. The zero value is an empty set.
type ActiveSet struct {
	keys map[string]struct{}
}

// NewActiveSet builds a set from keys. Duplicates collapse.
func NewActiveSet(keys ...string) ActiveSet {
	s := ActiveSet{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
	return s
}

// Contains reports whether key is in the set.
func (s ActiveSet) Contains(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of keys.
func (s ActiveSet) Len() int {
	return len(s.keys)
}

// Keys returns the keys in sorted order.
func (s ActiveSet) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets hold the same keys.
func (s ActiveSet) Equal(other ActiveSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.keys {
		if !other.Contains(k) {
			return false
		}
	}
	return true
}
