package servers

import "github.com/google/go-cmp/cmp"

// Update pairs the previous and current version of a descriptor.
type Update struct {
	Old Descriptor
	New Descriptor
}

// Changes describes how a reconciled list moved between two refreshes.
type Changes struct {
	Added   []Descriptor
	Updated []Update
	Removed []Descriptor
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Updated) == 0 && len(c.Removed) == 0
}

// Diff compares two lists by Key. Added and Updated follow the order of
// next, Removed follows the order of prev. When a key repeats, the first
// occurrence is the one compared.
func Diff(prev, next []Descriptor) Changes {
	prevByKey := firstByKey(prev)
	nextByKey := firstByKey(next)

	var changes Changes
	seen := make(map[string]struct{}, len(next))
	for _, d := range next {
		if _, dup := seen[d.Key]; dup {
			continue
		}
		seen[d.Key] = struct{}{}

		old, ok := prevByKey[d.Key]
		switch {
		case !ok:
			changes.Added = append(changes.Added, d)
		case !cmp.Equal(old, d):
			changes.Updated = append(changes.Updated, Update{Old: old, New: d})
		}
	}

	seen = make(map[string]struct{}, len(prev))
	for _, d := range prev {
		if _, dup := seen[d.Key]; dup {
			continue
		}
		seen[d.Key] = struct{}{}

		if _, ok := nextByKey[d.Key]; !ok {
			changes.Removed = append(changes.Removed, d)
		}
	}

	return changes
}

func firstByKey(list []Descriptor) map[string]Descriptor {
	m := make(map[string]Descriptor, len(list))
	for _, d := range list {
		if _, ok := m[d.Key]; !ok {
			m[d.Key] = d
		}
	}
	return m
}
