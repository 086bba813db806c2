// Package servers holds the MCP server descriptor model and the
// reconciliation of a builtin catalog with user overrides.
package servers

// Reconcile merges the builtin catalog with user overrides.
//
// The result starts as a copy of catalog. Each override, in order, gets
// IsActive set from active and then replaces the first entry with the same
// key, or is appended when no entry has that key. Replacement is whole:
// the override's fields win, nothing is merged field by field.
//
// Catalog entries that are not overridden are passed through with the
// IsActive value the catalog supplied.
//
// Neither input slice is modified and the result shares no slices or maps
// with them. The result is never nil.
func Reconcile(catalog, overrides []Descriptor, active ActiveSet) []Descriptor {
	result := make([]Descriptor, 0, len(catalog)+len(overrides))

	// index holds the first position of each key seen so far
	index := make(map[string]int, len(catalog)+len(overrides))
	for _, d := range catalog {
		if _, ok := index[d.Key]; !ok {
			index[d.Key] = len(result)
		}
		result = append(result, d.Clone())
	}

	for _, o := range overrides {
		d := o.Clone()
		d.IsActive = active.Contains(d.Key)

		if i, ok := index[d.Key]; ok {
			result[i] = d
			continue
		}
		index[d.Key] = len(result)
		result = append(result, d)
	}

	return result
}
