package engine

import "strings"

// IgnoreSet holds table names excluded from cloning. Matching is exact-string
// membership; the set is immutable once built.
type IgnoreSet map[string]struct{}

// ParseIgnoreSet builds an IgnoreSet from a comma-separated list of table
// names. Whitespace around entries is trimmed and empty entries are dropped.
func ParseIgnoreSet(raw string) IgnoreSet {
	set := make(IgnoreSet)
	for _, entry := range strings.Split(raw, ",") {
		name := strings.TrimSpace(entry)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

func (s IgnoreSet) Contains(table string) bool {
	_, ok := s[table]
	return ok
}
