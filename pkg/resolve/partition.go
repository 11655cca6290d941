package resolve

import (
	"strings"

	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// Partition groups entries by a shared path prefix.
type Partition struct {
	Depth  int      // number of leading path segments each group spans
	Groups []string // distinct prefixes, in order of first occurrence
}

// Exhausted reports whether the entries never split: every path shares every
// prefix up to the longest path.
func (p Partition) Exhausted() bool {
	return len(p.Groups) <= 1
}

// Diverge finds the shallowest depth, starting at startDepth, at which the
// entries' path prefixes form more than one group. When no such depth exists
// the partition at the longest path's depth is returned, holding one group.
// Callers only need this for two or more entries.
func Diverge(entries []*tree.Entry, startDepth int) Partition {
	if startDepth < 1 {
		startDepth = 1
	}

	longest := 0
	for _, e := range entries {
		if n := len(e.Segments()); n > longest {
			longest = n
		}
	}

	depth := startDepth
	for {
		groups := distinctPrefixes(entries, depth)
		if len(groups) > 1 || depth >= longest {
			return Partition{Depth: depth, Groups: groups}
		}
		depth++
	}
}

// Prefix truncates a path to its first depth segments.
func Prefix(path string, depth int) string {
	segments := tree.Split(path)
	if depth < len(segments) {
		segments = segments[:depth]
	}
	return strings.Join(segments, "/")
}

// InGroup reports whether entry belongs to group of a partition at depth.
func InGroup(entry *tree.Entry, depth int, group string) bool {
	return Prefix(entry.Path, depth) == group
}

// Members returns the entries that belong to group, in input order.
func Members(entries []*tree.Entry, depth int, group string) []*tree.Entry {
	var members []*tree.Entry
	for _, e := range entries {
		if InGroup(e, depth, group) {
			members = append(members, e)
		}
	}
	return members
}

func distinctPrefixes(entries []*tree.Entry, depth int) []string {
	seen := make(map[string]bool)
	var groups []string
	for _, e := range entries {
		p := Prefix(e.Path, depth)
		if !seen[p] {
			seen[p] = true
			groups = append(groups, p)
		}
	}
	return groups
}
