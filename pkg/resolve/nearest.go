package resolve

import (
	"github.com/mattsolo1/grove-opener/pkg/filter"
	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// Nearest finds the documents selected by set that sit closest to origin.
// It tests the documents directly inside origin and climbs one directory at a
// time until some match; matches come back last-discovered first. A document
// origin starts the search from its parent directory. A nil origin, or a
// climb that reaches past the root without a match, yields nothing.
func Nearest(origin *tree.Entry, set models.NoteFilterSet) []*tree.Entry {
	for dir := origin.Dir(); dir != nil; dir = dir.Parent {
		matches := filter.Notes(set, dir.Documents())
		if len(matches) == 0 {
			continue
		}
		for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
			matches[i], matches[j] = matches[j], matches[i]
		}
		return matches
	}
	return nil
}

// PromoteNearest moves every entry of nearest that is present in candidates to
// the front, in nearest order. The remaining candidates keep their relative
// order. candidates is not modified.
func PromoteNearest(candidates, nearest []*tree.Entry) []*tree.Entry {
	present := make(map[*tree.Entry]bool, len(candidates))
	for _, c := range candidates {
		present[c] = true
	}

	result := make([]*tree.Entry, 0, len(candidates))
	moved := make(map[*tree.Entry]bool, len(nearest))
	for _, n := range nearest {
		if present[n] && !moved[n] {
			moved[n] = true
			result = append(result, n)
		}
	}
	for _, c := range candidates {
		if !moved[c] {
			result = append(result, c)
		}
	}
	return result
}
