// Package filter reduces a listing of vault entries to the ones a filter set selects.
package filter

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mattsolo1/grove-opener/pkg/match"
	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// clause is one include or exclude rule of a filter set.
type clause struct {
	field string
	value string
	keep  func(e *tree.Entry) bool
}

// Notes returns the documents of entries selected by set, in input order.
// The result never shares its backing array with entries.
// Passing a directory entry is a programming error and panics.
func Notes(set models.NoteFilterSet, entries []*tree.Entry) []*tree.Entry {
	return apply(tree.Document, set.Name, noteClauses(set), entries)
}

// Folders returns the directories of entries selected by set, in input order.
// Passing a document entry is a programming error and panics.
func Folders(set models.FolderFilterSet, entries []*tree.Entry) []*tree.Entry {
	return apply(tree.Directory, set.Name, folderClauses(set), entries)
}

// ExplainNote reports whether set selects entry and, if not, which clause rejected it.
func ExplainNote(set models.NoteFilterSet, entry *tree.Entry) (bool, string) {
	return explain(noteClauses(set), entry)
}

// ExplainFolder reports whether set selects entry and, if not, which clause rejected it.
func ExplainFolder(set models.FolderFilterSet, entry *tree.Entry) (bool, string) {
	return explain(folderClauses(set), entry)
}

func apply(kind tree.Kind, setName string, clauses []clause, entries []*tree.Entry) []*tree.Entry {
	result := make([]*tree.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Kind != kind {
			panic(fmt.Sprintf("filter: %s filter set %q applied to %s %s", kind, setName, e.Kind, e))
		}
		if selects(clauses, e) {
			result = append(result, e)
		}
	}
	return result
}

func selects(clauses []clause, e *tree.Entry) bool {
	for _, c := range clauses {
		if !c.keep(e) {
			return false
		}
	}
	return true
}

func explain(clauses []clause, e *tree.Entry) (bool, string) {
	for _, c := range clauses {
		if !c.keep(e) {
			return false, fmt.Sprintf("rejected by %s %q", c.field, c.value)
		}
	}
	if len(clauses) == 0 {
		return true, "no filters specified"
	}
	return true, "matched all filters"
}

// commonClauses builds the path and name clauses shared by both kinds, in evaluation order:
// include path, include name, exclude path, exclude name.
func commonClauses(includePath, includeName, excludePath, excludeName string) []clause {
	var clauses []clause
	if includePath != "" {
		p := match.Compile(includePath)
		clauses = append(clauses, clause{"include_path_name", includePath, func(e *tree.Entry) bool { return p.Match(e.Path) }})
	}
	if includeName != "" {
		p := match.Compile(includeName)
		clauses = append(clauses, clause{"include_name", includeName, func(e *tree.Entry) bool { return p.Match(e.Name) }})
	}
	if excludePath != "" {
		p := match.Compile(excludePath)
		clauses = append(clauses, clause{"exclude_path_name", excludePath, func(e *tree.Entry) bool { return !p.Match(e.Path) }})
	}
	if excludeName != "" {
		p := match.Compile(excludeName)
		clauses = append(clauses, clause{"exclude_name", excludeName, func(e *tree.Entry) bool { return !p.Match(e.Name) }})
	}
	return clauses
}

func noteClauses(set models.NoteFilterSet) []clause {
	clauses := commonClauses(set.IncludePathName, set.IncludeName, set.ExcludePathName, set.ExcludeName)
	if set.IncludeTags != "" {
		rule := compileTags(set.IncludeTags)
		clauses = append(clauses, clause{"include_tags", set.IncludeTags, rule.satisfiedBy})
	}
	if set.ExcludeTags != "" {
		rule := compileTags(set.ExcludeTags)
		clauses = append(clauses, clause{"exclude_tags", set.ExcludeTags, func(e *tree.Entry) bool { return !rule.touchedBy(e) }})
	}
	return clauses
}

func folderClauses(set models.FolderFilterSet) []clause {
	return commonClauses(set.IncludePathName, set.IncludeName, set.ExcludePathName, set.ExcludeName)
}

// tagRule is either a regular expression tested against each tag or a list of tag prefixes.
type tagRule struct {
	pattern  *match.Pattern
	prefixes []string
}

func compileTags(value string) tagRule {
	items := strings.Split(value, ",")
	if !hashTagList(items) {
		if p := match.Compile(value); p.IsRegexp() {
			return tagRule{pattern: p}
		}
	}
	var prefixes []string
	for _, item := range items {
		if item = normalizeTag(item); item != "" {
			prefixes = append(prefixes, item)
		}
	}
	return tagRule{prefixes: prefixes}
}

// hashTagList reports whether value is a list like "#work,#gym". Such a list
// can also read as a regular expression delimited by '#', but every item
// carrying its own '#' marks it as tags.
func hashTagList(items []string) bool {
	if len(items) < 2 {
		return false
	}
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !strings.HasPrefix(item, "#") {
			return false
		}
	}
	return true
}

// satisfiedBy is the include test: a regex needs one matching tag, a
// prefix list needs every prefix matched by at least one tag.
func (r tagRule) satisfiedBy(e *tree.Entry) bool {
	if r.pattern != nil {
		return anyTag(e.Tags, r.pattern.Match)
	}
	for _, prefix := range r.prefixes {
		if !anyTag(e.Tags, hasPrefix(prefix)) {
			return false
		}
	}
	return true
}

// touchedBy is the exclude test: any matching tag, or any satisfied prefix.
func (r tagRule) touchedBy(e *tree.Entry) bool {
	if r.pattern != nil {
		return anyTag(e.Tags, r.pattern.Match)
	}
	for _, prefix := range r.prefixes {
		if anyTag(e.Tags, hasPrefix(prefix)) {
			return true
		}
	}
	return false
}

func anyTag(tags []string, fn func(string) bool) bool {
	for _, tag := range tags {
		if fn(normalizeTag(tag)) {
			return true
		}
	}
	return false
}

func hasPrefix(prefix string) func(string) bool {
	return func(tag string) bool { return strings.HasPrefix(tag, prefix) }
}

func normalizeTag(tag string) string {
	return norm.NFC.String(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
}
