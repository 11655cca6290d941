package resolve

import (
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// DirectoryScope limits which directories folder resolution considers.
type DirectoryScope struct {
	// Root is the vault-relative directory to search below; "" and "/" mean the vault root.
	Root string
	// Depth selects directories exactly this many levels below Root. A
	// negative depth selects every level.
	Depth int
	// IncludeRoots also selects the shallower levels, Root itself included.
	IncludeRoots bool
}

// DefaultDirectoryScope selects every directory in the vault.
var DefaultDirectoryScope = DirectoryScope{Root: "/", Depth: -1}

// Directories lists the directories in scope, depth-first in discovery order.
func (s DirectoryScope) Directories(listing Listing) ([]*tree.Entry, error) {
	root := listing.Lookup(s.Root)
	if root == nil || !root.IsDir() {
		return nil, &MissingRootError{Root: s.Root}
	}

	var dirs []*tree.Entry
	var walk func(dir *tree.Entry, level int)
	walk = func(dir *tree.Entry, level int) {
		if s.selects(level) {
			dirs = append(dirs, dir)
		}
		if s.Depth >= 0 && level >= s.Depth {
			return
		}
		for _, child := range dir.Children {
			if child.IsDir() {
				walk(child, level+1)
			}
		}
	}
	walk(root, 0)
	return dirs, nil
}

func (s DirectoryScope) selects(level int) bool {
	switch {
	case s.Depth < 0:
		return level > 0 || s.IncludeRoots
	case s.IncludeRoots:
		return level <= s.Depth
	default:
		return level == s.Depth
	}
}
