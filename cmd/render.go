package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disiqueira/gotree/v3"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// renderList numbers entries in candidate order.
func renderList(entries []*tree.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		icon := theme.IconNote
		if e.IsDir() {
			icon = theme.IconFolder
		}
		fmt.Fprintf(&b, "%3d  %s %s\n", i+1, icon, e.String())
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// visualTree lays slash paths out as a tree below the vault root.
type visualTree struct {
	root gotree.Tree
	dirs map[string]gotree.Tree
}

func newVisualTree(rootLabel string) *visualTree {
	return &visualTree{root: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t *visualTree) dir(segments []string) gotree.Tree {
	if len(segments) == 0 {
		return t.root
	}
	key := strings.Join(segments, "/")
	node, ok := t.dirs[key]
	if !ok {
		node = t.dir(segments[:len(segments)-1]).Add(segments[len(segments)-1] + "/")
		t.dirs[key] = node
	}
	return node
}

func (t *visualTree) insert(e *tree.Entry) {
	segments := e.Segments()
	if e.IsDir() {
		t.dir(segments)
		return
	}
	if len(segments) == 0 {
		return
	}
	t.dir(segments[:len(segments)-1]).Add(segments[len(segments)-1])
}

// renderTree draws entries as a tree of their paths.
func renderTree(rootLabel string, entries []*tree.Entry) string {
	vt := newVisualTree(rootLabel)
	for _, e := range entries {
		vt.insert(e)
	}
	return strings.TrimSuffix(vt.root.Print(), "\n")
}

var (
	keptStyle    = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Green).Bold(true)
	droppedStyle = lipgloss.NewStyle().Foreground(theme.DefaultTheme.Colors.Red)
)

type verdict struct {
	entry    *tree.Entry
	selected bool
	reason   string
}

// renderVerdicts shows why each entry was kept or dropped.
func renderVerdicts(verdicts []verdict) string {
	var b strings.Builder
	for _, v := range verdicts {
		mark := droppedStyle.Render("✗")
		if v.selected {
			mark = keptStyle.Render("✓")
		}
		fmt.Fprintf(&b, "%s %s  %s\n", mark, v.entry.String(), theme.DefaultTheme.Muted.Render(v.reason))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
