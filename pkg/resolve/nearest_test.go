package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

func paths(entries []*tree.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestNearestReturnsSiblingsLastDiscoveredFirst(t *testing.T) {
	tr := tree.New()
	tr.AddDocument("a/b/n1")
	tr.AddDocument("a/b/n2")
	tr.AddDocument("a/m")

	got := Nearest(tr.Lookup("a/b"), models.DefaultNoteFilterSet)

	assert.Equal(t, []string{"a/b/n2", "a/b/n1"}, paths(got))
}

func TestNearestClimbsToParent(t *testing.T) {
	tr := tree.New()
	tr.AddDocument("a/b/other")
	tr.AddDocument("a/m")
	tr.AddDocument("z/m")

	got := Nearest(tr.Lookup("a/b"), models.NoteFilterSet{IncludeName: "m"})

	assert.Equal(t, []string{"a/m"}, paths(got))
}

func TestNearestClimbsToRoot(t *testing.T) {
	tr := tree.New()
	tr.AddDocument("index.md")
	tr.AddDocument("a/b/c/deep.md")

	got := Nearest(tr.Lookup("a/b/c"), models.NoteFilterSet{IncludeName: "index"})

	assert.Equal(t, []string{"index.md"}, paths(got))
}

func TestNearestNoMatchAnywhere(t *testing.T) {
	tr := tree.New()
	tr.AddDocument("a/b/n1")

	assert.Empty(t, Nearest(tr.Lookup("a/b"), models.NoteFilterSet{IncludeName: "missing"}))
}

func TestNearestNilOrigin(t *testing.T) {
	assert.Empty(t, Nearest(nil, models.DefaultNoteFilterSet))
}

func TestNearestFromDocumentOrigin(t *testing.T) {
	tr := tree.New()
	current := tr.AddDocument("a/b/current.md")
	tr.AddDocument("a/b/sibling.md")

	got := Nearest(current, models.NoteFilterSet{IncludeName: "sibling"})

	assert.Equal(t, []string{"a/b/sibling.md"}, paths(got))
}

func TestNearestIgnoresSubdirectories(t *testing.T) {
	tr := tree.New()
	tr.AddDocument("a/sub/n1")
	tr.AddDocument("n0")

	got := Nearest(tr.Lookup("a"), models.DefaultNoteFilterSet)

	assert.Equal(t, []string{"n0"}, paths(got))
}

func TestPromoteNearest(t *testing.T) {
	tr := tree.New()
	c1 := tr.AddDocument("x/1")
	c2 := tr.AddDocument("x/2")
	c3 := tr.AddDocument("y/3")
	c4 := tr.AddDocument("y/4")
	stray := tr.AddDocument("z/stray")
	candidates := []*tree.Entry{c1, c2, c3, c4}

	got := PromoteNearest(candidates, []*tree.Entry{c4, stray, c3})

	assert.Equal(t, []string{"y/4", "y/3", "x/1", "x/2"}, paths(got))
	require.Len(t, candidates, 4)
	assert.Equal(t, []string{"x/1", "x/2", "y/3", "y/4"}, paths(candidates), "input must not be modified")
}

func TestPromoteNearestWithNothingNear(t *testing.T) {
	tr := tree.New()
	candidates := []*tree.Entry{tr.AddDocument("x/1"), tr.AddDocument("x/2")}

	assert.Equal(t, []string{"x/1", "x/2"}, paths(PromoteNearest(candidates, nil)))
}
