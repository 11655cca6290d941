package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/grove-opener/pkg/tree"
)

func entries(ps ...string) []*tree.Entry {
	tr := tree.New()
	var out []*tree.Entry
	for _, p := range ps {
		out = append(out, tr.AddDocument(p))
	}
	return out
}

func TestDiverge(t *testing.T) {
	tests := []struct {
		name       string
		paths      []string
		start      int
		wantDepth  int
		wantGroups []string
		exhausted  bool
	}{
		{
			name:       "splits at first level",
			paths:      []string{"a/x", "a/y", "b/z"},
			start:      1,
			wantDepth:  1,
			wantGroups: []string{"a", "b"},
		},
		{
			name:       "shared parent splits one level down",
			paths:      []string{"a/x", "a/y"},
			start:      1,
			wantDepth:  2,
			wantGroups: []string{"a/x", "a/y"},
		},
		{
			name:       "groups keep first occurrence order",
			paths:      []string{"p/c/1", "p/a/2", "p/c/3", "p/b/4"},
			start:      1,
			wantDepth:  2,
			wantGroups: []string{"p/c", "p/a", "p/b"},
		},
		{
			name:       "uneven lengths",
			paths:      []string{"a/b/c/d", "a/b/c/e/f"},
			start:      1,
			wantDepth:  4,
			wantGroups: []string{"a/b/c/d", "a/b/c/e"},
		},
		{
			name:       "ancestor path separates at its own length",
			paths:      []string{"a/b", "a/b/c"},
			start:      1,
			wantDepth:  3,
			wantGroups: []string{"a/b", "a/b/c"},
		},
		{
			name:       "start depth is honoured",
			paths:      []string{"a/x", "b/y"},
			start:      2,
			wantDepth:  2,
			wantGroups: []string{"a/x", "b/y"},
		},
		{
			name:       "start depth below one is clamped",
			paths:      []string{"a/x", "b/y"},
			start:      0,
			wantDepth:  1,
			wantGroups: []string{"a", "b"},
		},
		{
			name:       "single entry is exhausted",
			paths:      []string{"a/x"},
			start:      1,
			wantDepth:  2,
			wantGroups: []string{"a/x"},
			exhausted:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Diverge(entries(tt.paths...), tt.start)
			assert.Equal(t, tt.wantDepth, p.Depth)
			assert.Equal(t, tt.wantGroups, p.Groups)
			assert.Equal(t, tt.exhausted, p.Exhausted())
		})
	}
}

func TestDivergeIdenticalPathsIsExhausted(t *testing.T) {
	tr := tree.New()
	doc := tr.AddDocument("a/x")

	p := Diverge([]*tree.Entry{doc, doc}, 1)

	assert.True(t, p.Exhausted())
	assert.Equal(t, 2, p.Depth)
	assert.Equal(t, []string{"a/x"}, p.Groups)
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "a", Prefix("a/b/c", 1))
	assert.Equal(t, "a/b", Prefix("a/b/c", 2))
	assert.Equal(t, "a/b/c", Prefix("a/b/c", 3))
	assert.Equal(t, "a/b/c", Prefix("a/b/c", 10))
	assert.Equal(t, "", Prefix("a/b/c", 0))
}

func TestMembersUsesExactPrefix(t *testing.T) {
	es := entries("a/x/n1", "a/xy/n2", "a/x/n3")

	got := Members(es, 2, "a/x")

	assert.Equal(t, []string{"a/x/n1", "a/x/n3"}, paths(got))
	assert.True(t, InGroup(es[1], 2, "a/xy"))
	assert.False(t, InGroup(es[1], 2, "a/x"))
}

func TestMembersOfAncestorGroup(t *testing.T) {
	es := entries("a/b", "a/b/c")

	assert.Equal(t, []string{"a/b"}, paths(Members(es, 3, "a/b")))
	assert.Equal(t, []string{"a/b/c"}, paths(Members(es, 3, "a/b/c")))
}
