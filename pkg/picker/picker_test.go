package picker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// scriptedChooser answers each choice with the option whose label matches the
// next scripted answer. An empty answer dismisses the choice.
type scriptedChooser struct {
	answers []string
	shown   [][]string
}

func (c *scriptedChooser) Choose(_ context.Context, _ string, options []Option) (int, error) {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}
	c.shown = append(c.shown, labels)

	if len(c.answers) == 0 {
		return -1, errors.New("unexpected choice")
	}
	answer := c.answers[0]
	c.answers = c.answers[1:]
	if answer == "" {
		return -1, ErrCancelled
	}
	for i, l := range labels {
		if l == answer {
			return i, nil
		}
	}
	return -1, errors.New("answer not offered: " + answer)
}

func docs(ps ...string) []*tree.Entry {
	tr := tree.New()
	out := make([]*tree.Entry, len(ps))
	for i, p := range ps {
		out[i] = tr.AddDocument(p)
	}
	return out
}

func TestFlatFastPaths(t *testing.T) {
	chooser := &scriptedChooser{}
	flat := NewFlat(chooser)

	_, err := flat.Pick(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)

	one := docs("a/b.md")
	got, err := flat.Pick(context.Background(), one)
	require.NoError(t, err)
	assert.Same(t, one[0], got)
	assert.Empty(t, chooser.shown)
}

func TestFlatPresentsLabels(t *testing.T) {
	chooser := &scriptedChooser{answers: []string{"beta/ beta"}}
	candidates := docs("projects/alpha/plan.md", "projects/beta/plan.md")

	got, err := NewFlat(chooser).Pick(context.Background(), candidates)

	require.NoError(t, err)
	assert.Equal(t, "projects/beta/plan.md", got.Path)
	assert.Equal(t, [][]string{{"alpha/ alpha", "beta/ beta"}}, chooser.shown)
}

func TestFlatCancellation(t *testing.T) {
	chooser := &scriptedChooser{answers: []string{""}}

	got, err := NewFlat(chooser).Pick(context.Background(), docs("a/1", "b/2"))

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestRecursiveDrillsDown(t *testing.T) {
	chooser := &scriptedChooser{answers: []string{"a/x"}}

	got, err := NewRecursive(chooser).Pick(context.Background(), docs("a/x/n1", "a/y/n2"))

	require.NoError(t, err)
	assert.Equal(t, "a/x/n1", got.Path)
	assert.Equal(t, [][]string{{"a/x", "a/y"}}, chooser.shown)
}

func TestRecursiveLabelsRootGroup(t *testing.T) {
	tr := tree.New()
	tr.AddDirectory("a")
	tr.AddDirectory("b")
	candidates := []*tree.Entry{tr.Root, tr.Lookup("a"), tr.Lookup("b")}
	chooser := &scriptedChooser{answers: []string{"/"}}

	got, err := NewRecursive(chooser).Pick(context.Background(), candidates)

	require.NoError(t, err)
	assert.Same(t, tr.Root, got)
	assert.Equal(t, [][]string{{"/", "a", "b"}}, chooser.shown)
}

func TestRecursiveMultipleLevels(t *testing.T) {
	chooser := &scriptedChooser{answers: []string{"work", "work/p2", "work/p2/b", "work/p2/b/n4.md"}}
	candidates := docs(
		"home/n1.md",
		"work/p1/n2.md",
		"work/p2/a/n3.md",
		"work/p2/b/n4.md",
		"work/p2/b/n5.md",
	)

	got, err := NewRecursive(chooser).Pick(context.Background(), candidates)

	require.NoError(t, err)
	assert.Equal(t, "work/p2/b/n4.md", got.Path)
	assert.Equal(t, [][]string{
		{"home", "work"},
		{"work/p1", "work/p2"},
		{"work/p2/a", "work/p2/b"},
		{"work/p2/b/n4.md", "work/p2/b/n5.md"},
	}, chooser.shown)
}

func TestRecursiveCancelAtAnyLevelAbortsEverything(t *testing.T) {
	chooser := &scriptedChooser{answers: []string{"work", ""}}
	candidates := docs("home/n1.md", "work/p1/n2.md", "work/p2/n3.md")

	got, err := NewRecursive(chooser).Pick(context.Background(), candidates)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Len(t, chooser.shown, 2)
}

func TestRecursiveFallsBackToFlatWhenPathsNeverSplit(t *testing.T) {
	tr := tree.New()
	doc := tr.AddDocument("a/x.md")
	chooser := &scriptedChooser{answers: []string{"a"}}

	got, err := NewRecursive(chooser).Pick(context.Background(), []*tree.Entry{doc, doc})

	require.NoError(t, err)
	assert.Same(t, doc, got)
	assert.Equal(t, [][]string{{"a", "a"}}, chooser.shown)
}

func TestRecursiveFastPaths(t *testing.T) {
	chooser := &scriptedChooser{}
	r := NewRecursive(chooser)

	_, err := r.Pick(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)

	one := docs("a/b/c.md")
	got, err := r.Pick(context.Background(), one)
	require.NoError(t, err)
	assert.Same(t, one[0], got)
	assert.Empty(t, chooser.shown)
}

func TestRecursiveDoesNotModifyInput(t *testing.T) {
	chooser := &scriptedChooser{answers: []string{"b"}}
	candidates := docs("a/1", "b/2")

	_, err := NewRecursive(chooser).Pick(context.Background(), candidates)

	require.NoError(t, err)
	assert.Equal(t, "a/1", candidates[0].Path)
	assert.Equal(t, "b/2", candidates[1].Path)
}

func TestCancelledContextSkipsChooser(t *testing.T) {
	chooser := &scriptedChooser{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFlat(chooser).Pick(ctx, docs("a/1", "b/2"))

	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, chooser.shown)
}

func TestChooserErrorsAreReturned(t *testing.T) {
	boom := errors.New("terminal went away")
	chooser := ChooserFunc(func(context.Context, string, []Option) (int, error) { return 0, boom })

	_, err := NewFlat(chooser).Pick(context.Background(), docs("a/1", "b/2"))

	assert.ErrorIs(t, err, boom)
}

func TestOutOfRangeAnswerIsCancellation(t *testing.T) {
	chooser := ChooserFunc(func(context.Context, string, []Option) (int, error) { return 7, nil })

	_, err := NewFlat(chooser).Pick(context.Background(), docs("a/1", "b/2"))

	assert.ErrorIs(t, err, ErrCancelled)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"areas/health/log/2024.md", "health/ log"},
		{"projects/alpha/plan.md", "alpha/ alpha"},
		{"projects/Alpha.MD/plan.md", "Alpha.MD/ Alpha"},
		{"inbox/todo.md", "inbox"},
		{"todo.md", "todo.md"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(docs(tt.path)[0]))
		})
	}
}

func TestNewAndModes(t *testing.T) {
	p, err := New(models.PickerRecursive, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PickerRecursive, p.Mode())

	p, err = New("", nil)
	require.NoError(t, err)
	assert.Equal(t, models.PickerFlat, p.Mode())

	_, err = New("sideways", nil)
	assert.Error(t, err)

	modes := Modes()
	require.Len(t, modes, 2)
	assert.Equal(t, models.PickerFlat, modes[0].Mode())
	assert.Equal(t, models.PickerRecursive, modes[1].Mode())
	assert.NotEmpty(t, modes[1].Description())
}
