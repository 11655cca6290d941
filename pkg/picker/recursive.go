package picker

import (
	"context"
	"fmt"

	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/resolve"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// Recursive narrows the candidates one directory level at a time: the user
// picks the folder that separates them, then the next one below it, until a
// single candidate remains.
type Recursive struct {
	chooser Chooser
	flat    *Flat
}

// NewRecursive creates a recursive picker.
func NewRecursive(chooser Chooser) *Recursive {
	return &Recursive{chooser: chooser, flat: NewFlat(chooser)}
}

func (*Recursive) Mode() models.PickerMode { return models.PickerRecursive }

func (*Recursive) Description() string {
	return "Choose a top level folder and then between any subfolders, as often as needed"
}

// Pick drills down until one candidate remains. Dismissing any level cancels the whole pick.
func (r *Recursive) Pick(ctx context.Context, candidates []*tree.Entry) (*tree.Entry, error) {
	if len(candidates) < 2 {
		return r.flat.Pick(ctx, candidates)
	}

	remaining := append([]*tree.Entry(nil), candidates...)
	depth := 1
	for len(remaining) > 1 {
		part := resolve.Diverge(remaining, depth)
		if part.Exhausted() {
			return r.flat.Pick(ctx, remaining)
		}

		groups := make([]Option, len(part.Groups))
		for i, g := range part.Groups {
			groups[i] = Option{Label: groupLabel(g), Detail: countLabel(len(resolve.Members(remaining, part.Depth, g)))}
		}

		index, err := choose(ctx, r.chooser, "Select a folder", groups)
		if err != nil {
			return nil, err
		}
		remaining = resolve.Members(remaining, part.Depth, part.Groups[index])
		depth = part.Depth
	}
	return remaining[0], nil
}

// groupLabel names a group by its path prefix; the vault root has an empty one.
func groupLabel(prefix string) string {
	if prefix == "" {
		return "/"
	}
	return prefix
}

func countLabel(n int) string {
	if n == 1 {
		return "1 match"
	}
	return fmt.Sprintf("%d matches", n)
}
