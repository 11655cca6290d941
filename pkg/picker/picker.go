// Package picker resolves a set of candidates to the single entry the user wants.
package picker

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/resolve"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

var (
	// ErrCancelled is returned when the user dismisses a choice.
	ErrCancelled = resolve.ErrCancelled

	// ErrNoCandidates is returned when asked to pick from nothing.
	ErrNoCandidates = errors.New("no candidates to pick from")
)

// Picker presents candidates to the user and returns the chosen one.
// One candidate is returned without interaction.
type Picker interface {
	Mode() models.PickerMode
	Description() string
	Pick(ctx context.Context, candidates []*tree.Entry) (*tree.Entry, error)
}

// Option is one line of a choice.
type Option struct {
	Label  string
	Detail string
}

// FilterValue is the text the user's search is matched against.
func (o Option) FilterValue() string {
	if o.Detail == "" {
		return o.Label
	}
	return o.Label + " " + o.Detail
}

// Chooser is the single-list selection widget: it shows options and returns
// the index of the one selected, or ErrCancelled.
type Chooser interface {
	Choose(ctx context.Context, prompt string, options []Option) (int, error)
}

// ChooserFunc adapts a function to the Chooser interface.
type ChooserFunc func(ctx context.Context, prompt string, options []Option) (int, error)

// Choose calls f.
func (f ChooserFunc) Choose(ctx context.Context, prompt string, options []Option) (int, error) {
	return f(ctx, prompt, options)
}

// New builds the picker for mode.
func New(mode models.PickerMode, chooser Chooser) (Picker, error) {
	switch mode {
	case models.PickerFlat, "":
		return NewFlat(chooser), nil
	case models.PickerRecursive:
		return NewRecursive(chooser), nil
	default:
		return nil, fmt.Errorf("unknown picker mode %q", mode)
	}
}

// Modes lists the available picker modes with their descriptions.
func Modes() []Picker {
	return []Picker{NewFlat(nil), NewRecursive(nil)}
}

// choose runs one choice and validates the answer.
func choose(ctx context.Context, chooser Chooser, prompt string, options []Option) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, ErrCancelled
	}
	index, err := chooser.Choose(ctx, prompt, options)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return -1, ErrCancelled
		}
		return -1, err
	}
	if index < 0 || index >= len(options) {
		return -1, ErrCancelled
	}
	return index, nil
}
