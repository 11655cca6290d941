package picker

import (
	"context"

	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// Flat shows every candidate in one searchable list.
type Flat struct {
	chooser Chooser
}

// NewFlat creates a flat picker.
func NewFlat(chooser Chooser) *Flat {
	return &Flat{chooser: chooser}
}

func (*Flat) Mode() models.PickerMode { return models.PickerFlat }

func (*Flat) Description() string {
	return "Display every match at once, labelled by its top folder and parent folder"
}

// Pick returns the only candidate directly, or asks the user to choose.
func (f *Flat) Pick(ctx context.Context, candidates []*tree.Entry) (*tree.Entry, error) {
	switch len(candidates) {
	case 0:
		return nil, ErrNoCandidates
	case 1:
		return candidates[0], nil
	}

	index, err := choose(ctx, f.chooser, "Select an entry", options(candidates))
	if err != nil {
		return nil, err
	}
	return candidates[index], nil
}
