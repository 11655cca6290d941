// Package resolve turns a filter set into the one document or directory the user meant.
package resolve

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-opener/pkg/filter"
	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// Listing is the host's view of the vault.
type Listing interface {
	Documents() []*tree.Entry
	Lookup(path string) *tree.Entry
}

// Picker asks the user to choose one of several candidates.
type Picker interface {
	Pick(ctx context.Context, candidates []*tree.Entry) (*tree.Entry, error)
}

// Resolver runs the filter, reorder and pick pipeline. It holds no mutable
// state once built, so concurrent resolutions are safe.
type Resolver struct {
	listing    Listing
	picker     Picker
	logger     *logrus.Logger
	noteSets   []models.NoteFilterSet
	folderSets []models.FolderFilterSet
	scope      DirectoryScope
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *logrus.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithNoteFilterSets sets the collection ResolveNoteByName looks names up in.
func WithNoteFilterSets(sets ...models.NoteFilterSet) Option {
	return func(r *Resolver) {
		r.noteSets = append([]models.NoteFilterSet(nil), sets...)
	}
}

// WithFolderFilterSets sets the collection ResolveFolderByName looks names up in.
func WithFolderFilterSets(sets ...models.FolderFilterSet) Option {
	return func(r *Resolver) {
		r.folderSets = append([]models.FolderFilterSet(nil), sets...)
	}
}

// WithDirectoryScope limits folder resolution to part of the vault.
func WithDirectoryScope(scope DirectoryScope) Option {
	return func(r *Resolver) {
		r.scope = scope
	}
}

// New creates a resolver over listing that disambiguates with picker.
func New(listing Listing, picker Picker, opts ...Option) *Resolver {
	r := &Resolver{
		listing: listing,
		picker:  picker,
		scope:   DefaultDirectoryScope,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logrus.New()
		r.logger.SetOutput(io.Discard)
	}
	return r
}

// NewDefaultLogger returns the quiet stderr logger used by the command line.
func NewDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// NoteFilterSets returns a copy of the configured note filter sets.
func (r *Resolver) NoteFilterSets() []models.NoteFilterSet {
	return append([]models.NoteFilterSet(nil), r.noteSets...)
}

// FolderFilterSets returns a copy of the configured folder filter sets.
func (r *Resolver) FolderFilterSets() []models.FolderFilterSet {
	return append([]models.FolderFilterSet(nil), r.folderSets...)
}

// NoteFilterSet looks up a note filter set by name.
func (r *Resolver) NoteFilterSet(name string) (models.NoteFilterSet, error) {
	for _, s := range r.noteSets {
		if s.Name == name {
			return s, nil
		}
	}
	return models.NoteFilterSet{}, &FilterSetNotFoundError{Kind: tree.Document, Name: name}
}

// FolderFilterSet looks up a folder filter set by name.
func (r *Resolver) FolderFilterSet(name string) (models.FolderFilterSet, error) {
	for _, s := range r.folderSets {
		if s.Name == name {
			return s, nil
		}
	}
	return models.FolderFilterSet{}, &FilterSetNotFoundError{Kind: tree.Directory, Name: name}
}

// NoteCandidates returns the documents set selects, with the ones nearest to
// origin moved to the front when more than one matches. origin may be nil.
func (r *Resolver) NoteCandidates(set models.NoteFilterSet, origin *tree.Entry) ([]*tree.Entry, error) {
	candidates := filter.Notes(set, r.listing.Documents())
	log := r.logger.WithFields(logrus.Fields{
		"filter_set": set.Name,
		"candidates": len(candidates),
	})

	if len(candidates) == 0 {
		log.Debug("no documents matched")
		return nil, &NoMatchError{Kind: tree.Document, FilterSet: set.Name}
	}

	if len(candidates) > 1 && origin != nil {
		nearest := Nearest(origin, set)
		candidates = PromoteNearest(candidates, nearest)
		log.WithFields(logrus.Fields{
			"origin":  origin.String(),
			"nearest": len(nearest),
		}).Debug("reordered candidates by proximity")
	}
	return candidates, nil
}

// FolderCandidates returns the directories in scope that set selects.
func (r *Resolver) FolderCandidates(set models.FolderFilterSet) ([]*tree.Entry, error) {
	dirs, err := r.scope.Directories(r.listing)
	if err != nil {
		r.logger.WithField("root", r.scope.Root).Debug("directory scope root is missing")
		return nil, err
	}

	candidates := filter.Folders(set, dirs)
	r.logger.WithFields(logrus.Fields{
		"filter_set": set.Name,
		"in_scope":   len(dirs),
		"candidates": len(candidates),
	}).Debug("filtered directories")

	if len(candidates) == 0 {
		return nil, &NoMatchError{Kind: tree.Directory, FilterSet: set.Name}
	}
	return candidates, nil
}

// ResolveNote picks the one document set selects, asking the user when
// several match. origin is the directory (or document) the user is working
// in and may be nil.
func (r *Resolver) ResolveNote(ctx context.Context, set models.NoteFilterSet, origin *tree.Entry) (*tree.Entry, error) {
	candidates, err := r.NoteCandidates(set, origin)
	if err != nil {
		return nil, err
	}
	return r.choose(ctx, set.Name, candidates)
}

// ResolveNoteByName is ResolveNote for a filter set from the configured collection.
func (r *Resolver) ResolveNoteByName(ctx context.Context, name string, origin *tree.Entry) (*tree.Entry, error) {
	set, err := r.NoteFilterSet(name)
	if err != nil {
		return nil, err
	}
	return r.ResolveNote(ctx, set, origin)
}

// ResolveFolder picks the one directory set selects, asking the user when several match.
func (r *Resolver) ResolveFolder(ctx context.Context, set models.FolderFilterSet) (*tree.Entry, error) {
	candidates, err := r.FolderCandidates(set)
	if err != nil {
		return nil, err
	}
	return r.choose(ctx, set.Name, candidates)
}

// ResolveFolderByName is ResolveFolder for a filter set from the configured collection.
func (r *Resolver) ResolveFolderByName(ctx context.Context, name string) (*tree.Entry, error) {
	set, err := r.FolderFilterSet(name)
	if err != nil {
		return nil, err
	}
	return r.ResolveFolder(ctx, set)
}

func (r *Resolver) choose(ctx context.Context, setName string, candidates []*tree.Entry) (*tree.Entry, error) {
	if len(candidates) == 1 {
		r.logger.WithField("filter_set", setName).Debug("single match, skipping picker")
		return candidates[0], nil
	}

	chosen, err := r.picker.Pick(ctx, candidates)
	if err != nil {
		return nil, err
	}
	if chosen == nil {
		return nil, ErrCancelled
	}
	r.logger.WithFields(logrus.Fields{
		"filter_set": setName,
		"chosen":     chosen.String(),
	}).Debug("picked")
	return chosen, nil
}
