package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-opener/pkg/models"
	"github.com/mattsolo1/grove-opener/pkg/picker"
	"github.com/mattsolo1/grove-opener/pkg/resolve"
)

var setsUlog = grovelogging.NewUnifiedLogger("grove-opener.cmd.sets")

// NewSetsCmd creates the `fno sets` command.
func NewSetsCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List configured filter sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := (*app).Settings

			if len(s.NoteFilterSets) == 0 && len(s.FolderFilterSets) == 0 {
				setsUlog.Info("No filter sets configured").
					Pretty("No filter sets configured").
					PrettyOnly().
					Log(ctx)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KIND\tNAME\tFILTERS")
			for _, set := range s.NoteFilterSets {
				fmt.Fprintf(w, "note\t%s\t%s\n", set.Name, describeNoteSet(set))
			}
			for _, set := range s.FolderFilterSets {
				fmt.Fprintf(w, "folder\t%s\t%s\n", set.Name, describeFolderSet(set))
			}
			return w.Flush()
		},
	}
	return cmd
}

type field struct {
	key, value string
}

func describe(fields ...field) string {
	var parts []string
	for _, f := range fields {
		if f.value != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", f.key, f.value))
		}
	}
	return strings.Join(parts, " ")
}

func describeNoteSet(s models.NoteFilterSet) string {
	if s.IsEmpty() {
		return "(everything)"
	}
	return describe(
		field{"include_path_name", s.IncludePathName},
		field{"exclude_path_name", s.ExcludePathName},
		field{"include_name", s.IncludeName},
		field{"exclude_name", s.ExcludeName},
		field{"include_tags", s.IncludeTags},
		field{"exclude_tags", s.ExcludeTags},
	)
}

func describeFolderSet(s models.FolderFilterSet) string {
	if s.IsEmpty() {
		return "(everything)"
	}
	return describe(
		field{"include_path_name", s.IncludePathName},
		field{"exclude_path_name", s.ExcludePathName},
		field{"include_name", s.IncludeName},
		field{"exclude_name", s.ExcludeName},
	)
}

// selectNoteSet returns the named set, or asks the user when no name was
// given and more than one set is configured. With none configured it is an
// error, unless matchAll allows falling back to every note.
func selectNoteSet(ctx context.Context, r *resolve.Resolver, chooser picker.Chooser, args []string, matchAll bool) (models.NoteFilterSet, error) {
	if len(args) > 0 {
		return r.NoteFilterSet(args[0])
	}
	sets := r.NoteFilterSets()
	if len(sets) == 0 && matchAll {
		return models.DefaultNoteFilterSet, nil
	}
	options := make([]picker.Option, len(sets))
	for i, s := range sets {
		options[i] = picker.Option{Label: s.Name, Detail: describeNoteSet(s)}
	}
	i, err := chooseSet(ctx, chooser, "note", options)
	if err != nil {
		return models.NoteFilterSet{}, err
	}
	return sets[i], nil
}

// selectFolderSet is selectNoteSet for folder filter sets. Without any
// configured sets every folder in scope is a candidate.
func selectFolderSet(ctx context.Context, r *resolve.Resolver, chooser picker.Chooser, args []string) (models.FolderFilterSet, error) {
	if len(args) > 0 {
		return r.FolderFilterSet(args[0])
	}
	sets := r.FolderFilterSets()
	if len(sets) == 0 {
		return models.DefaultFolderFilterSet, nil
	}
	options := make([]picker.Option, len(sets))
	for i, s := range sets {
		options[i] = picker.Option{Label: s.Name, Detail: describeFolderSet(s)}
	}
	i, err := chooseSet(ctx, chooser, "folder", options)
	if err != nil {
		return models.FolderFilterSet{}, err
	}
	return sets[i], nil
}

func chooseSet(ctx context.Context, chooser picker.Chooser, kind string, options []picker.Option) (int, error) {
	switch len(options) {
	case 0:
		return -1, fmt.Errorf("no %s filter sets defined", kind)
	case 1:
		return 0, nil
	}
	i, err := chooser.Choose(ctx, fmt.Sprintf("Select a %s filter set", kind), options)
	if err != nil {
		return -1, err
	}
	if i < 0 || i >= len(options) {
		return -1, picker.ErrCancelled
	}
	return i, nil
}

// finish turns a cancelled selection into a silent success.
func finish(err error) error {
	if errors.Is(err, picker.ErrCancelled) {
		return nil
	}
	return err
}
