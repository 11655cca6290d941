package cmd

import (
	"context"
	"fmt"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-opener/pkg/tree"
	"github.com/mattsolo1/grove-opener/pkg/vault"
)

var noteUlog = grovelogging.NewUnifiedLogger("grove-opener.cmd.note")

// NewNoteCmd creates the `fno note` command.
func NewNoteCmd(app **App) *cobra.Command {
	var (
		from string
		open bool
	)

	cmd := &cobra.Command{
		Use:   "note [filter-set]",
		Short: "Resolve a filter set to a single note",
		Long: `Resolve a note filter set to a single note and print its path.

Notes next to --from are offered first. When several notes match, the
configured picker asks which one you meant.

Examples:
  fno note daily                       # Print the daily note
  fno note project --from work/alpha   # Prefer notes in work/alpha
  fno note --open                      # Choose a filter set, then open the note`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a := *app

			listing, err := a.Listing(ctx)
			if err != nil {
				return err
			}
			r, err := a.Resolver(listing, a.Scope())
			if err != nil {
				return err
			}

			origin, err := locateOrigin(listing, a.Settings.Vault, from)
			if err != nil {
				return err
			}

			set, err := selectNoteSet(ctx, r, a.Chooser, args, false)
			if err != nil {
				return finish(err)
			}

			note, err := r.ResolveNote(ctx, set, origin)
			if err != nil {
				return finish(err)
			}

			if open {
				if err := openInEditor(a.AbsPath(note)); err != nil {
					return fmt.Errorf("open note: %w", err)
				}
				return nil
			}

			noteUlog.Success("Resolved note").
				Field("filter_set", set.Name).
				Field("path", note.Path).
				Pretty(note.Path).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Current location (note or folder) used to prefer nearby notes")
	cmd.Flags().BoolVar(&open, "open", false, "Open the resolved note in $EDITOR")

	return cmd
}

func locateOrigin(t *tree.Tree, root, from string) (*tree.Entry, error) {
	if from == "" {
		return nil, nil
	}
	origin := vault.Locate(t, root, from)
	if origin == nil {
		return nil, fmt.Errorf("no note or folder at %q in vault %s", from, root)
	}
	return origin, nil
}
