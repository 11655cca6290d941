package cmd

import (
	"context"
	"fmt"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-opener/pkg/index"
)

var indexUlog = grovelogging.NewUnifiedLogger("grove-opener.cmd.index")

// NewIndexCmd creates the `fno index` command.
func NewIndexCmd(app **App) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Rebuild the cached vault listing",
		Long: `Walk the vault and store its listing in the index so --cached runs
skip the walk.

Examples:
  fno index            # Rebuild the index for the configured vault
  fno index --remove   # Forget the configured vault`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a := *app

			idx, err := index.Open(a.Settings.Index.Path)
			if err != nil {
				return err
			}
			defer idx.Close()

			if remove {
				if err := idx.Remove(ctx, a.Settings.Vault); err != nil {
					return err
				}
				indexUlog.Success("Removed vault from index").
					Field("vault", a.Settings.Vault).
					Pretty(fmt.Sprintf("Removed %s from the index", a.Settings.Vault)).
					PrettyOnly().
					Log(ctx)
				return nil
			}

			t, err := a.Scan(ctx)
			if err != nil {
				return err
			}
			if err := idx.Store(ctx, a.Settings.Vault, t); err != nil {
				return err
			}

			indexUlog.Success("Indexed vault").
				Field("vault", a.Settings.Vault).
				Field("entries", t.Len()).
				Field("documents", len(t.Documents())).
				Field("directories", len(t.Directories())).
				Field("index", a.Settings.Index.Path).
				Pretty(fmt.Sprintf("Indexed %d notes in %d folders", len(t.Documents()), len(t.Directories()))).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the vault from the index instead of rebuilding it")

	return cmd
}
