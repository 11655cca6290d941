package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/mattsolo1/grove-core/version"
	"github.com/spf13/cobra"
)

var versionUlog = grovelogging.NewUnifiedLogger("grove-opener.cmd.version")

// NewVersionCmd creates the `fno version` command.
func NewVersionCmd() *cobra.Command {
	var (
		jsonOutput bool
		short      bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput && short {
				return fmt.Errorf("--json and --short cannot be combined")
			}
			text, err := formatVersion(jsonOutput, short)
			if err != nil {
				return err
			}

			info := version.GetInfo()
			versionUlog.Info("Version info").
				Field("version", info.Version).
				Field("commit", info.Commit).
				Pretty(text).
				PrettyOnly().
				Log(context.Background())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}

// formatVersion renders the build info for the terminal.
func formatVersion(jsonOutput, short bool) (string, error) {
	info := version.GetInfo()
	switch {
	case short:
		return info.Version, nil
	case jsonOutput:
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal version info: %w", err)
		}
		return string(data), nil
	default:
		return info.String(), nil
	}
}
