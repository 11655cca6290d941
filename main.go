package main

import (
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-opener/cmd"
	"github.com/mattsolo1/grove-opener/cmd/config"
	"github.com/mattsolo1/grove-opener/pkg/resolve"
)

var app *cmd.App

func main() {
	rootCmd := cli.NewStandardCommand(
		"fno",
		"Open notes and folders by filter set",
	)
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		// This runs once before any subcommand
		logger := resolve.NewDefaultLogger()
		if verbose, _ := c.Flags().GetBool("verbose"); verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		settings, err := config.Load(c)
		if err != nil {
			return err
		}

		app = cmd.NewApp(settings, logger)
		app.Cached, _ = c.Flags().GetBool("cached")
		return nil
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewNoteCmd(&app))
	rootCmd.AddCommand(cmd.NewDirCmd(&app))
	rootCmd.AddCommand(cmd.NewMatchCmd(&app))
	rootCmd.AddCommand(cmd.NewSetsCmd(&app))
	rootCmd.AddCommand(cmd.NewPickersCmd(&app))
	rootCmd.AddCommand(cmd.NewIndexCmd(&app))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
