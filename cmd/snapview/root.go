package main

import (
	"github.com/spf13/cobra"

	"snapview/internal/config"
	"snapview/internal/log"
)

var (
	cfgFile  string
	repoPath string
	cfg      config.Config
)

// NewRootCmd creates the root command. Running snapview without a
// subcommand opens the interactive browser.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "snapview",
		Short:         "Browse file-tree snapshots in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := cfgFile
			if path == "" {
				path = config.DefaultPath()
			}
			var err error
			cfg, err = config.Load(path)
			if err != nil {
				return err
			}
			if repoPath != "" {
				cfg.Repository = repoPath
			}
			return log.Setup(cfg.LogFile, cfg.LogLevel)
		},
		RunE: runBrowse,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/snapview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", "", "repository path (overrides config)")

	rootCmd.AddCommand(NewBrowseCmd())
	rootCmd.AddCommand(NewImportCmd())
	rootCmd.AddCommand(NewLsCmd())
	rootCmd.AddCommand(NewSnapshotsCmd())

	return rootCmd
}
