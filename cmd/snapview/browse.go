package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"snapview/internal/repo"
	"snapview/internal/repo/badgerdb"
	"snapview/internal/ui"
)

// NewBrowseCmd creates the browse command (also the default action).
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive snapshot browser",
		RunE:  runBrowse,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	store, err := badgerdb.Open(cfg.Repository)
	if err != nil {
		return err
	}
	defer store.Close()

	var r repo.Repository = store
	if cfg.Cold {
		r = repo.ForceCold(r)
	}
	if _, err := tea.NewProgram(
		ui.InitialModel(r, cfg),
		tea.WithAltScreen(),
	).Run(); err != nil {
		return fmt.Errorf("run browser: %w", err)
	}
	return nil
}
