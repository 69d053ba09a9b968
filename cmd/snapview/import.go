package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapview/internal/archive"
	"snapview/internal/progress"
	"snapview/internal/repo/badgerdb"
)

// NewImportCmd creates the import command: capture a directory into the
// repository as a new snapshot.
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Store a directory as a new snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := badgerdb.Open(cfg.Repository)
			if err != nil {
				return err
			}
			defer store.Close()

			c := progress.Term().Counter("importing " + args[0])
			sn, err := archive.Archive(store, args[0], c)
			c.Finish()
			if err != nil {
				return err
			}
			fmt.Printf("snapshot %s stored (root tree %s)\n", sn.ID, sn.Tree.Short())
			return nil
		},
	}
}
