package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"snapview/internal/repo/badgerdb"
)

// NewSnapshotsCmd creates the snapshots command: list all snapshot
// records in the repository, newest first.
func NewSnapshotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List snapshots in the repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := badgerdb.Open(cfg.Repository)
			if err != nil {
				return err
			}
			defer store.Close()

			snaps, err := store.Snapshots()
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("no snapshots")
				return nil
			}
			for _, sn := range snaps {
				fmt.Printf("%-10s  %s  %-12s  %s\n",
					sn.ID,
					sn.Time.Format("2006-01-02 15:04:05"),
					sn.Hostname,
					strings.Join(sn.Paths, ", "))
			}
			return nil
		},
	}
}
