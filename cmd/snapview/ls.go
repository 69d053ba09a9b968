package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snapview/internal/repo"
	"snapview/internal/repo/badgerdb"
	"snapview/internal/snap"
)

// NewLsCmd creates the ls command: a non-interactive recursive listing
// of a snapshot, resolved by ID prefix or "latest".
func NewLsCmd() *cobra.Command {
	var long bool
	cmd := &cobra.Command{
		Use:   "ls <snapshot>",
		Short: "List a snapshot's contents recursively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := badgerdb.Open(cfg.Repository)
			if err != nil {
				return err
			}
			defer store.Close()

			sn, err := repo.FindSnapshot(store, args[0])
			if err != nil {
				return err
			}
			return lsTree(store, sn.Tree, "", long)
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "long listing with metadata")
	return cmd
}

func lsTree(r repo.Repository, id snap.ID, prefix string, long bool) error {
	tree, err := r.Tree(id)
	if err != nil {
		return err
	}
	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		path := prefix + "/" + n.Name
		if long {
			mtime := "?"
			if n.ModTime != nil {
				mtime = n.ModTime.Format("2006-01-02 15:04:05")
			}
			user := n.User
			if user == "" {
				user = "?"
			}
			group := n.Group
			if group == "" {
				group = "?"
			}
			fmt.Printf("%-11s %-10s %-10s %10d %s %s\n",
				n.ModeString(), user, group, n.Size, mtime, path)
		} else {
			fmt.Println(path)
		}
		if n.IsDir() && n.Subtree != "" {
			if err := lsTree(r, n.Subtree, path, long); err != nil {
				return err
			}
		}
	}
	return nil
}
