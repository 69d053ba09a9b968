//go:build unix

package archive

import (
	"os"
	"os/user"
	"strconv"
	"syscall"

	"snapview/internal/snap"
)

func fillOwner(n *snap.Node, info os.FileInfo) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}
	uid := uint32(st.Uid)
	gid := uint32(st.Gid)
	n.UID = &uid
	n.GID = &gid
	if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
		n.User = u.Username
	}
	if g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil {
		n.Group = g.Name
	}
}
