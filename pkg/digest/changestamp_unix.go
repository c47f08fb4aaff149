//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package digest

import (
	"time"

	"golang.org/x/sys/unix"
)

// changeStamp returns the inode change time. Unlike mtime it cannot be set back by
// unprivileged users, so any write or chtimes moves it forward.
func changeStamp(path string) (time.Time, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, false
	}
	return time.Unix(st.Ctim.Unix()), true
}
