//go:build !windows

package git

import "os"

// IsExecutable reports whether path is a regular file with an executable bit.
func IsExecutable(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular() && fi.Mode()&0o111 != 0
}

// findHookFile probes for a hook file at base.
func findHookFile(base string) (path string, found, executable bool) {
	fi, err := os.Stat(base)
	if err != nil || !fi.Mode().IsRegular() {
		return base, false, false
	}
	return base, true, fi.Mode()&0o111 != 0
}
