//go:build windows

package git

import "os"

// hookSuffix marks a hook file as runnable on platforms without an
// executable bit.
const hookSuffix = ".exe"

// IsExecutable reports whether path is a regular file considered runnable.
// Windows has no executable bit, so any regular file qualifies.
func IsExecutable(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// findHookFile probes for a hook file at base, falling back to base + ".exe".
func findHookFile(base string) (path string, found, executable bool) {
	if fi, err := os.Stat(base); err == nil && fi.Mode().IsRegular() {
		return base, true, true
	}
	withSuffix := base + hookSuffix
	if fi, err := os.Stat(withSuffix); err == nil && fi.Mode().IsRegular() {
		return withSuffix, true, true
	}
	return base, false, false
}
