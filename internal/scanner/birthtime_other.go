//go:build !linux

package scanner

import "time"

// Birth time is only read on Linux; elsewhere callers fall back to mtime.
func birthTime(string) (time.Time, bool) {
	return time.Time{}, false
}
