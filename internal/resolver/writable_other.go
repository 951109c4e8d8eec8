//go:build !unix

package resolver

import "os"

// isWritable approximates access(2) with the owner write bit.
func isWritable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
