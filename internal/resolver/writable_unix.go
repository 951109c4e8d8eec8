//go:build unix

package resolver

import "golang.org/x/sys/unix"

// isWritable asks the kernel whether the real user may write to path.
func isWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
