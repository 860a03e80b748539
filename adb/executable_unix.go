//go:build !windows

package adb

import "os"

func hasExecutePermission(info os.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
