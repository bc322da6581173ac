// Package filex has the filesystem helpers for the client's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the per-user directory name under the OS config dir.
const AppDirName = "casedesk"

// EnsureDir creates dir (and parents) with perm if missing and returns its
// absolute path. A relative dir is resolved against the working directory.
func EnsureDir(dir string, perm os.FileMode) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, perm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// DefaultDataDir returns <user config dir>/casedesk, or ./.casedesk when the
// platform has no user config dir.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "." + AppDirName
	}
	return filepath.Join(base, AppDirName)
}
