// Package locate finds the directory the server binary lives in, so files are
// served relative to the program rather than the caller's working directory.
package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the absolute, symlink-resolved directory containing exe.
func Dir(exe string) (string, error) {
	abs, err := filepath.Abs(exe)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", exe, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", exe, err)
	}
	return filepath.Dir(resolved), nil
}

// ProgramDir returns the directory of the running executable.
//
// Binaries built by `go run` live in a throwaway go-build work directory. In
// that case the directory of sourceHint (the entry point's source file) is
// used instead. An empty sourceHint disables the fallback.
func ProgramDir(sourceHint string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	dir, err := Dir(exe)
	if err != nil {
		return "", err
	}
	if sourceHint == "" || !inGoBuildDir(dir) {
		return dir, nil
	}
	return Dir(sourceHint)
}

// inGoBuildDir reports whether dir lies inside a go-build work directory
// such as /tmp/go-build1234/b001/exe.
func inGoBuildDir(dir string) bool {
	for _, elem := range strings.Split(filepath.ToSlash(dir), "/") {
		if strings.HasPrefix(elem, "go-build") {
			return true
		}
	}
	return false
}
