package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// WriteFileAtomic writes the content of reader to path, replacing any existing file
// only once the whole content has been written.
func WriteFileAtomic(path string, reader io.Reader) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, reader)
}

// EnsureParentDir creates the parent directory of the given path if it does not exist yet.
func EnsureParentDir(path string) error {
	parentDir := filepath.Dir(path)
	return os.MkdirAll(parentDir, 0755)
}

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
