package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrWorkspaceNotFound is returned when the input folder is in neither the
// start directory nor its parent.
var ErrWorkspaceNotFound = errors.New("data file folder not found")

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// FindWorkspaceRoot returns the directory holding the folder named inputDir,
// looking in start and then one level up. The scripts are usually launched
// from the Automate folder, which sits beside the data folders.
func FindWorkspaceRoot(start, inputDir string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		start = wd
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for _, dir := range []string{abs, filepath.Dir(abs)} {
		info, err := os.Stat(filepath.Join(dir, inputDir))
		if err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: '%s'", ErrWorkspaceNotFound, inputDir)
}
