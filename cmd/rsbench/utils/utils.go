package utils

import (
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sys/unix"
)

var RsbenchInstanceId = gonanoid.MustGenerate("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", 12)

// Returns true if the specified file exists and is actually a file (not a directory)
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}

	return err == nil && !info.IsDir()
}

// Returns true if the specified directory exists and is actually a directory (not a file)
func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}

	return err == nil && info.IsDir()
}

// Creates an empty file with a unique name under dir and returns its path.
// An empty dir means the default directory for temporary files.
// The file is left on disk, removing it is up to the caller.
func CreateTempOutput(dir string) (string, error) {
	file, err := os.CreateTemp(dir, fmt.Sprintf("rsbench-%s-*", RsbenchInstanceId))
	if err != nil {
		return "", fmt.Errorf("Error creating the temporary output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("Error closing the temporary output file: %w", err)
	}
	return file.Name(), nil
}

// Resolves name under dir without letting it escape dir, then makes sure the
// parent directory of the result exists.
func ResolveArtifactPath(dir string, name string) (string, error) {
	path, err := securejoin.SecureJoin(dir, name)
	if err != nil {
		return "", fmt.Errorf("Failed to resolve the artifact path for %s: %w", name, err)
	}

	parent := filepath.Dir(path)
	if !DirectoryExists(parent) {
		if err := os.MkdirAll(parent, 0775); err != nil {
			return "", fmt.Errorf("Failed to create the directory %s: %w", parent, err)
		}
	}

	return path, nil
}

func PrepareOutFile(path string) (*os.File, error) {
	modes := os.O_WRONLY | os.O_TRUNC
	if _, err := os.Stat(path); os.IsNotExist(err) {
		modes = modes | os.O_CREATE | os.O_EXCL
	}

	mask := unix.Umask(0)
	file, err := os.OpenFile(path, modes, 0664)
	unix.Umask(mask)
	if err != nil {
		return nil, fmt.Errorf("Error opening the file: %w", err)
	}
	return file, nil
}
