package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StdStream is the pseudo path that selects stdin or stdout instead of a file.
const StdStream = "-"

// ExpandPath resolves paths that include a tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}

// ValidatePath checks if the given path is a valid file path for reading.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path stat error: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q is a directory, not a file", path)
	}

	if info.Mode()&os.ModeType != 0 {
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// CreateFolderIfNotExists checks if a folder exists, and if not, creates it.
func CreateFolderIfNotExists(folder string) error {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		if err := os.MkdirAll(folder, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %q: %w", folder, err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to check folder %q: %w", folder, err)
	}
	return nil
}

// OpenInput opens the given path for reading. The path "-" selects stdin,
// in which case the returned closer is a no-op.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == StdStream {
		return io.NopCloser(os.Stdin), nil
	}
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	return f, nil
}

// DisplayName returns the name to use for an output destination in logs and
// error messages.
func DisplayName(path string) string {
	if path == "" || path == StdStream {
		return "stdout"
	}
	return path
}

// nopWriteCloser wraps a writer that must not be closed, such as stdout.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// CreateOutput creates the given path for writing, creating parent folders
// as needed. An empty path or "-" selects stdout, in which case the returned
// closer is a no-op.
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == StdStream {
		return nopWriteCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := CreateFolderIfNotExists(dir); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %q: %w", path, err)
	}
	return f, nil
}
