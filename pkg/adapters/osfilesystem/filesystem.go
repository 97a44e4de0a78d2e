// Package osfilesystem provides a filesystem implementation using the os package.
package osfilesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/user/stickerframes/pkg/ports"
)

// ErrTooLarge is returned by ReadFile when a file exceeds the configured limit.
var ErrTooLarge = errors.New("file exceeds read limit")

// FileSystem implements ports.FileSystem using the os package.
type FileSystem struct {
	maxRead int64 // 0 = unlimited
}

// New creates a new FileSystem without a read limit.
func New() *FileSystem {
	return &FileSystem{}
}

// NewWithLimit creates a FileSystem whose ReadFile refuses files larger than maxBytes.
// Animations are decoded fully in memory, so callers cap what they accept.
func NewWithLimit(maxBytes int64) *FileSystem {
	return &FileSystem{maxRead: maxBytes}
}

// ReadFile reads the entire contents of a file.
func (fs *FileSystem) ReadFile(path string) ([]byte, error) {
	if fs.maxRead <= 0 {
		return os.ReadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, fs.maxRead+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > fs.maxRead {
		return nil, fmt.Errorf("%s: %w (%d bytes)", path, ErrTooLarge, fs.maxRead)
	}
	return data, nil
}

// WriteFile writes data to a file, creating it if necessary.
func (fs *FileSystem) WriteFile(path string, data []byte) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// MkdirAll creates a directory and all parent directories.
func (fs *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists checks if a file or directory exists.
func (fs *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
