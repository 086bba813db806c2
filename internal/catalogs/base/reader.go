package base

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileReader abstracts file system operations for different storage backends
type FileReader interface {
	ReadFile(path string) ([]byte, error)
	// ModTime reports when path last changed. A zero time means the
	// backend cannot change under a running process.
	ModTime(path string) (time.Time, error)
}

// FSReader implements FileReader for a read only fs.FS such as embed.FS.
type FSReader struct {
	FS     fs.FS
	Prefix string
}

// ReadFile reads path below Prefix.
func (r *FSReader) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(r.FS, r.join(path))
}

// ModTime always returns the zero time: embedded content is fixed at build time.
func (r *FSReader) ModTime(path string) (time.Time, error) {
	if _, err := fs.Stat(r.FS, r.join(path)); err != nil {
		return time.Time{}, err
	}
	return time.Time{}, nil
}

// fs.FS paths always use forward slashes
func (r *FSReader) join(path string) string {
	if r.Prefix == "" {
		return path
	}
	return r.Prefix + "/" + path
}

// FilesystemFileReader implements FileReader for regular filesystem
type FilesystemFileReader struct {
	BasePath string
}

func (f *FilesystemFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(f.BasePath, path))
}

func (f *FilesystemFileReader) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(filepath.Join(f.BasePath, path))
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
