package dispatch

import "os"

// FileSystem is the file access the handlers need.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// OSFileSystem writes through the os package. Zero Perm means 0644.
type OSFileSystem struct {
	Perm os.FileMode
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (f OSFileSystem) WriteFile(path string, data []byte) error {
	perm := f.Perm
	if perm == 0 {
		perm = 0o644
	}
	return os.WriteFile(path, data, perm)
}
