package fs

import (
	i_fs "io/fs"
	"os"
	"path/filepath"
	"time"
)

// FS is an interface abstracting the file system operations used by the
// batch runner and configuration discovery. This allows for testable code
// by substituting an in-memory file system.
type FS interface {
	Stat(name string) (i_fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// osFS implements FS using the underlying os package. This is the default
// implementation used for real file system operations.
type osFS struct{}

// NewOSFS creates a new osFS instance.
func NewOSFS() FS {
	return &osFS{}
}

func (f *osFS) Stat(name string) (i_fs.FileInfo, error) {
	return os.Stat(name)
}

func (f *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MemFS is an FS backed by a map from cleaned paths to file contents.
// Directories exist implicitly as the parents of stored files.
type MemFS map[string][]byte

// NewMemFS builds a MemFS from string contents.
func NewMemFS(files map[string]string) MemFS {
	m := make(MemFS, len(files))
	for name, content := range files {
		m[filepath.Clean(name)] = []byte(content)
	}
	return m
}

func (m MemFS) ReadFile(name string) ([]byte, error) {
	data, ok := m[filepath.Clean(name)]
	if !ok {
		return nil, &i_fs.PathError{Op: "open", Path: name, Err: i_fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m MemFS) Stat(name string) (i_fs.FileInfo, error) {
	name = filepath.Clean(name)
	if data, ok := m[name]; ok {
		return memFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	for path := range m {
		for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
			if dir == name {
				return memFileInfo{name: filepath.Base(name), dir: true}, nil
			}
			if dir == filepath.Dir(dir) {
				break
			}
		}
	}
	return nil, &i_fs.PathError{Op: "stat", Path: name, Err: i_fs.ErrNotExist}
}

type memFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi memFileInfo) Name() string { return fi.name }
func (fi memFileInfo) Size() int64  { return fi.size }
func (fi memFileInfo) Mode() i_fs.FileMode {
	if fi.dir {
		return i_fs.ModeDir | 0o755
	}
	return 0o644
}
func (fi memFileInfo) ModTime() time.Time { return time.Time{} }
func (fi memFileInfo) IsDir() bool        { return fi.dir }
func (fi memFileInfo) Sys() any           { return nil }
