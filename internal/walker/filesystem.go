package walker

import (
	"io/fs"
	"os"
)

// FileSystem abstracts the filesystem operations traversal needs, so tests
// can inject failures
type FileSystem interface {
	// ReadDir lists a directory in the order the filesystem enumerates it
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// RealFileSystem implements FileSystem using the actual filesystem
type RealFileSystem struct{}

// ReadDir does not sort; os.ReadDir would.
func (RealFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadDir(-1)
}

func (RealFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// OrReal returns fsys, or RealFileSystem when fsys is nil
func OrReal(fsys FileSystem) FileSystem {
	if fsys == nil {
		return RealFileSystem{}
	}
	return fsys
}
