package accessors

import (
	"io"
	"os"
	"time"
)

// A FileInfo represents information about a file. It is similar to
// os.FileInfo but also carries the full path in the accessor's own
// serialization.
type FileInfo interface {
	Name() string
	ModTime() time.Time

	// Path as the accessor serializes it. Can be passed back to Open,
	// ReadDir or Stat.
	FullPath() string

	Size() int64
	IsDir() bool
	Mode() os.FileMode
}

type ReadCloser interface {
	io.Reader
	io.Closer
}

// Interface for accessing the filesystem. The recycle bin may live
// on a mounted volume or inside a triage collection so the scanner
// never touches the os package directly.
type FileSystemAccessor interface {
	// List a directory. The order is accessor specific but stable:
	// the file accessor sorts by name, zip keeps archive order.
	ReadDir(path string) ([]FileInfo, error)

	// Open a file for reading
	Open(path string) (ReadCloser, error)

	// Stat follows links. Missing files return an error for which
	// utils.IsNotFound() is true.
	Stat(path string) (FileInfo, error)

	PathJoin(base string, children ...string) string
}
