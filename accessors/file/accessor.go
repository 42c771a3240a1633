package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"www.velocidex.com/golang/recyclebin/accessors"
	"www.velocidex.com/golang/recyclebin/config"
	"www.velocidex.com/golang/recyclebin/logging"
)

var (
	fileAccessorCurrentOpened = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "accessor_file_current_open",
		Help: "Number of currently opened files with the file accessor.",
	})

	fileAccessorTotalOpened = promauto.NewCounter(prometheus.CounterOpts{
		Name: "accessor_file_total_open",
		Help: "Total number of files opened with the file accessor.",
	})
)

type OSFileInfo struct {
	_FileInfo  os.FileInfo
	_full_path string
}

func NewOSFileInfo(base os.FileInfo, full_path string) *OSFileInfo {
	return &OSFileInfo{
		_FileInfo:  base,
		_full_path: full_path,
	}
}

func (self *OSFileInfo) Size() int64 {
	return self._FileInfo.Size()
}

func (self *OSFileInfo) Name() string {
	return self._FileInfo.Name()
}

func (self *OSFileInfo) IsDir() bool {
	return self._FileInfo.IsDir()
}

func (self *OSFileInfo) ModTime() time.Time {
	return self._FileInfo.ModTime()
}

func (self *OSFileInfo) Mode() os.FileMode {
	return self._FileInfo.Mode()
}

func (self *OSFileInfo) FullPath() string {
	return self._full_path
}

// Wrap the os.File object to keep track of open file handles.
type OSFileWrapper struct {
	*os.File
	closed bool
}

func (self *OSFileWrapper) DebugString() string {
	return fmt.Sprintf("OSFileWrapper %v (closed %v)", self.Name(), self.closed)
}

func (self *OSFileWrapper) Close() error {
	if self.closed {
		return nil
	}
	fileAccessorCurrentOpened.Dec()
	self.closed = true
	return self.File.Close()
}

type OSFileSystemAccessor struct{}

func NewOSFileSystemAccessor() *OSFileSystemAccessor {
	return &OSFileSystemAccessor{}
}

func (self OSFileSystemAccessor) PathJoin(base string, children ...string) string {
	return filepath.Join(append([]string{base}, children...)...)
}

func (self OSFileSystemAccessor) Stat(filename string) (accessors.FileInfo, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}

	return NewOSFileInfo(stat, filename), nil
}

// Entries are sorted by file name. Entries that vanish or can not be
// stat'ed between listing and stat are skipped with a warning rather
// than failing the directory.
func (self OSFileSystemAccessor) ReadDir(dir string) ([]accessors.FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	result := make([]accessors.FileInfo, 0, len(entries))
	for _, entry := range entries {
		full_path := filepath.Join(dir, entry.Name())

		// Follow links so a linked user directory still counts as a
		// directory.
		stat, err := os.Stat(full_path)
		if err != nil {
			stat, err = entry.Info()
			if err != nil {
				logger := logging.GetLogger(nil, &logging.AccessorComponent)
				logger.Warn("file: Unable to stat %v: %v", full_path, err)
				continue
			}
		}
		result = append(result, NewOSFileInfo(stat, full_path))
	}

	return result, nil
}

func (self OSFileSystemAccessor) Open(path string) (accessors.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fileAccessorCurrentOpened.Inc()
	fileAccessorTotalOpened.Inc()

	return &OSFileWrapper{File: file}, nil
}

func init() {
	accessors.Register("file",
		func(config_obj *config.Config) (accessors.FileSystemAccessor, error) {
			return NewOSFileSystemAccessor(), nil
		}, "Access files using the operating system's API.")
}
