package zip

import (
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/Velocidex/zip"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/recyclebin/accessors"
	"www.velocidex.com/golang/recyclebin/config"
	"www.velocidex.com/golang/recyclebin/utils"
)

type ZipFileInfo struct {
	name      string
	full_path string
	is_dir    bool
	size      int64
	mod_time  time.Time

	// Nil for directories implied by their children.
	member *zip.File
}

func (self *ZipFileInfo) Name() string {
	return self.name
}

func (self *ZipFileInfo) FullPath() string {
	return self.full_path
}

func (self *ZipFileInfo) IsDir() bool {
	return self.is_dir
}

func (self *ZipFileInfo) Size() int64 {
	return self.size
}

func (self *ZipFileInfo) ModTime() time.Time {
	return self.mod_time
}

func (self *ZipFileInfo) Mode() os.FileMode {
	if self.is_dir {
		return os.ModeDir | 0555
	}
	return 0444
}

// Presents the members of a zip archive (for example a triage
// collection) as a read only filesystem. Paths use / separators and
// are relative to the archive root.
type ZipFileSystemAccessor struct {
	closer io.Closer
	closed bool

	// Keyed by normalized path. The root directory is ""
	members  map[string]*ZipFileInfo
	children map[string][]*ZipFileInfo
}

func NewZipFileSystemAccessor(filename string) (*ZipFileSystemAccessor, error) {
	fd, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	stat, err := fd.Stat()
	if err != nil {
		fd.Close()
		return nil, err
	}

	result, err := NewZipFileSystemAccessorFromReader(fd, stat.Size())
	if err != nil {
		fd.Close()
		return nil, errors.Wrapf(err, "zip: %v", filename)
	}
	result.closer = fd

	return result, nil
}

func NewZipFileSystemAccessorFromReader(
	reader io.ReaderAt, size int64) (*ZipFileSystemAccessor, error) {
	zip_file, err := zip.NewReader(reader, size)
	if err != nil {
		return nil, err
	}

	result := &ZipFileSystemAccessor{
		members: map[string]*ZipFileInfo{
			"": {is_dir: true},
		},
		children: make(map[string][]*ZipFileInfo),
	}

	for _, member := range zip_file.File {
		full_path := normalize(member.Name)
		if full_path == "" {
			continue
		}

		info := result.ensureDir(full_path)
		if !strings.HasSuffix(member.Name, "/") {
			info.is_dir = false
			info.member = member
			info.size = int64(member.UncompressedSize64)
		}
		info.mod_time = member.ModTime()
	}

	return result, nil
}

// Make sure the path and all its parents exist. New entries are
// directories until a member says otherwise.
func (self *ZipFileSystemAccessor) ensureDir(full_path string) *ZipFileInfo {
	info, pres := self.members[full_path]
	if pres {
		return info
	}

	parent, name := path.Split(full_path)
	parent = strings.TrimSuffix(parent, "/")
	self.ensureDir(parent)

	info = &ZipFileInfo{
		name:      name,
		full_path: full_path,
		is_dir:    true,
	}
	self.members[full_path] = info
	self.children[parent] = append(self.children[parent], info)

	return info
}

func normalize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.Trim(path.Clean("/"+name), "/")
}

func (self *ZipFileSystemAccessor) PathJoin(base string, children ...string) string {
	return normalize(path.Join(append([]string{base}, children...)...))
}

func (self *ZipFileSystemAccessor) Stat(filename string) (accessors.FileInfo, error) {
	info, pres := self.members[normalize(filename)]
	if !pres {
		return nil, errors.Wrapf(utils.NotFoundError, "zip: %v", filename)
	}
	return info, nil
}

// Children are listed in the order they appear in the archive.
func (self *ZipFileSystemAccessor) ReadDir(dirname string) ([]accessors.FileInfo, error) {
	full_path := normalize(dirname)
	info, pres := self.members[full_path]
	if !pres {
		return nil, errors.Wrapf(utils.NotFoundError, "zip: %v", dirname)
	}

	if !info.is_dir {
		return nil, errors.Wrapf(utils.NotADirectoryError, "zip: %v", dirname)
	}

	children := self.children[full_path]
	result := make([]accessors.FileInfo, 0, len(children))
	for _, child := range children {
		result = append(result, child)
	}
	return result, nil
}

func (self *ZipFileSystemAccessor) Open(filename string) (accessors.ReadCloser, error) {
	if self.closed {
		return nil, errors.Wrapf(utils.AccessorClosedError, "zip: %v", filename)
	}

	info, pres := self.members[normalize(filename)]
	if !pres {
		return nil, errors.Wrapf(utils.NotFoundError, "zip: %v", filename)
	}

	if info.is_dir {
		return nil, errors.Wrapf(utils.InvalidArgError,
			"zip: %v is a directory", filename)
	}

	return info.member.Open()
}

// Members can not be opened after the archive is closed.
func (self *ZipFileSystemAccessor) Close() error {
	self.closed = true
	if self.closer == nil {
		return nil
	}
	return self.closer.Close()
}

func init() {
	accessors.Register("zip",
		func(config_obj *config.Config) (accessors.FileSystemAccessor, error) {
			if config_obj == nil || config_obj.ZipFile == "" {
				return nil, errors.Wrap(utils.InvalidArgError,
					"zip accessor requires a zip file")
			}
			return NewZipFileSystemAccessor(config_obj.ZipFile)
		}, "Access files inside a zip archive such as a triage collection.")
}
