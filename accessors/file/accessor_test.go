package file_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"www.velocidex.com/golang/recyclebin/accessors"
	"www.velocidex.com/golang/recyclebin/accessors/file"
	"www.velocidex.com/golang/recyclebin/config"
	"www.velocidex.com/golang/recyclebin/utils"
)

type AccessorTestSuite struct {
	suite.Suite
	tmpdir string
}

func (self *AccessorTestSuite) SetupTest() {
	self.tmpdir = self.T().TempDir()

	// tmpdir/subdir/1.txt
	// tmpdir/subdir/dir
	// tmpdir/link -> tmpdir/subdir
	dirname := filepath.Join(self.tmpdir, "subdir")
	require.NoError(self.T(), os.MkdirAll(filepath.Join(dirname, "dir"), 0700))
	require.NoError(self.T(), os.WriteFile(
		filepath.Join(dirname, "1.txt"), []byte("Hello world"), 0600))
	require.NoError(self.T(), os.Symlink(dirname,
		filepath.Join(self.tmpdir, "link")))
}

func (self *AccessorTestSuite) TestRegistered() {
	accessor, err := accessors.GetAccessor("file", config.GetDefaultConfig())
	require.NoError(self.T(), err)
	assert.IsType(self.T(), &file.OSFileSystemAccessor{}, accessor)

	_, err = accessors.GetAccessor("ntfs", config.GetDefaultConfig())
	assert.ErrorIs(self.T(), err, utils.UnknownAccessorErr)
}

func (self *AccessorTestSuite) TestReadDir() {
	accessor := file.NewOSFileSystemAccessor()

	children, err := accessor.ReadDir(self.tmpdir)
	require.NoError(self.T(), err)

	names := []string{}
	for _, child := range children {
		names = append(names, child.Name())
		assert.True(self.T(), child.IsDir(), child.Name())
		assert.Equal(self.T(),
			filepath.Join(self.tmpdir, child.Name()), child.FullPath())
	}
	assert.Equal(self.T(), []string{"link", "subdir"}, names)

	children, err = accessor.ReadDir(filepath.Join(self.tmpdir, "link"))
	require.NoError(self.T(), err)
	require.Equal(self.T(), 2, len(children))
	assert.Equal(self.T(), "1.txt", children[0].Name())
	assert.Equal(self.T(), int64(11), children[0].Size())
	assert.False(self.T(), children[0].IsDir())

	_, err = accessor.ReadDir(filepath.Join(self.tmpdir, "missing"))
	assert.True(self.T(), utils.IsNotFound(err))
}

func (self *AccessorTestSuite) TestOpenAndStat() {
	accessor := file.NewOSFileSystemAccessor()
	filename := accessor.PathJoin(self.tmpdir, "subdir", "1.txt")

	fd, err := accessor.Open(filename)
	require.NoError(self.T(), err)

	data, err := io.ReadAll(fd)
	require.NoError(self.T(), err)
	assert.Equal(self.T(), "Hello world", string(data))
	assert.NoError(self.T(), fd.Close())

	// Closing twice is harmless.
	assert.NoError(self.T(), fd.Close())

	stat, err := accessor.Stat(filename)
	require.NoError(self.T(), err)
	assert.Equal(self.T(), "1.txt", stat.Name())
	assert.False(self.T(), stat.IsDir())

	_, err = accessor.Stat(filename + ".missing")
	assert.True(self.T(), utils.IsNotFound(err))

	_, err = accessor.Open(filename + ".missing")
	assert.True(self.T(), utils.IsNotFound(err))
}

func TestFileAccessor(t *testing.T) {
	suite.Run(t, &AccessorTestSuite{})
}
