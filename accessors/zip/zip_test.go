package zip_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/Velocidex/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	zip_accessor "www.velocidex.com/golang/recyclebin/accessors/zip"
	"www.velocidex.com/golang/recyclebin/utils"
)

func buildZip(t *testing.T, members map[string]string, order []string) *bytes.Reader {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for _, name := range order {
		fd, err := w.Create(name)
		require.NoError(t, err)
		_, err = fd.Write([]byte(members[name]))
		require.NoError(t, err)

		// Members are only added to the archive when closed.
		require.NoError(t, fd.(io.Closer).Close())
	}
	require.NoError(t, w.Close())

	return bytes.NewReader(buf.Bytes())
}

func TestZipAccessor(t *testing.T) {
	members := map[string]string{
		"C/$Recycle.Bin/S-1-5-21-1111/$IABC.txt": "index",
		"C/$Recycle.Bin/S-1-5-21-1111/$RABC.txt": "data",
		"C/$Recycle.Bin/desktop.ini":             "ini",
		"C/$Recycle.Bin/S-1-5-18/":               "",
	}
	order := []string{
		"C/$Recycle.Bin/S-1-5-21-1111/$IABC.txt",
		"C/$Recycle.Bin/S-1-5-21-1111/$RABC.txt",
		"C/$Recycle.Bin/desktop.ini",
		"C/$Recycle.Bin/S-1-5-18/",
	}

	reader := buildZip(t, members, order)
	accessor, err := zip_accessor.NewZipFileSystemAccessorFromReader(
		reader, reader.Size())
	require.NoError(t, err)

	// Directories are implied by their members.
	children, err := accessor.ReadDir(`\C\$Recycle.Bin\`)
	require.NoError(t, err)

	names := []string{}
	for _, child := range children {
		names = append(names, child.Name())
	}
	assert.Equal(t, []string{"S-1-5-21-1111", "desktop.ini", "S-1-5-18"}, names)
	assert.True(t, children[0].IsDir())
	assert.False(t, children[1].IsDir())
	assert.True(t, children[2].IsDir())
	assert.Equal(t, "C/$Recycle.Bin/S-1-5-21-1111", children[0].FullPath())

	root, err := accessor.Stat("/")
	require.NoError(t, err)
	assert.True(t, root.IsDir())

	filename := accessor.PathJoin(children[0].FullPath(), "$IABC.txt")
	assert.Equal(t, "C/$Recycle.Bin/S-1-5-21-1111/$IABC.txt", filename)

	stat, err := accessor.Stat(filename)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stat.Size())

	fd, err := accessor.Open(filename)
	require.NoError(t, err)
	data, err := io.ReadAll(fd)
	require.NoError(t, err)
	fd.Close()
	assert.Equal(t, "index", string(data))

	_, err = accessor.Stat("C/$Recycle.Bin/S-1-5-21-1111/$RXYZ.txt")
	assert.True(t, utils.IsNotFound(err))

	_, err = accessor.ReadDir("C/$Recycle.Bin/desktop.ini")
	assert.ErrorIs(t, err, utils.NotADirectoryError)

	_, err = accessor.Open("C/$Recycle.Bin")
	assert.Error(t, err)

	// Nothing to close for reader based archives.
	assert.NoError(t, accessor.Close())

	_, err = accessor.Open(filename)
	assert.ErrorIs(t, err, utils.AccessorClosedError)
}
