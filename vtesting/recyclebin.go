package vtesting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/utils"
)

// Describes one $I file to write into a test recycle bin.
type IndexFile struct {
	Sid  string
	Name string

	// Raw content of the $I file.
	Data []byte

	// Also write the $R data file.
	WithCompanion bool
}

func MakeIndexRecord(size int64, deleted time.Time, path string) []byte {
	low, high := utils.TimeToFiletime(deleted)
	return recyclebin.Encode(&recyclebin.ValidRecord{
		Header:       recyclebin.HEADER_VERSION,
		FileSize:     size,
		FileTimeLow:  low,
		FileTimeHigh: high,
		OriginalPath: path,
	})
}

// Lay out a $Recycle.Bin directory under root.
func MakeRecycleBin(t *testing.T, root string, files []IndexFile) {
	for _, f := range files {
		user_dir := filepath.Join(root, f.Sid)
		require.NoError(t, os.MkdirAll(user_dir, 0700))

		require.NoError(t, os.WriteFile(
			filepath.Join(user_dir, f.Name), f.Data, 0600))

		if f.WithCompanion {
			require.NoError(t, os.WriteFile(
				filepath.Join(user_dir, recyclebin.CompanionPath(f.Name)),
				[]byte("deleted content"), 0600))
		}
	}
}
