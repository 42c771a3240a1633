package reporting

import (
	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/utils"
)

const (
	COLUMN_SID         = "User SID"
	COLUMN_TRASH_FILE  = "Trash file"
	COLUMN_SOURCE_PATH = "Source path"
	COLUMN_FILE_SIZE   = "File size"
	COLUMN_DELETED_AT  = "Deleted at"
	COLUMN_STATUS      = "Status"

	NOT_FOUND_SUFFIX = " (NOT FOUND!)"
)

var Columns = []string{
	COLUMN_SID,
	COLUMN_TRASH_FILE,
	COLUMN_SOURCE_PATH,
	COLUMN_FILE_SIZE,
	COLUMN_DELETED_AT,
	COLUMN_STATUS,
}

// The trash file column names the $R file for valid records and the
// $I file otherwise since there is nothing else to point at.
func TrashFile(result recyclebin.Result) string {
	switch t := result.(type) {
	case *recyclebin.ValidRecord:
		if !t.CompanionPresent {
			return t.CompanionPath + NOT_FOUND_SUFFIX
		}
		return t.CompanionPath
	}
	return result.Path()
}

// Flatten a result into a row with the standard columns. Fields that
// do not exist for bad records are nil.
func ResultToRow(sid string, result recyclebin.Result) *ordereddict.Dict {
	row := ordereddict.NewDict().
		Set(COLUMN_SID, sid).
		Set(COLUMN_TRASH_FILE, TrashFile(result))

	switch t := result.(type) {
	case *recyclebin.ValidRecord:
		row.Set(COLUMN_SOURCE_PATH, t.OriginalPath).
			Set(COLUMN_FILE_SIZE, t.FileSize).
			Set(COLUMN_DELETED_AT, utils.FormatTime(t.DeletionTime))
	default:
		row.Set(COLUMN_SOURCE_PATH, nil).
			Set(COLUMN_FILE_SIZE, nil).
			Set(COLUMN_DELETED_AT, nil)
	}

	return row.Set(COLUMN_STATUS, string(result.Status()))
}
