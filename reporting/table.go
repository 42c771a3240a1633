package reporting

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/utils"
)

// Renders an aligned table on Close. Sizes are humanized.
type TableWriter struct {
	table *tablewriter.Table
}

func NewTableWriter(out io.Writer) *TableWriter {
	table := tablewriter.NewWriter(out)
	table.SetHeader(Columns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	return &TableWriter{table: table}
}

func (self *TableWriter) WriteUser(sid string, results []recyclebin.Result) error {
	for _, result := range results {
		string_row := []string{sid, TrashFile(result), "", "", "",
			string(result.Status())}

		switch t := result.(type) {
		case *recyclebin.ValidRecord:
			string_row[2] = t.OriginalPath
			string_row[3] = humanizeSize(t.FileSize)
			string_row[4] = utils.FormatTime(t.DeletionTime)
		}

		self.table.Append(string_row)
	}
	return nil
}

func (self *TableWriter) Close() error {
	self.table.Render()
	return nil
}

// Sizes come straight from the record and may be negative.
func humanizeSize(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}
	return humanize.Bytes(uint64(size))
}
