package reporting

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
)

// A minimal csv encoder which quotes every string and leaves numbers
// bare so consumers can tell them apart. Missing values are written
// as empty unquoted fields. The standard library writer only quotes
// when it has to.
type NonNumericCSVWriter struct {
	w *bufio.Writer
}

func NewCSVWriter(out io.Writer) *NonNumericCSVWriter {
	return &NonNumericCSVWriter{w: bufio.NewWriter(out)}
}

func (self *NonNumericCSVWriter) WriteAny(row []interface{}) error {
	for idx, field := range row {
		if idx > 0 {
			err := self.w.WriteByte(',')
			if err != nil {
				return err
			}
		}

		var err error
		switch t := field.(type) {
		case nil:
		case int, int64, uint64, uint32, float64:
			_, err = fmt.Fprintf(self.w, "%v", t)
		case string:
			_, err = self.w.WriteString(quote(t))
		default:
			_, err = self.w.WriteString(quote(fmt.Sprintf("%v", t)))
		}
		if err != nil {
			return err
		}
	}
	return self.w.WriteByte('\n')
}

func (self *NonNumericCSVWriter) Write(row []string) error {
	any_row := make([]interface{}, 0, len(row))
	for _, field := range row {
		any_row = append(any_row, field)
	}
	return self.WriteAny(any_row)
}

func (self *NonNumericCSVWriter) Flush() error {
	return self.w.Flush()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// One row per entry under a single header line.
type CSVWriter struct {
	out            *NonNumericCSVWriter
	header_written bool
}

func (self *CSVWriter) writeHeader() error {
	if self.header_written {
		return nil
	}
	self.header_written = true
	return self.out.Write(Columns)
}

func (self *CSVWriter) WriteUser(sid string, results []recyclebin.Result) error {
	err := self.writeHeader()
	if err != nil {
		return err
	}

	for _, result := range results {
		row := ResultToRow(sid, result)

		csv_row := make([]interface{}, 0, len(Columns))
		for _, column := range Columns {
			value, _ := row.Get(column)
			csv_row = append(csv_row, value)
		}

		err = self.out.WriteAny(csv_row)
		if err != nil {
			return err
		}
	}
	return nil
}

func (self *CSVWriter) Close() error {
	err := self.writeHeader()
	if err != nil {
		return err
	}
	return self.out.Flush()
}
