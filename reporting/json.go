package reporting

import (
	"io"

	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/recyclebin/json"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
)

// One JSON object per line as entries are written.
type JsonlWriter struct {
	out io.Writer
}

func (self *JsonlWriter) WriteUser(sid string, results []recyclebin.Result) error {
	opts := json.NewEncOpts()
	for _, result := range results {
		err := json.WriteJsonl(self.out, ResultToRow(sid, result), opts)
		if err != nil {
			return err
		}
	}
	return nil
}

func (self *JsonlWriter) Close() error {
	return nil
}

// A single indented JSON array written on Close.
type JsonWriter struct {
	out  io.Writer
	rows []*ordereddict.Dict
}

func (self *JsonWriter) WriteUser(sid string, results []recyclebin.Result) error {
	for _, result := range results {
		self.rows = append(self.rows, ResultToRow(sid, result))
	}
	return nil
}

func (self *JsonWriter) Close() error {
	rows := self.rows
	if rows == nil {
		rows = []*ordereddict.Dict{}
	}

	serialized, err := json.MarshalIndent(rows)
	if err != nil {
		return err
	}
	serialized = append(serialized, '\n')
	_, err = self.out.Write(serialized)
	return err
}
