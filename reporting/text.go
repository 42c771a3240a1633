package reporting

import (
	"fmt"
	"io"

	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/utils"
)

// The classic indented report, one block per record under a SID
// heading.
type TextWriter struct {
	out     io.Writer
	started bool
}

func (self *TextWriter) start() error {
	if self.started {
		return nil
	}
	self.started = true
	_, err := io.WriteString(self.out, "\n")
	return err
}

func (self *TextWriter) WriteUser(sid string, results []recyclebin.Result) error {
	err := self.start()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(self.out, "\n    %s\n\n", sid)
	if err != nil {
		return err
	}

	for _, result := range results {
		err = self.writeResult(result)
		if err != nil {
			return err
		}
	}
	return nil
}

func (self *TextWriter) writeResult(result recyclebin.Result) error {
	var err error

	switch t := result.(type) {
	case *recyclebin.ValidRecord:
		_, err = fmt.Fprintf(self.out, `
        Trash file : %s
        Source path: %s
        File size  : %d bytes
        Deleted at : %s

`, TrashFile(t), t.OriginalPath, t.FileSize,
			utils.FormatTime(t.DeletionTime))

	case *recyclebin.InvalidVersion:
		_, err = fmt.Fprintf(self.out,
			"\n        Trash file : %s (UNSUPPORTED VERSION %d)\n\n",
			t.IndexPath, t.Header)

	case *recyclebin.Truncated:
		_, err = fmt.Fprintf(self.out,
			"\n        Trash file : %s (TRUNCATED %d bytes)\n\n",
			t.IndexPath, t.Size)
	}

	return err
}

func (self *TextWriter) Close() error {
	err := self.start()
	if err != nil {
		return err
	}
	_, err = io.WriteString(self.out, "\n")
	return err
}
