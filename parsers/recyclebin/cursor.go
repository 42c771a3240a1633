package recyclebin

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Reads little endian fields sequentially. After the first short
// read all further reads are skipped and the error is kept.
type cursor struct {
	reader io.Reader
	offset int64
	err    error
	field  string
}

func newCursor(reader io.Reader) *cursor {
	return &cursor{reader: reader}
}

func (self *cursor) Bytes(field string, length int) []byte {
	if self.err != nil {
		return nil
	}

	buf := make([]byte, length)
	n, err := io.ReadFull(self.reader, buf)
	self.offset += int64(n)
	if err != nil {
		self.err = err
		self.field = field
		return nil
	}
	return buf
}

func (self *cursor) Int64(field string) int64 {
	buf := self.Bytes(field, 8)
	if buf == nil {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(buf))
}

func (self *cursor) Uint32(field string) uint32 {
	buf := self.Bytes(field, 4)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf)
}

func (self *cursor) truncated(index_path string) (Result, error) {
	if !errors.Is(self.err, io.EOF) && !errors.Is(self.err, io.ErrUnexpectedEOF) {
		return nil, errors.Wrapf(self.err, "reading %v at offset %v",
			self.field, self.offset)
	}

	return &Truncated{
		IndexPath: index_path,
		Size:      self.offset,
		Field:     self.field,
	}, nil
}
