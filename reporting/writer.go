/*
Velociraptor - Dig Deeper
Copyright (C) 2019-2025 Rapid7 Inc.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package reporting

import (
	"io"
	"strings"

	pkg_errors "github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"www.velocidex.com/golang/recyclebin/constants"
	"www.velocidex.com/golang/recyclebin/index"
	"www.velocidex.com/golang/recyclebin/parsers/recyclebin"
	"www.velocidex.com/golang/recyclebin/utils"
)

// Renders index entries in one of the output formats. WriteUser is
// called once per user in index order, Close must be called to
// complete the output. Close does not close the underlying writer.
type RecordWriter interface {
	WriteUser(sid string, results []recyclebin.Result) error
	Close() error
}

func NewWriter(format, encoding_name string, out io.Writer) (RecordWriter, error) {
	encoder, err := GetEncoder(encoding_name)
	if err != nil {
		return nil, err
	}

	var encoded *transform.Writer
	if encoder != nil {
		encoded = transform.NewWriter(out, encoder)
		out = encoded
	}

	var writer RecordWriter
	switch format {
	case constants.FORMAT_TEXT, "":
		writer = &TextWriter{out: out}

	case constants.FORMAT_CSV:
		writer = &CSVWriter{out: NewCSVWriter(out)}

	case constants.FORMAT_JSONL:
		writer = &JsonlWriter{out: out}

	case constants.FORMAT_JSON:
		writer = &JsonWriter{out: out}

	case constants.FORMAT_TABLE:
		writer = NewTableWriter(out)

	default:
		return nil, pkg_errors.Wrap(utils.UnsupportedFormat, format)
	}

	if encoded != nil {
		writer = &encodingWriter{RecordWriter: writer, encoded: encoded}
	}
	return writer, nil
}

// Returns nil for utf-8 since the output needs no transformation.
// Characters the target encoding can not represent are replaced.
func GetEncoder(name string) (*encoding.Encoder, error) {
	if name == "" {
		return nil, nil
	}

	enc, err := htmlindex.Get(strings.ToLower(name))
	if err != nil {
		return nil, pkg_errors.Wrapf(utils.InvalidArgError,
			"Unknown output encoding %v", name)
	}

	if enc == unicode.UTF8 {
		return nil, nil
	}

	return encoding.ReplaceUnsupported(enc.NewEncoder()), nil
}

// Flushes the encoder after the format is complete.
type encodingWriter struct {
	RecordWriter
	encoded *transform.Writer
}

func (self *encodingWriter) Close() error {
	err := self.RecordWriter.Close()
	if err != nil {
		return err
	}
	return self.encoded.Close()
}

// Write the whole index and complete the output.
func WriteIndex(writer RecordWriter, idx *index.Index) error {
	for _, sid := range idx.Users() {
		err := writer.WriteUser(sid, idx.Results(sid))
		if err != nil {
			return err
		}
	}
	return writer.Close()
}
