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

// Parses the $I index records Windows Vista and later keep in each
// user's $Recycle.Bin directory. Each record is a fixed 544 byte
// structure:
//
//	Offset  Size  Field
//	0       8     Header (int64, always 1)
//	8       8     Original file size (int64)
//	16      4     Deletion FILETIME low word
//	20      4     Deletion FILETIME high word
//	24      520   Original path, NUL padded
package recyclebin

import (
	"bytes"
	"io"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"www.velocidex.com/golang/recyclebin/constants"
	"www.velocidex.com/golang/recyclebin/utils"
)

const (
	HEADER_SIZE    = 8
	PATH_SIZE      = 520
	RECORD_SIZE    = 8 + 8 + 4 + 4 + PATH_SIZE
	HEADER_VERSION = int64(1)
)

type Status string

const (
	STATUS_OK                  Status = "ok"
	STATUS_UNSUPPORTED_VERSION Status = "unsupported version"
	STATUS_TRUNCATED           Status = "truncated"
)

// A Result is one of *ValidRecord, *InvalidVersion or *Truncated.
type Result interface {
	// The path of the $I file this result came from.
	Path() string
	Status() Status

	isResult()
}

type ValidRecord struct {
	IndexPath    string
	Header       int64
	FileSize     int64
	FileTimeLow  uint32
	FileTimeHigh uint32
	OriginalPath string
	DeletionTime time.Time

	// The $R file holding the deleted content.
	CompanionPath    string
	CompanionPresent bool
}

func (self *ValidRecord) Path() string   { return self.IndexPath }
func (self *ValidRecord) Status() Status { return STATUS_OK }
func (self *ValidRecord) isResult()      {}

// The header was read but is not a version we understand. Nothing
// past the header was looked at.
type InvalidVersion struct {
	IndexPath string
	Header    int64
}

func (self *InvalidVersion) Path() string   { return self.IndexPath }
func (self *InvalidVersion) Status() Status { return STATUS_UNSUPPORTED_VERSION }
func (self *InvalidVersion) isResult()      {}

// The file ended before all fields could be read.
type Truncated struct {
	IndexPath string

	// Number of bytes that were available.
	Size int64

	// The first field that could not be read completely.
	Field string
}

func (self *Truncated) Path() string   { return self.IndexPath }
func (self *Truncated) Status() Status { return STATUS_TRUNCATED }
func (self *Truncated) isResult()      {}

// Decode a record held in memory. A byte slice can only run short so
// this never fails.
func Decode(data []byte, index_path string) Result {
	result, _ := ParseReader(bytes.NewReader(data), index_path)
	return result
}

// Read the record fields in order from the reader. Only as many bytes
// as needed are consumed: an unsupported header stops after 8
// bytes. Running out of data gives a *Truncated result, an error is
// only returned when the reader itself fails.
func ParseReader(reader io.Reader, index_path string) (Result, error) {
	cursor := newCursor(reader)

	header := cursor.Int64("Header")
	if cursor.err != nil {
		return cursor.truncated(index_path)
	}

	if header != HEADER_VERSION {
		return &InvalidVersion{
			IndexPath: index_path,
			Header:    header,
		}, nil
	}

	result := &ValidRecord{
		IndexPath: index_path,
		Header:    header,
	}
	result.FileSize = cursor.Int64("FileSize")
	result.FileTimeLow = cursor.Uint32("FileTimeLow")
	result.FileTimeHigh = cursor.Uint32("FileTimeHigh")
	path_buffer := cursor.Bytes("OriginalPath", PATH_SIZE)
	if cursor.err != nil {
		return cursor.truncated(index_path)
	}

	result.OriginalPath = DecodePath(path_buffer)
	result.DeletionTime = utils.FiletimeToTime(
		result.FileTimeLow, result.FileTimeHigh)
	result.CompanionPath = CompanionPath(index_path)

	return result, nil
}

// The path buffer holds one byte per character. Every NUL is dropped,
// so padding goes away and paths stored as UTF-16 with ASCII
// characters still come out readable.
func DecodePath(buffer []byte) string {
	buffer = bytes.ReplaceAll(buffer, []byte{0}, nil)

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(buffer)
	if err != nil {
		return string(buffer)
	}
	return string(decoded)
}

// The $R data file is named like the $I file with the first marker
// replaced.
func CompanionPath(index_path string) string {
	return strings.Replace(index_path,
		constants.INDEX_FILE_PREFIX, constants.DATA_FILE_PREFIX, 1)
}
