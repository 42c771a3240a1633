package recyclebin

import (
	"encoding/binary"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Serialize a record into the on disk layout. Used to build test
// fixtures. Characters outside ISO-8859-1 are replaced and paths
// longer than the field are cut.
func Encode(record *ValidRecord) []byte {
	result := make([]byte, RECORD_SIZE)
	binary.LittleEndian.PutUint64(result[0:], uint64(record.Header))
	binary.LittleEndian.PutUint64(result[8:], uint64(record.FileSize))
	binary.LittleEndian.PutUint32(result[16:], record.FileTimeLow)
	binary.LittleEndian.PutUint32(result[20:], record.FileTimeHigh)

	encoder := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	encoded, err := encoder.String(record.OriginalPath)
	if err != nil {
		encoded = record.OriginalPath
	}
	copy(result[24:], encoded)

	return result
}
