package utils

import (
	"time"

	"github.com/Velocidex/json"
	"www.velocidex.com/golang/recyclebin/constants"
	vjson "www.velocidex.com/golang/recyclebin/json"
)

// Take care of marshaling all timestamps in UTC using the same
// layout as the text reports.
func MarshalTimes(v interface{}, opts *json.EncOpts) ([]byte, error) {
	switch t := v.(type) {
	case time.Time:
		return json.Marshal(FormatTime(t))

	case *time.Time:
		if t == nil {
			return []byte("null"), nil
		}
		return json.Marshal(FormatTime(*t))
	}
	return nil, json.EncoderCallbackSkip
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(constants.TIME_FORMAT)
}

func init() {
	vjson.RegisterCustomEncoder(time.Time{}, MarshalTimes)
	vjson.RegisterCustomEncoder(&time.Time{}, MarshalTimes)
}
