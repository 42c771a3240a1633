// Wrap json library to control encoding.

package json

import (
	"github.com/Velocidex/json"
	"github.com/Velocidex/ordereddict"
)

type EncOpts = json.EncOpts

// Ordered dicts keep their key order when serialized so report
// columns come out in the order they were set.
func MarshalJSONDict(v interface{}, opts *json.EncOpts) ([]byte, error) {
	self, ok := v.(*ordereddict.Dict)
	if !ok {
		return nil, json.EncoderCallbackSkip
	}

	result := []byte{'{'}
	for idx, k := range self.Keys() {
		if idx > 0 {
			result = append(result, ',')
		}

		k_escaped, err := json.MarshalWithOptions(k, opts)
		if err != nil {
			return nil, err
		}
		result = append(result, k_escaped...)
		result = append(result, ':')

		value, _ := self.Get(k)
		v_bytes, err := json.MarshalWithOptions(value, opts)
		if err != nil {
			v_bytes = []byte("null")
		}
		result = append(result, v_bytes...)
	}
	result = append(result, '}')

	return result, nil
}

func init() {
	RegisterCustomEncoder(ordereddict.NewDict(), MarshalJSONDict)
}
