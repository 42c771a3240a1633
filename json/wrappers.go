package json

import (
	"bytes"
	"io"

	"github.com/Velocidex/json"
)

func Marshal(v interface{}) ([]byte, error) {
	opts := NewEncOpts()
	return json.MarshalWithOptions(v, opts)
}

func MustMarshalString(v interface{}) string {
	result, err := Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(result)
}

func MarshalIndent(v interface{}) ([]byte, error) {
	opts := NewEncOpts()
	return MarshalIndentWithOptions(v, opts)
}

func MarshalIndentWithOptions(v interface{}, opts *json.EncOpts) ([]byte, error) {
	b, err := json.MarshalWithOptions(v, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = json.Indent(&buf, b, "", " ")
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write a single JSONL line to the writer.
func WriteJsonl(out io.Writer, v interface{}, opts *json.EncOpts) error {
	serialized, err := json.MarshalWithOptions(v, opts)
	if err != nil {
		return err
	}
	serialized = append(serialized, '\n')
	_, err = out.Write(serialized)
	return err
}

func Unmarshal(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}
