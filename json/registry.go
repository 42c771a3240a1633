package json

import (
	"sync"

	"github.com/Velocidex/json"
)

// Report rows carry times and ordered dicts that need their own
// encoding. Packages add encoders for their types from init() and
// every report writer picks them up through NewEncOpts().
var (
	mu       sync.Mutex
	encoders []registeredEncoder
)

type registeredEncoder struct {
	// A value of the type the encoder handles.
	sample  interface{}
	encoder json.EncoderCallback
}

func RegisterCustomEncoder(sample interface{}, encoder json.EncoderCallback) {
	mu.Lock()
	defer mu.Unlock()

	encoders = append(encoders, registeredEncoder{
		sample:  sample,
		encoder: encoder,
	})
}

// Options carrying all the registered encoders. Encoders registered
// later are not seen by options created earlier.
func NewEncOpts() *json.EncOpts {
	mu.Lock()
	defer mu.Unlock()

	opts := json.NewEncOpts()
	for _, e := range encoders {
		opts.WithCallback(e.sample, e.encoder)
	}
	return opts
}
