package tweetstream

import (
	"encoding/json"
	"errors"
)

// Decoder turns one raw item into a generic JSON object tree. Implementations
// must report an error for malformed input and for top-level values that are
// not objects (arrays, strings, numbers, null).
//
// The default decoder uses encoding/json; supply an alternative with
// WithDecoder if a different engine is needed.
type Decoder interface {
	Decode(raw []byte) (map[string]json.RawMessage, error)
}

type jsonDecoder struct{}

var errNotAnObject = errors.New("top-level value is not a JSON object")

func (jsonDecoder) Decode(raw []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, err
	}
	// "null" unmarshals into a nil map without error.
	if obj == nil {
		return nil, errNotAnObject
	}
	return obj, nil
}

var defaultDecoder Decoder = jsonDecoder{}
