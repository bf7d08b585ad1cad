package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/gowebpki/jcs"
	"github.com/vmihailenco/msgpack/v5"
)

// Exported variables.
var (
	// JSON is the default codec: RFC 8785 canonical JSON. Integers and floats
	// with the same numeric value encode identically. Integers beyond ±2^53
	// and strings that are not valid UTF-8 are rejected, since JSON cannot
	// carry them exactly.
	//
	//nolint:gochecknoglobals // stateless codec value
	JSON Codec = jsonCodec{}

	// Msgpack encodes with sorted map keys and compact integers. Integers and
	// floats encode differently, so 1 and 1.0 are distinct arguments.
	//
	//nolint:gochecknoglobals // stateless codec value
	Msgpack Codec = msgpackCodec{}
)

type jsonCodec struct{}

func (jsonCodec) Marshal(tree any) ([]byte, error) {
	if err := checkJSONExact(tree); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, err
	}

	return jcs.Transform(raw)
}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Null() []byte {
	return []byte("null")
}

func (jsonCodec) Unmarshal(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var tree any

	err := decoder.Decode(&tree)
	if err != nil {
		return nil, err
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}

	return tree, nil
}

type msgpackCodec struct{}

func (msgpackCodec) Marshal(tree any) ([]byte, error) {
	var buf bytes.Buffer

	encoder := msgpack.NewEncoder(&buf)
	encoder.SetSortMapKeys(true)
	encoder.UseCompactInts(true)

	err := encoder.Encode(tree)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (msgpackCodec) Name() string {
	return "msgpack"
}

func (msgpackCodec) Null() []byte {
	return []byte{msgpackNil}
}

func (msgpackCodec) Unmarshal(data []byte) (any, error) {
	reader := bytes.NewReader(data)
	decoder := msgpack.NewDecoder(reader)

	tree, err := decoder.DecodeInterface()
	if err != nil {
		return nil, err
	}

	if reader.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes", errTrailingData, reader.Len())
	}

	return tree, nil
}

// unexported constants.
const (
	maxExactJSONInt = 1 << 53
	msgpackNil      = 0xc0
)

// unexported variables.
var (
	errInexactInteger = errors.New("integer outside the exact range of a JSON number")
	errInvalidUTF8    = errors.New("string is not valid UTF-8")
	errTrailingData   = errors.New("trailing data after value")
)

// checkJSONExact walks a reduced tree for values JSON would silently alter.
func checkJSONExact(tree any) error {
	switch value := tree.(type) {
	case int64:
		if value > maxExactJSONInt || value < -maxExactJSONInt {
			return fmt.Errorf("%w: %d", errInexactInteger, value)
		}
	case uint64:
		if value > maxExactJSONInt {
			return fmt.Errorf("%w: %d", errInexactInteger, value)
		}
	case string:
		if !utf8.ValidString(value) {
			return fmt.Errorf("%w: %q", errInvalidUTF8, value)
		}
	case []any:
		for _, element := range value {
			if err := checkJSONExact(element); err != nil {
				return err
			}
		}
	case map[string]any:
		for key, element := range value {
			if !utf8.ValidString(key) {
				return fmt.Errorf("%w: key %q", errInvalidUTF8, key)
			}

			if err := checkJSONExact(element); err != nil {
				return err
			}
		}
	}

	return nil
}
