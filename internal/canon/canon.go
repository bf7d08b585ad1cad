// Package canon produces deterministic byte encodings of argument values.
//
// Values are first reduced to a small set of shapes (nil, bool, integers,
// floats, strings, sequences, and string-keyed mappings). Domain types that
// are not one of those shapes describe themselves by implementing
// Canonicaler (and Restorer, to be decodable) or encoding.TextMarshaler.
// The reduced tree is then serialized by a Codec.
package canon

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Exported variables.
var (
	ErrDecoding     = errors.New("decoding failed")
	ErrEncoding     = errors.New("encoding failed")
	ErrUnknownCodec = errors.New("unknown codec")
)

// Canonicaler is implemented by types that express themselves in terms of
// the supported shapes. The returned value is reduced again, so it may itself
// contain other Canonicalers.
type Canonicaler interface {
	Canonical() (any, error)
}

// Codec serializes an already-reduced value tree.
//
// Marshal must be deterministic: equal trees produce equal bytes.
type Codec interface {
	Name() string
	Marshal(tree any) ([]byte, error)
	Unmarshal(data []byte) (any, error)
	Null() []byte
}

// Restorer is the decoding counterpart of Canonicaler. It is called on a
// pointer to the target with the decoded tree.
type Restorer interface {
	FromCanonical(tree any) error
}

// Codecs returns every built-in codec, default first.
func Codecs() []Codec {
	return []Codec{JSON, Msgpack}
}

// Decode fills target (a non-nil pointer) from data produced by Encode with the same codec.
func Decode(codec Codec, data []byte, target any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: no encoded data", ErrDecoding)
	}

	tree, err := codec.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecoding, codec.Name(), err)
	}

	return Restore(tree, target)
}

// Encode reduces v and serializes it with codec.
func Encode(codec Codec, v any) ([]byte, error) {
	tree, err := Reduce(v)
	if err != nil {
		return nil, err
	}

	data, err := codec.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncoding, codec.Name(), err)
	}

	return data, nil
}

// IsNull reports whether data is the codec's encoding of an absent value.
func IsNull(codec Codec, data []byte) bool {
	return bytes.Equal(data, codec.Null())
}

// Lookup returns the built-in codec with the given name (case-insensitive).
func Lookup(name string) (Codec, error) {
	for _, codec := range Codecs() {
		if strings.EqualFold(codec.Name(), strings.TrimSpace(name)) {
			return codec, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}
