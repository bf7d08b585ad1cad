package core

import (
	"fmt"

	"github.com/toejough/mockable/internal/canon"
)

// CodableInput is one argument captured as canonical bytes plus a
// description. Two inputs are equal when their bytes are equal; the
// description is only for diagnostics.
//
// CodableInput lets arguments of different types share one Tuple, and lets
// arguments that are not comparable in Go be searched for by value.
type CodableInput struct {
	data        string
	description string
	codec       canon.Codec
}

// NewCodableInput encodes value with the default codec.
func NewCodableInput(value any) (CodableInput, error) {
	return NewCodableInputWith(DefaultCodec(), value)
}

// NewCodableInputWith encodes value with codec.
func NewCodableInputWith(codec canon.Codec, value any) (CodableInput, error) {
	data, err := canon.Encode(codec, value)
	if err != nil {
		return CodableInput{}, err
	}

	description := "nil"
	if !canon.IsNull(codec, data) {
		description = describe(value)
	}

	return CodableInput{data: string(data), description: description, codec: codec}, nil
}

// Bytes returns a copy of the encoded form.
func (c CodableInput) Bytes() []byte {
	return []byte(c.data)
}

// Codec returns the codec the input was encoded with.
func (c CodableInput) Codec() canon.Codec {
	return c.codec
}

// DecodeInto decodes the input into target, which must be a non-nil pointer.
func (c CodableInput) DecodeInto(target any) error {
	if c.codec == nil || c.data == "" {
		return fmt.Errorf("%w: empty codable input", canon.ErrDecoding)
	}

	return canon.Decode(c.codec, []byte(c.data), target)
}

// Description returns the input's human-readable form ("nil" for absent values).
func (c CodableInput) Description() string {
	return c.description
}

// Equal reports whether both inputs encoded to the same bytes.
func (c CodableInput) Equal(other CodableInput) bool {
	return c.data == other.data
}

// IsNil reports whether the input encodes an absent value.
func (c CodableInput) IsNil() bool {
	return c.codec != nil && canon.IsNull(c.codec, []byte(c.data))
}

func (c CodableInput) String() string {
	return c.description
}

// Decode decodes in as a T. It fails with canon.ErrDecoding when the encoded
// shape does not fit T. The input is not changed, so it may be decoded any
// number of times, as different types.
func Decode[T any](in CodableInput) (T, error) {
	var out T

	err := in.DecodeInto(&out)
	if err != nil {
		var zero T
		return zero, err
	}

	return out, nil
}
