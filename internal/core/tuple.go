package core

import (
	"fmt"
	"slices"
	"strings"
)

// Tuple packages the arguments of one call into a single context value.
//
// Use Tuple[E] with a comparable element type when every argument has the
// same type, and Tuple[CodableInput] (see NewCodableTuple) when they differ.
// Tuples are immutable.
type Tuple[E any] struct {
	inputs []E
}

// NewTuple builds a tuple from inputs, in order.
func NewTuple[E any](inputs ...E) Tuple[E] {
	return Tuple[E]{inputs: slices.Clone(inputs)}
}

// NewCodableTuple encodes each value with the default codec.
func NewCodableTuple(values ...any) (Tuple[CodableInput], error) {
	inputs := make([]CodableInput, len(values))

	for i, value := range values {
		input, err := NewCodableInput(value)
		if err != nil {
			return Tuple[CodableInput]{}, fmt.Errorf("argument %d: %w", i, err)
		}

		inputs[i] = input
	}

	return Tuple[CodableInput]{inputs: inputs}, nil
}

// At returns the i-th input. It panics if i is out of range.
func (t Tuple[E]) At(i int) E {
	return t.inputs[i]
}

// Contains reports whether any input equals e.
func (t Tuple[E]) Contains(e E) bool {
	for _, input := range t.inputs {
		if valuesEqual(input, e) {
			return true
		}
	}

	return false
}

// Equal reports whether both tuples have the same length and pairwise equal inputs.
func (t Tuple[E]) Equal(other Tuple[E]) bool {
	if len(t.inputs) != len(other.inputs) {
		return false
	}

	for i := range t.inputs {
		if !valuesEqual(t.inputs[i], other.inputs[i]) {
			return false
		}
	}

	return true
}

// Inputs returns a copy of the inputs.
func (t Tuple[E]) Inputs() []E {
	return slices.Clone(t.inputs)
}

// Len returns the number of inputs.
func (t Tuple[E]) Len() int {
	return len(t.inputs)
}

func (t Tuple[E]) String() string {
	parts := make([]string, len(t.inputs))
	for i, input := range t.inputs {
		parts[i] = describe(input)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
