package core

import (
	"github.com/toejough/mockable/internal/canon"
)

// InputDescriptions returns, per call, the description of each codable input.
func InputDescriptions[V any](usage *Usage[Tuple[CodableInput], V]) [][]string {
	descriptions := make([][]string, 0, usage.Len())

	for ctx := range usage.Contexts() {
		row := make([]string, ctx.Len())
		for i, input := range ctx.inputs {
			row[i] = input.description
		}

		descriptions = append(descriptions, row)
	}

	return descriptions
}

// WasCalledMatching reports whether any recorded context satisfies expected,
// which may be a Matcher (gomega matchers included) or a plain value.
func WasCalledMatching[C, V any](usage *Usage[C, V], expected any) bool {
	return usage.HasContext(expected)
}

// WasCalledWithInput reports whether input was passed as any one of the
// arguments of any recorded call.
func WasCalledWithInput[E, V any](usage *Usage[Tuple[E], V], input E) bool {
	for ctx := range usage.Contexts() {
		if ctx.Contains(input) {
			return true
		}
	}

	return false
}

// WasCalledWithValue reports whether value, once encoded, equals any one of
// the codable arguments of any recorded call. Each argument is compared in
// the codec it was captured with. An encoding failure is returned rather
// than reported as "not called"; with no codable arguments recorded, value is
// still encoded with the default codec so the failure surfaces.
func WasCalledWithValue[V any](usage *Usage[Tuple[CodableInput], V], value any) (bool, error) {
	encoded := map[string]string{}

	encode := func(codec canon.Codec) (string, error) {
		if data, ok := encoded[codec.Name()]; ok {
			return data, nil
		}

		data, err := canon.Encode(codec, value)
		if err != nil {
			return "", err
		}

		encoded[codec.Name()] = string(data)

		return string(data), nil
	}

	for ctx := range usage.Contexts() {
		for _, input := range ctx.inputs {
			if input.codec == nil {
				continue
			}

			data, err := encode(input.codec)
			if err != nil {
				return false, err
			}

			if input.data == data {
				return true, nil
			}
		}
	}

	if len(encoded) == 0 {
		if _, err := encode(DefaultCodec()); err != nil {
			return false, err
		}
	}

	return false, nil
}
