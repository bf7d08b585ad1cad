package mockable_test

import (
	"errors"
	"os"
	"slices"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/toejough/mockable"
	"pgregory.net/rapid"
)

var errExpected = errors.New("expected")

// TestHolders_StartEmpty verifies that fresh holders have no history.
func TestHolders_StartEmpty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	plain := mockable.NewMock(func(int) int { return 0 })
	throwing := mockable.NewThrowingMock(func(int) (int, error) { return 0, nil })

	g.Expect(plain.WasCalled()).To(BeFalse())
	g.Expect(plain.History()).To(BeEmpty())
	g.Expect(throwing.WasCalled()).To(BeFalse())
	g.Expect(throwing.History()).To(BeEmpty())
}

// TestFileExistsScenario replaces a disk check with a constant and verifies
// the call is recorded.
func TestFileExistsScenario(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	existsOnDisk := func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	fileExists := mockable.NewMock(existsOnDisk)
	fileExists.Override(func(string) bool { return true })

	g.Expect(fileExists.Invoke("X")).To(BeTrue())
	g.Expect(fileExists.WasCalled()).To(BeTrue())
	g.Expect(fileExists.WasCalledWith("X")).To(BeTrue())
}

// TestThrowingScenario verifies a failing loader surfaces its error and
// leaves exactly one failure entry.
func TestThrowingScenario(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	remove := mockable.NewThrowingMock(func(string) (struct{}, error) { return struct{}{}, nil })
	remove.Fails(errExpected)

	_, err := remove.Invoke("anything")

	g.Expect(err).To(BeIdenticalTo(errExpected))
	g.Expect(remove.History()).To(HaveLen(1))

	entry := remove.History()[0]
	g.Expect(entry.Context()).To(Equal("anything"))
	g.Expect(entry.Outcome().IsSuccess()).To(BeFalse())
	g.Expect(entry.Outcome().Err()).To(BeIdenticalTo(errExpected))
}

// TestResetIdempotence_Rapid verifies reset restores the default behavior
// however many times it is applied.
func TestResetIdempotence_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		g := NewWithT(rt)
		offset := rapid.Int().Draw(rt, "offset")
		input := rapid.IntRange(-1000, 1000).Draw(rt, "input")
		resets := rapid.IntRange(1, 3).Draw(rt, "resets")

		def := func(n int) int { return n * 2 }
		mock := mockable.NewMock(def)
		mock.Override(func(n int) int { return n + offset })

		for range resets {
			mock.Reset()
		}

		g.Expect(mock.Invoke(input)).To(Equal(def(input)))
		g.Expect(mock.IsOverridden()).To(BeFalse())
	})
}

// TestOrderPreservation_Rapid verifies contexts come back in call order,
// duplicates included.
func TestOrderPreservation_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		g := NewWithT(rt)
		calls := rapid.SliceOf(rapid.IntRange(0, 5)).Draw(rt, "calls")

		mock := mockable.NewMock(func(n int) bool { return n%2 == 0 })
		for _, c := range calls {
			mock.Invoke(c)
		}

		g.Expect(mock.CallCount()).To(Equal(len(calls)))

		contexts := slices.Collect(mock.Usage().Contexts())
		if len(calls) == 0 {
			g.Expect(contexts).To(BeEmpty())
			return
		}

		g.Expect(contexts).To(Equal(calls))

		last, ok := mock.Usage().Last()
		g.Expect(ok).To(BeTrue())
		g.Expect(last.Context()).To(Equal(calls[len(calls)-1]))
	})
}

// TestCodableRoundTrip_Rapid verifies decode inverts encode for the
// primitive shapes.
func TestCodableRoundTrip_Rapid(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		g := NewWithT(rt)
		word := rapid.String().Draw(rt, "word")
		counts := rapid.MapOf(rapid.StringMatching(`[a-z]{1,6}`), rapid.IntRange(-1<<40, 1<<40)).Draw(rt, "counts")

		for _, codec := range []mockable.Codec{mockable.JSONCodec(), mockable.MsgpackCodec()} {
			wordInput, err := mockable.NewCodableInputWith(codec, word)
			g.Expect(err).NotTo(HaveOccurred())
			g.Expect(mockable.Decode[string](wordInput)).To(Equal(word))

			countsInput, err := mockable.NewCodableInputWith(codec, counts)
			g.Expect(err).NotTo(HaveOccurred())

			decoded, err := mockable.Decode[map[string]int](countsInput)
			g.Expect(err).NotTo(HaveOccurred())

			if len(counts) == 0 {
				g.Expect(decoded).To(BeEmpty())
			} else {
				g.Expect(decoded).To(Equal(counts))
			}
		}
	})
}

// TestCodableNil verifies an absent value describes as "nil" and decodes
// back to absent.
func TestCodableNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var absent *string

	input, err := mockable.NewCodableInput(absent)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(input.Description()).To(Equal("nil"))
	g.Expect(input.IsNil()).To(BeTrue())

	decoded, err := mockable.Decode[*string](input)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(decoded).To(BeNil())

	dynamic, err := mockable.Decode[any](input)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(dynamic).To(BeNil())

	_, err = mockable.Decode[int](input)
	g.Expect(err).To(MatchError(mockable.ErrDecoding))

	empty, err := mockable.NewCodableInput("")
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(input.Equal(empty)).To(BeFalse())
}

// TestPartialMatch verifies single-argument search over multi-argument calls.
func TestPartialMatch(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	copyItem := mockable.NewThrowingMock(func(mockable.Tuple[string]) (struct{}, error) {
		return struct{}{}, nil
	})
	_, err := copyItem.Invoke(mockable.NewTuple("a", "b"))
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(mockable.WasCalledWithInput(copyItem.Usage(), "a")).To(BeTrue())
	g.Expect(mockable.WasCalledWithInput(copyItem.Usage(), "b")).To(BeTrue())
	g.Expect(mockable.WasCalledWithInput(copyItem.Usage(), "c")).To(BeFalse())

	listing := mockable.NewMock(func(mockable.Tuple[mockable.CodableInput]) int { return 0 })
	args, err := mockable.NewCodableTuple("a", 2, []bool{true})
	g.Expect(err).NotTo(HaveOccurred())
	listing.Invoke(args)

	for _, value := range []any{"a", 2, []bool{true}} {
		g.Expect(mockable.WasCalledWithValue(listing.Usage(), value)).To(BeTrue())
	}

	g.Expect(mockable.WasCalledWithValue(listing.Usage(), "c")).To(BeFalse())

	_, err = mockable.WasCalledWithValue(listing.Usage(), func() {})
	g.Expect(err).To(MatchError(mockable.ErrEncoding))
}

// TestNewCodableTuple_PropagatesEncodingError verifies tuple construction
// fails when any element cannot be encoded.
func TestNewCodableTuple_PropagatesEncodingError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := mockable.NewCodableTuple("ok", make(chan int))

	g.Expect(err).To(MatchError(mockable.ErrEncoding))
	g.Expect(err).To(MatchError(ContainSubstring("argument 1")))
}

// TestAssertions_PassOnRealTest runs the assertion helpers against a real
// *testing.T so a regression in the passing path fails this test.
func TestAssertions_PassOnRealTest(t *testing.T) {
	t.Parallel()

	mock := mockable.NewMock(func(n int) int { return n }, mockable.WithName("double"))
	mockable.AssertNotCalled(t, mock)

	mock.Invoke(1)
	mock.Invoke(5)

	mockable.AssertCalled(t, mock)
	mockable.AssertCallCount(t, mock, 2)
	mockable.AssertCalledWith(t, mock, 5)
	mockable.AssertCalledWith(t, mock.Usage(), BeNumerically(">", 4))
}

func TestMatchValue(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, _ := mockable.MatchValue(3, BeNumerically("<", 5))
	g.Expect(ok).To(BeTrue())

	ok, msg := mockable.MatchValue([]int{1}, []int{2})
	g.Expect(ok).To(BeFalse())
	g.Expect(msg).NotTo(BeEmpty())
}
