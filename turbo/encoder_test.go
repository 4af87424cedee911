package turbo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmja/fastfec/convolutional"
	"github.com/rmja/fastfec/interleaver"
)

var umtsConstituent = convolutional.New(4, []int{0b1011, 0b1101}, 0b1011)

// recordingWriter records each word as an int, matching the bit layout used
// by the reference encoder tests: bit 0 is the systematic/input bit, bit 1
// the first encoder's parity (in a tail word, the parity of the encoder
// being terminated), bit 2 (data words only) the second encoder's parity.
type recordingWriter struct {
	words []int
}

func (w *recordingWriter) WriteData(systematic, firstParity, secondParity bool) {
	w.words = append(w.words, boolWord(systematic, firstParity, secondParity))
}

func (w *recordingWriter) WriteTail(encoderIndex int, input, parity bool) {
	w.words = append(w.words, boolWord(input, parity, false))
}

func boolWord(a, b, c bool) int {
	word := 0
	if a {
		word |= 0b001
	}
	if b {
		word |= 0b010
	}
	if c {
		word |= 0b100
	}
	return word
}

func TestEncodeUmtsCaseOne(t *testing.T) {
	expected := []int{
		0b111, 0b001, 0b000, 0b111, 0b111, 0b100, 0b010, 0b111,
		0b00, 0b11,
		0b00, 0b00,
		0b00, 0b00,
	}
	input := boolsFromInts(1, 1, 0, 1, 1, 0, 0, 1)

	code := NewCode(umtsConstituent)
	encoder := NewEncoder(code)
	il := interleaver.New(len(input), 3, 0)
	w := &recordingWriter{}

	encoder.Encode(input, il, w)

	assert.Equal(t, expected, w.words)
}

func TestEncodeUmtsCaseTwo(t *testing.T) {
	expected := []int{
		0b000, 0b011, 0b101, 0b011, 0b101, 0b010, 0b011, 0b101,
		0b110, 0b111, 0b110, 0b000, 0b001, 0b111, 0b001, 0b010,
		0b11, 0b01,
		0b10, 0b11,
		0b11, 0b00,
	}
	input := boolsFromInts(
		0, 1, 1, 1, 1, 0, 1, 1,
		0, 1, 0, 0, 1, 1, 1, 0,
	)

	code := NewCode(umtsConstituent)
	encoder := NewEncoder(code)
	il := interleaver.New(len(input), 1, 4)
	w := &recordingWriter{}

	encoder.Encode(input, il, w)

	assert.Equal(t, expected, w.words)
}

func boolsFromInts(bits ...int) []bool {
	out := make([]bool, len(bits))
	for i, b := range bits {
		out[i] = b == 1
	}
	return out
}
