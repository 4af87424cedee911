package bcjr

import (
	"testing"

	"github.com/rmja/fastfec"
)

// FuzzGenericDecode checks that the generic decoder never panics for any
// systematic/parity LLR bytes. Blocks too short to open and close the
// terminated trellis are skipped.
func FuzzGenericDecode(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	f.Add([]byte{0x7f, 0x80, 0xff, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})

	f.Fuzz(func(t *testing.T, data []byte) {
		n := len(data) / 2
		if n < 2*umtsConstituent.Mem() {
			return
		}
		input := make([]Symbol, n)
		for i := range input {
			input[i] = NewSymbol(fastfec.Llr(int8(data[2*i])), fastfec.Llr(int8(data[2*i+1])))
		}
		output := make([]fastfec.Llr, n)
		NewDecoder(umtsConstituent, true).Decode(input, output)
	})
}

// FuzzUmts8MatchesGeneric checks that the 8-state UMTS specialization never
// panics and always agrees bit-for-bit with the generic decoder, for any
// systematic/parity LLR bytes.
func FuzzUmts8MatchesGeneric(f *testing.F) {
	f.Add([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	f.Add([]byte{0x04, 0x04, 0x04, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc, 0xfc})
	f.Add([]byte{0x7f, 0x80, 0xff, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09})

	f.Fuzz(func(t *testing.T, data []byte) {
		n := len(data) / 2
		if n < 2*umtsConstituent.Mem() {
			return
		}
		input := make([]Symbol, n)
		for i := range input {
			input[i] = NewSymbol(fastfec.Llr(int8(data[2*i])), fastfec.Llr(int8(data[2*i+1])))
		}

		generic := make([]fastfec.Llr, n)
		NewDecoder(umtsConstituent, true).Decode(input, generic)

		fast := make([]fastfec.Llr, n)
		NewUmts8Decoder(true).Decode(input, fast)

		for i := range generic {
			if generic[i] != fast[i] {
				t.Fatalf("mismatch at index %d: generic=%d fast=%d", i, generic[i], fast[i])
			}
		}
	})
}
