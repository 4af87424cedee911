package turbo

import (
	"fmt"

	"github.com/rmja/fastfec/convolutional"
	"github.com/rmja/fastfec/interleaver"
)

// OutputWriter receives a turbo encoder's output bits. It is free to
// puncture, pack, or channel-modulate them; the encoder never buffers more
// than a single word at a time.
type OutputWriter interface {
	// WriteData writes one data-bit code word: the systematic bit and the
	// parity bit from each constituent encoder.
	WriteData(systematic, firstParity, secondParity bool)
	// WriteTail writes one termination-bit code word for constituent
	// encoder encoderIndex (0 for the first encoder, 1 for the second):
	// the forced termination input bit and its parity output.
	WriteTail(encoderIndex int, input, parity bool)
}

// Encoder is a turbo encoder built from a Code.
type Encoder struct {
	code Code
}

// NewEncoder creates a turbo encoder for code.
func NewEncoder(code Code) *Encoder {
	return &Encoder{code: code}
}

// Code returns the turbo code this encoder was constructed for.
func (e *Encoder) Code() Code {
	return e.code
}

// Encode turbo-encodes source, writing one data word per input bit followed
// by the termination tails of whichever constituent encoders code enables,
// to sink. il must have the same length as source.
func (e *Encoder) Encode(source []bool, il interleaver.QPP, sink OutputWriter) {
	if len(source) != il.Len() {
		panic(fmt.Sprintf("turbo: source length %d does not match interleaver length %d", len(source), il.Len()))
	}

	first := convolutional.NewEncoder(e.code.ConstituentEncoderCode)
	second := convolutional.NewEncoder(e.code.ConstituentEncoderCode)

	it := il.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}

		firstOutput := first.Output(source[m.I])
		secondOutput := second.Output(source[m.Pi])

		sink.WriteData(
			firstOutput&0b01 != 0,
			firstOutput&0b10 != 0,
			secondOutput&0b10 != 0,
		)
	}

	mem := e.code.ConstituentEncoderCode.Mem()
	for i := 0; i < mem; i++ {
		if e.code.TerminateFirst {
			out := first.TerminationOutput()
			sink.WriteTail(0, out&0b01 != 0, out&0b10 != 0)
		}
		if e.code.TerminateSecond {
			out := second.TerminationOutput()
			sink.WriteTail(1, out&0b01 != 0, out&0b10 != 0)
		}
	}
}
