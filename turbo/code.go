// Package turbo implements a parallel-concatenated convolutional (turbo)
// code: two identical rate-1/2 systematic constituent encoders, one of them
// fed through a block interleaver, built into an iterative BCJR turbo
// decoder.
package turbo

import (
	"fmt"

	"github.com/rmja/fastfec/convolutional"
)

// Code describes a turbo code built from a single rate-1/2 systematic
// constituent code, used twice (once interleaved).
type Code struct {
	// ConstituentEncoderCode is the rate-1/2 systematic code both
	// constituent encoders use.
	ConstituentEncoderCode convolutional.Code
	// TerminateFirst drives the first constituent encoder's trellis back
	// to state 0 with a tail after the data bits.
	TerminateFirst bool
	// TerminateSecond independently drives the second constituent
	// encoder's trellis back to state 0.
	TerminateSecond bool
}

// NewCode creates a turbo code from constituent, terminating both
// constituent encoders. constituent must be a rate-1/2 systematic code.
func NewCode(constituent convolutional.Code) Code {
	return NewCodeWithTermination(constituent, true, true)
}

// NewCodeWithTermination creates a turbo code from constituent with explicit
// control over which constituent encoders are terminated. constituent must
// be a rate-1/2 systematic code.
func NewCodeWithTermination(constituent convolutional.Code, terminateFirst, terminateSecond bool) Code {
	rate := constituent.Rate()
	if rate.K != 1 || rate.N != 2 {
		panic(fmt.Sprintf("turbo: constituent code must be rate 1/2, got %d/%d", rate.K, rate.N))
	}
	if !constituent.IsSystematic() {
		panic("turbo: constituent code must be systematic")
	}
	return Code{
		ConstituentEncoderCode: constituent,
		TerminateFirst:         terminateFirst,
		TerminateSecond:        terminateSecond,
	}
}
