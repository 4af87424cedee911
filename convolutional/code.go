// Package convolutional implements binary convolutional codes: their
// trellis definition, a stateful encoder, and (in the bcjr subpackage) a
// soft-input/soft-output decoder.
package convolutional

import (
	"fmt"
	"math/bits"

	"github.com/rmja/fastfec"
)

// State is a trellis state: the contents of the encoder's shift register,
// MSB = most recently shifted bit.
type State int

// Output is the concatenated output word for one encoder step: bit j holds
// the output of generator polynomial j, so generator 0 maps to the least
// significant bit.
type Output int

// Code is an immutable convolutional code: constraint length, generator
// polynomials and an optional feedback polynomial. Construct with New;
// zero values are not valid codes.
type Code struct {
	constraintLength int
	generators       []int
	feedback         int
}

// New creates a convolutional code with the given constraint length,
// generator polynomials (one per output bit, generator 0 -> output bit 0)
// and feedback polynomial (0 for a non-recursive, feed-forward code).
//
// New panics if generators is empty or if any polynomial (including
// feedback) is out of range for the constraint length - these are
// configuration faults, caught at construction time.
func New(constraintLength int, generators []int, feedback int) Code {
	if constraintLength < 2 || constraintLength > 9 {
		panic(fmt.Sprintf("convolutional: constraint length %d out of range [2,9]", constraintLength))
	}
	if len(generators) == 0 {
		panic("convolutional: generators must not be empty")
	}
	limit := 1 << constraintLength
	for i, g := range generators {
		if g < 0 || g >= limit {
			panic(fmt.Sprintf("convolutional: generator[%d]=%#x out of range for constraint length %d", i, g, constraintLength))
		}
	}
	if feedback < 0 || feedback >= limit {
		panic(fmt.Sprintf("convolutional: feedback=%#x out of range for constraint length %d", feedback, constraintLength))
	}

	gens := make([]int, len(generators))
	copy(gens, generators)
	return Code{
		constraintLength: constraintLength,
		generators:       gens,
		feedback:         feedback,
	}
}

// Rate returns the code's k/n rate. k is always 1; n is the number of
// generator polynomials.
func (c Code) Rate() fastfec.CodeRate {
	return fastfec.CodeRate{K: 1, N: uint8(len(c.generators))}
}

// Mem returns the code's memory: the number of shift register stages
// (constraint length - 1).
func (c Code) Mem() int {
	return c.constraintLength - 1
}

// ConstraintLength returns the code's constraint length.
func (c Code) ConstraintLength() int {
	return c.constraintLength
}

// Generators returns the code's generator polynomials. The returned slice
// must not be mutated.
func (c Code) Generators() []int {
	return c.generators
}

// Feedback returns the feedback polynomial (0 for feed-forward codes).
func (c Code) Feedback() int {
	return c.feedback
}

// IsSystematic reports whether the code is systematic, i.e. the first
// generator equals the feedback polynomial.
func (c Code) IsSystematic() bool {
	return c.generators[0] == c.feedback
}

// NextState returns the trellis state reached from current on input bit u.
func (c Code) NextState(current State, u bool) State {
	sum := bits.OnesCount(uint(int(current)&c.feedback)) & 1
	next := int(current) >> 1
	bit := 0
	if u {
		bit = 1
	}
	next |= (bit ^ sum) << (c.Mem() - 1)
	return State(next)
}

// TerminationInput returns the input bit that drives the shift register's
// newest bit to zero on the next transition from current.
func (c Code) TerminationInput(current State) bool {
	next0 := c.NextState(current, false)
	return (int(next0) >> (c.Mem() - 1)) != 0
}

// Output returns the concatenated output word for the pair (current, u).
// Generator 0 maps to output bit 0 ("polynomial[0] -> bit 0").
func (c Code) Output(current State, u bool) Output {
	feedbackSum := bits.OnesCount(uint(int(current) & c.feedback))
	if u {
		feedbackSum++
	}

	var output, mask int
	mask = 1
	for _, poly := range c.generators {
		sum := (feedbackSum + bits.OnesCount(uint(int(current)&poly))) & 1
		output |= sum * mask
		mask <<= 1
	}
	return Output(output)
}
