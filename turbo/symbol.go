package turbo

import "github.com/rmja/fastfec"

// Symbol is one turbo-coded data bit's soft input: the systematic LLR plus
// the parity LLR from each of the two constituent encoders.
type Symbol struct {
	Systematic   fastfec.Llr
	FirstParity  fastfec.Llr
	SecondParity fastfec.Llr
}

// NewSymbol creates a Symbol.
func NewSymbol(systematic, firstParity, secondParity fastfec.Llr) Symbol {
	return Symbol{Systematic: systematic, FirstParity: firstParity, SecondParity: secondParity}
}
