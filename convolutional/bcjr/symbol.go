// Package bcjr implements the BCJR (Bahl-Cocke-Jelinek-Raviv) forward-backward
// soft decoder in its max-log-MAP form: a log-domain, 8-bit saturating
// trellis decoder used as the constituent decoder of a turbo code.
package bcjr

import "github.com/rmja/fastfec"

// Symbol is one trellis stage's soft input: the systematic and parity
// channel LLRs received over the air, plus the a-priori LLR fed back from
// the other constituent decoder in a turbo iteration.
type Symbol struct {
	Systematic fastfec.Llr
	Parity     fastfec.Llr
	Apriori    fastfec.Llr
}

// NewSymbol creates a Symbol with a zero a-priori LLR, as used for the first
// decoder iteration.
func NewSymbol(systematic, parity fastfec.Llr) Symbol {
	return Symbol{Systematic: systematic, Parity: parity, Apriori: 0}
}
