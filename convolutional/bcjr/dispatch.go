package bcjr

import (
	"github.com/klauspost/cpuid/v2"

	"github.com/rmja/fastfec"
	"github.com/rmja/fastfec/convolutional"
)

// useUmts8Fast gates the fixed 8-state specialization on the CPU reporting a
// byte-lane SIMD instruction set (SSE2 or ASIMD). When neither is reported,
// New and NewDecodeFunc return the generic Decoder, which gives bit-identical
// results.
var useUmts8Fast = cpuid.CPU.Supports(cpuid.SSE2) || cpuid.CPU.Supports(cpuid.ASIMD)

// Options configures decoder construction.
type Options struct {
	// ForceGeneric disables the 8-state UMTS specialization even when the
	// code and CPU would otherwise use it. Exists for testing and for
	// cross-checking the specialization against the generic decoder.
	ForceGeneric bool
}

// AnyDecoder is satisfied by both the generic Decoder and the 8-state
// Umts8Decoder specialization.
type AnyDecoder interface {
	Decode(input []Symbol, output []fastfec.Llr)
}

// New creates a BCJR decoder for code, transparently using the 8-state UMTS
// specialization when code matches it, the running CPU supports it, and
// opts doesn't disable it. It returns the AnyDecoder interface, which is
// fine for tests and one-off decodes but is the wrong shape for a hot loop
// that calls Decode repeatedly: prefer NewDecodeFunc there.
func New(code convolutional.Code, terminated bool, opts Options) AnyDecoder {
	if !opts.ForceGeneric && useUmts8Fast && SupportsCode(code) {
		return NewUmts8Decoder(terminated)
	}
	return NewDecoder(code, terminated)
}

// NewDecodeFunc resolves the same generic-vs-UMTS8 choice as New, once, and
// returns a bound method value on the concrete decoder instead of the
// AnyDecoder interface. A caller that stashes the result (as turbo.Decoder
// does) and invokes it every iteration calls directly through the concrete
// type's Decode, with no interface dispatch on the repeated call.
func NewDecodeFunc(code convolutional.Code, terminated bool, opts Options) func(input []Symbol, output []fastfec.Llr) {
	if !opts.ForceGeneric && useUmts8Fast && SupportsCode(code) {
		d := NewUmts8Decoder(terminated)
		return d.Decode
	}
	d := NewDecoder(code, terminated)
	return d.Decode
}
