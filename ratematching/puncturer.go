// Package ratematching implements the rate-matching puncturer used to trim
// encoder output down to a target code rate.
package ratematching

// Puncturer selects which bits of an encoder's output stream survive
// transmission, using a rotating width-bit pattern register. The zero value
// punctures nothing (Default below).
type Puncturer struct {
	state uint
	width uint
}

// New creates a puncturer with the given pattern width and bit pattern. Bit 0
// (LSB) of pattern is consulted first, bit 1 second, and so on up to width
// bits; the pattern then repeats. A 0 bit keeps the corresponding encoder
// output, a 1 bit punctures it.
//
// For example New(4, 0b0010) punctures every 2nd of every 4 bits and keeps
// the other 3.
func New(width uint, pattern uint) Puncturer {
	return Puncturer{state: pattern, width: width}
}

// Default returns a puncturer that punctures nothing.
func Default() Puncturer {
	return Puncturer{state: 0, width: 0}
}

// ReadOutput consumes one bit of the pattern and reports whether the
// corresponding encoder output bit should be kept (true) or punctured
// (false). The pattern register rotates right by one bit on every call.
func (p *Puncturer) ReadOutput() bool {
	output := p.state & 1
	p.state >>= 1
	p.state |= output << (p.width - 1)
	return output == 0
}
