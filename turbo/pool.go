package turbo

import (
	"sync"

	"github.com/rmja/fastfec/convolutional/bcjr"
)

// Pool hands out reusable Decoder instances for a fixed Code, avoiding the
// reachability-table setup NewDecoder does on every call when many
// codeblocks of the same code are decoded back to back (see DecodeBatch).
type Pool struct {
	new  func() interface{}
	pool sync.Pool
}

// NewPool creates a Pool of decoders for code.
func NewPool(code Code, opts bcjr.Options) *Pool {
	p := &Pool{}
	p.new = func() interface{} {
		return NewDecoder(code, opts)
	}
	p.pool = sync.Pool{New: p.new}
	return p
}

// Get returns a pooled Decoder, allocating a new one if the pool is empty.
func (p *Pool) Get() *Decoder {
	return p.pool.Get().(*Decoder)
}

// Put returns a Decoder to the pool.
func (p *Pool) Put(d *Decoder) {
	p.pool.Put(d)
}
