// Package interleaver implements the quadratic polynomial permutation (QPP)
// block interleaver used by LTE/UMTS turbo codes, plus the UMTS catalog of
// supported interleaver lengths.
package interleaver

import "fmt"

// Mapping is one (natural index, interleaved index) pair produced while
// iterating a QPP permutation.
type Mapping struct {
	// I is the natural (source) index.
	I int
	// Pi is pi(I), the interleaved index.
	Pi int
}

// QPP is a quadratic polynomial permutation interleaver: pi(i) = (f1*i +
// f2*i^2) mod length. QPP is an immutable value; construct with New.
type QPP struct {
	length int
	f1     uint16
	f2     uint16
}

// New creates a QPP interleaver of the given length with coefficients f1,
// f2. The catalog in ForUMTS guarantees pi is a bijection for its entries;
// arbitrary (length, f1, f2) triples are not checked here.
func New(length int, f1, f2 uint16) QPP {
	if length <= 0 {
		panic(fmt.Sprintf("interleaver: length %d must be positive", length))
	}
	return QPP{length: length, f1: f1, f2: f2}
}

// Len returns the interleaver length K.
func (q QPP) Len() int {
	return q.length
}

// At returns pi(i) computed directly from the quadratic polynomial. Calling
// At for the whole sequence is slower than using Iter.
func (q QPP) At(i int) int {
	// Widen to 64 bits: f2*i*i can exceed 32 bits for the largest catalog
	// lengths.
	ii := int64(i)
	f1 := int64(q.f1)
	f2 := int64(q.f2)
	length := int64(q.length)
	return int((f1*ii + f2*ii*ii) % length)
}

// Iter returns an iterator over the permuted sequence in natural-index
// order, using the incremental recursion pi(i+1) = (pi(i)+g(i)) mod K,
// g(i+1) = (g(i)+2*f2) mod K.
func (q QPP) Iter() *Iterator {
	return &Iterator{
		length: q.length,
		incr:   (2 * int(q.f2)) % q.length,
		g:      (int(q.f1) + int(q.f2)) % q.length,
	}
}

// Interleave sets dst[i] = src[pi(i)] for all i. src and dst must both have
// length Len() and must not alias.
func (q QPP) Interleave(src, dst []int8) {
	mustMatchLength(q, src, dst)
	it := q.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		dst[m.I] = src[m.Pi]
	}
}

// Deinterleave sets dst[pi(i)] = src[i] for all i. src and dst must both
// have length Len() and must not alias.
func (q QPP) Deinterleave(src, dst []int8) {
	mustMatchLength(q, src, dst)
	it := q.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		dst[m.Pi] = src[m.I]
	}
}

func mustMatchLength(q QPP, src, dst []int8) {
	if len(src) != q.length || len(dst) != q.length {
		panic(fmt.Sprintf("interleaver: buffer length mismatch: want %d, got src=%d dst=%d", q.length, len(src), len(dst)))
	}
}

// Iterator produces the permuted sequence (i, pi(i)) in natural-index
// order. The zero value is not usable; create one with QPP.Iter.
type Iterator struct {
	length int
	incr   int
	pi     int
	g      int
	i      int
}

// Next returns the next (i, pi(i)) mapping, or ok=false once the sequence
// is exhausted.
func (it *Iterator) Next() (m Mapping, ok bool) {
	if it.i >= it.length {
		return Mapping{}, false
	}

	m = Mapping{I: it.i, Pi: it.pi}

	it.pi = (it.pi + it.g) % it.length
	it.g = (it.g + it.incr) % it.length
	it.i++
	return m, true
}
