package bcjr

import (
	"fmt"

	"github.com/rmja/fastfec"
	"github.com/rmja/fastfec/convolutional"
)

// unreachable is the sentinel log-metric for a trellis state that cannot be
// occupied at a given stage: effectively -infinity.
const unreachable int8 = -128

// Decoder is a generic forward-backward log-MAP (max-log approximation)
// decoder for any rate-1/2 systematic convolutional code. It trades the
// byte-lane SIMD tricks of a fixed-size specialization for a representation
// that works for any state count, and is the reference the specializations
// are checked against.
type Decoder struct {
	code       convolutional.Code
	terminated bool
	states     int

	// succ[s][0/1] is the successor state of s on input 0/1.
	succ [][2]convolutional.State
	// parity[s][0/1] is the parity output bit of s on input 0/1.
	parity [][2]int8

	// forwardValid[k] is the set of states reachable from state 0 in k
	// forward transitions, for k = 0..mem. Index mem is already the full
	// state set for any well-formed trellis.
	forwardValid [][]bool

	// backwardValid[k] is the set of states from which k forced
	// termination transitions reach state 0, for k = 0..mem. Only
	// populated when terminated is true.
	backwardValid [][]bool

	// Workspace reused across Decode calls, grown on demand and never
	// shrunk. gamma and alphaFlat/alphaRows scale with the block length n;
	// beta/betaScratch are sized to states and never need to grow.
	gamma       [][4]int8
	alphaFlat   []int8
	alphaRows   [][]int8
	beta        []int8
	betaScratch []int8
}

// NewDecoder creates a BCJR decoder for code. terminated declares whether
// the encoder drove the trellis back to state 0 with a tail of code.Mem()
// input bits.
func NewDecoder(code convolutional.Code, terminated bool) *Decoder {
	mem := code.Mem()
	states := 1 << mem

	succ := make([][2]convolutional.State, states)
	parity := make([][2]int8, states)
	for s := 0; s < states; s++ {
		for ui, u := range [2]bool{false, true} {
			state := convolutional.State(s)
			succ[s][ui] = code.NextState(state, u)
			parity[s][ui] = int8((code.Output(state, u) >> 1) & 1)
		}
	}

	d := &Decoder{
		code:        code,
		terminated:  terminated,
		states:      states,
		succ:        succ,
		parity:      parity,
		beta:        make([]int8, states),
		betaScratch: make([]int8, states),
	}
	d.forwardValid = d.computeForwardValid(mem)
	if terminated {
		d.backwardValid = d.computeBackwardValid(mem)
	}
	return d
}

// ensureCapacity grows the gamma/alpha workspace to hold a block of n
// symbols, reusing the existing backing arrays when they are already large
// enough. beta/betaScratch are sized to states at construction and never
// need to grow. Repeated calls with the same n (the common case: a turbo
// decoding re-running the same constituent decoder every iteration) do no
// work at all beyond the length checks.
func (d *Decoder) ensureCapacity(n int) {
	if cap(d.gamma) < n {
		d.gamma = make([][4]int8, n)
	} else {
		d.gamma = d.gamma[:n]
	}

	if len(d.alphaRows) == n {
		return
	}

	need := n * d.states
	if cap(d.alphaFlat) < need {
		d.alphaFlat = make([]int8, need)
		d.alphaRows = make([][]int8, n)
	} else {
		d.alphaFlat = d.alphaFlat[:need]
		if cap(d.alphaRows) < n {
			d.alphaRows = make([][]int8, n)
		} else {
			d.alphaRows = d.alphaRows[:n]
		}
	}
	for i := range d.alphaRows {
		d.alphaRows[i] = d.alphaFlat[i*d.states : (i+1)*d.states : (i+1)*d.states]
	}
}

func (d *Decoder) computeForwardValid(mem int) [][]bool {
	result := make([][]bool, mem+1)
	cur := make([]bool, d.states)
	cur[0] = true
	result[0] = cur

	for depth := 1; depth <= mem; depth++ {
		next := make([]bool, d.states)
		for s := 0; s < d.states; s++ {
			if !cur[s] {
				continue
			}
			next[d.succ[s][0]] = true
			next[d.succ[s][1]] = true
		}
		result[depth] = next
		cur = next
	}
	return result
}

func (d *Decoder) computeBackwardValid(mem int) [][]bool {
	// f(s) is the state reached by applying the single forced termination
	// input at s; iterating its preimage from {0} gives the set of states
	// that converge to 0 within k forced steps.
	f := make([]int, d.states)
	for s := 0; s < d.states; s++ {
		ui := 0
		if d.code.TerminationInput(convolutional.State(s)) {
			ui = 1
		}
		f[s] = int(d.succ[s][ui])
	}

	result := make([][]bool, mem+1)
	cur := make([]bool, d.states)
	cur[0] = true
	result[0] = cur

	for depth := 1; depth <= mem; depth++ {
		next := make([]bool, d.states)
		for s := 0; s < d.states; s++ {
			if cur[f[s]] {
				next[s] = true
			}
		}
		result[depth] = next
		cur = next
	}
	return result
}

// Decode soft-decodes a block of symbols, writing one APP LLR per input
// symbol into output. output must be at least as long as input. input must
// hold at least (1+terminated)*code.Mem() symbols, enough to open and
// possibly close the trellis.
func (d *Decoder) Decode(input []Symbol, output []fastfec.Llr) {
	mem := d.code.Mem()
	minLen := mem
	if d.terminated {
		minLen = 2 * mem
	}
	if len(input) < minLen {
		panic(fmt.Sprintf("bcjr: input of length %d is too short to open and possibly close the trellis (need >= %d)", len(input), minLen))
	}
	if len(output) < len(input) {
		panic(fmt.Sprintf("bcjr: output of length %d is shorter than input of length %d", len(output), len(input)))
	}

	n := len(input)
	d.ensureCapacity(n)

	gamma := d.gamma
	for i, sym := range input {
		g01 := clampLlr(int32(sym.Parity))
		g10 := clampLlr(int32(sym.Apriori) + int32(sym.Systematic))
		g11 := clampLlr(int32(g01) + int32(g10))
		gamma[i] = [4]int8{0, g01, g10, g11}
	}

	alpha := d.alphaRows
	a0 := alpha[0]
	for s := range a0 {
		a0[s] = unreachable
	}
	a0[0] = 0
	d.scaleInPlace(a0, 0, n)
	for idx := 1; idx < n; idx++ {
		cur := alpha[idx]
		d.nextAlphaInto(cur, alpha[idx-1], gamma[idx-1])
		d.scaleInPlace(cur, idx, n)
	}

	beta := d.beta
	scratch := d.betaScratch
	if d.terminated {
		for s := range beta {
			beta[s] = unreachable
		}
		beta[0] = 0
		d.scaleInPlace(beta, n, n)
	} else {
		for s := range beta {
			beta[s] = 0
		}
	}

	for idx := n - 1; idx >= 0; idx-- {
		output[idx] = d.aposteriori(gamma[idx], alpha[idx], beta)
		d.previousBetaInto(scratch, beta, gamma[idx])
		beta, scratch = scratch, beta
		d.scaleInPlace(beta, idx, n)
	}
}

// gammaIndex maps (u, v) to the packed gamma slot of 4.3: 0 -> (0,0),
// 1 -> (0,1), 2 -> (1,0), 3 -> (1,1).
func gammaIndex(u bool, v int8) int {
	idx := 0
	if u {
		idx |= 2
	}
	if v != 0 {
		idx |= 1
	}
	return idx
}

// nextAlphaInto writes the forward step from prev into dest. dest and prev
// must not alias: every dest[s] is accumulated from potentially many prev
// states before it settles.
func (d *Decoder) nextAlphaInto(dest, prev []int8, g [4]int8) {
	for s := range dest {
		dest[s] = unreachable
	}
	for s := 0; s < d.states; s++ {
		if prev[s] == unreachable {
			continue
		}
		for ui, u := range [2]bool{false, true} {
			ns := d.succ[s][ui]
			cand := addSat8(prev[s], g[gammaIndex(u, d.parity[s][ui])])
			if cand > dest[ns] {
				dest[ns] = cand
			}
		}
	}
}

// previousBetaInto writes the backward step from next into dest. dest and
// next must not alias.
func (d *Decoder) previousBetaInto(dest, next []int8, g [4]int8) {
	for s := 0; s < d.states; s++ {
		best := unreachable
		for ui, u := range [2]bool{false, true} {
			ns := d.succ[s][ui]
			if next[ns] == unreachable {
				continue
			}
			cand := addSat8(next[ns], g[gammaIndex(u, d.parity[s][ui])])
			if cand > best {
				best = cand
			}
		}
		dest[s] = best
	}
}

func (d *Decoder) aposteriori(g [4]int8, alpha, beta []int8) fastfec.Llr {
	max0, max1 := unreachable, unreachable
	for s := 0; s < d.states; s++ {
		if alpha[s] == unreachable {
			continue
		}
		for ui, u := range [2]bool{false, true} {
			ns := d.succ[s][ui]
			if beta[ns] == unreachable {
				continue
			}
			sum := addSat8(addSat8(alpha[s], g[gammaIndex(u, d.parity[s][ui])]), beta[ns])
			if u {
				if sum > max1 {
					max1 = sum
				}
			} else {
				if sum > max0 {
					max0 = sum
				}
			}
		}
	}
	return clampLlr(int32(max1) - int32(max0))
}

// scaleInPlace scales vec to zero-sum over its reachable states at stage
// index of a symbolCount-long block, invalidating unreachable states to
// unreachable. vec is mutated in place.
func (d *Decoder) scaleInPlace(vec []int8, index, symbolCount int) {
	mask := d.mask(index, symbolCount)
	if mask == nil {
		scaleAllInPlace(vec)
		return
	}
	scaleValidInPlace(vec, mask)
}

func (d *Decoder) mask(index, symbolCount int) []bool {
	if index < len(d.forwardValid) {
		return d.forwardValid[index]
	}
	if d.terminated {
		k := symbolCount - index
		if k >= 0 && k < len(d.backwardValid) {
			return d.backwardValid[k]
		}
	}
	return nil
}

func scaleAllInPlace(vec []int8) {
	sum := 0
	for _, v := range vec {
		sum += int(v)
	}
	coeff := int8(sum / len(vec))
	for i, v := range vec {
		vec[i] = subSat8(v, coeff)
	}
}

func scaleValidInPlace(vec []int8, mask []bool) {
	sum, count := 0, 0
	for s, v := range vec {
		if mask[s] {
			sum += int(v)
			count++
		}
	}
	coeff := int8(0)
	if count > 0 {
		coeff = int8(sum / count)
	}
	for s, v := range vec {
		if mask[s] {
			vec[s] = subSat8(v, coeff)
		} else {
			vec[s] = unreachable
		}
	}
}

func clampLlr(v int32) int8 {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return int8(v)
}

func addSat8(a, b int8) int8 {
	return clampLlr(int32(a) + int32(b))
}

func subSat8(a, b int8) int8 {
	return clampLlr(int32(a) - int32(b))
}
