package bcjr

import (
	"github.com/rmja/fastfec"
	"github.com/rmja/fastfec/convolutional"
)

// umtsConstituent is the UMTS/LTE 8-state rate-1/2 recursive systematic
// constituent code: constraint length 4, generators (1011, 1101), feedback
// 1011. It is declared locally so the specialization below does not need to
// import the code catalog.
var umtsConstituent = convolutional.New(4, []int{0b1011, 0b1101}, 0b1011)

// umts8Transitions holds, for a fixed 8-state RSC trellis, the tables a
// byte-lane SIMD implementation would otherwise hardcode as shuffle
// constants. They are derived once at init time from umtsConstituent via the
// same rules the generic decoder uses, which guarantees the specialization
// and the generic decoder agree by construction rather than by careful
// transcription of a platform intrinsic.
type umts8Transitions struct {
	// succ[u][s] is the successor of state s on input u.
	succ [2][8]int8
	// pred[u][s'] is the predecessor of state s' on input u, i.e. the
	// inverse of succ[u].
	pred [2][8]int8
	// parity[u][s] is the parity output bit of state s on input u.
	parity [2][8]int8
}

var umts8 = buildUmts8Transitions()

func buildUmts8Transitions() umts8Transitions {
	var t umts8Transitions
	for s := 0; s < 8; s++ {
		for ui, u := range [2]bool{false, true} {
			ns := umtsConstituent.NextState(convolutional.State(s), u)
			t.succ[ui][s] = int8(ns)
			t.pred[ui][ns] = int8(s)
			t.parity[ui][s] = int8((umtsConstituent.Output(convolutional.State(s), u) >> 1) & 1)
		}
	}
	return t
}

// umts8ForwardValid and umts8BackwardValid mirror decoder.go's generic
// reachability computation, specialized to the fixed 8-state opening/closing
// pattern of 4.4: stage 0 -> {0}, stage 1 -> {0,4}, stage 2 -> {0,2,4,6},
// stage >= 3 -> all states; closing mirrors the same sizes.
var umts8ForwardValid = buildUmts8ForwardValid()
var umts8BackwardValid = buildUmts8BackwardValid()

func buildUmts8ForwardValid() [4][8]bool {
	var result [4][8]bool
	result[0][0] = true
	for depth := 1; depth <= 3; depth++ {
		for s := 0; s < 8; s++ {
			if !result[depth-1][s] {
				continue
			}
			result[depth][umts8.succ[0][s]] = true
			result[depth][umts8.succ[1][s]] = true
		}
	}
	return result
}

func buildUmts8BackwardValid() [4][8]bool {
	f := [8]int8{}
	for s := 0; s < 8; s++ {
		ui := 0
		if umtsConstituent.TerminationInput(convolutional.State(s)) {
			ui = 1
		}
		f[s] = umts8.succ[ui][s]
	}

	var result [4][8]bool
	result[0][0] = true
	for depth := 1; depth <= 3; depth++ {
		for s := 0; s < 8; s++ {
			if result[depth-1][f[s]] {
				result[depth][s] = true
			}
		}
	}
	return result
}

// Umts8Decoder is a fixed-size specialization of Decoder for the 8-state
// UMTS constituent code, operating on [8]int8 state vectors instead of
// slices. It produces bit-exact results to Decoder for the same code, and
// exists purely so the hot turbo-decode loop avoids the generic decoder's
// slice-backed state vectors and per-decoder transition tables.
type Umts8Decoder struct {
	terminated bool

	// gamma and alpha are reused across Decode calls, grown on demand and
	// never shrunk. beta/betaScratch are fixed-size [8]int8 arrays (value
	// types), so they need no workspace field: holding them as local
	// variables inside Decode never allocates.
	gamma [][4]int8
	alpha [][8]int8
}

// NewUmts8Decoder creates a specialized decoder for the UMTS constituent
// code. terminated has the same meaning as in NewDecoder.
func NewUmts8Decoder(terminated bool) *Umts8Decoder {
	return &Umts8Decoder{terminated: terminated}
}

// ensureCapacity grows the gamma/alpha workspace to hold a block of n
// symbols. A repeated call with the same n the decoder already holds does
// nothing.
func (d *Umts8Decoder) ensureCapacity(n int) {
	if cap(d.gamma) < n {
		d.gamma = make([][4]int8, n)
	} else {
		d.gamma = d.gamma[:n]
	}
	if len(d.alpha) == n {
		return
	}
	if cap(d.alpha) < n {
		d.alpha = make([][8]int8, n)
	} else {
		d.alpha = d.alpha[:n]
	}
}

// SupportsCode reports whether code is the fixed 8-state UMTS constituent
// code this specialization is built for.
func SupportsCode(code convolutional.Code) bool {
	return code.Mem() == umtsConstituent.Mem() &&
		code.ConstraintLength() == umtsConstituent.ConstraintLength() &&
		code.Feedback() == umtsConstituent.Feedback() &&
		intsEqual(code.Generators(), umtsConstituent.Generators())
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Decode soft-decodes a block of symbols for the 8-state UMTS constituent
// code. See Decoder.Decode for the length and output contract.
func (d *Umts8Decoder) Decode(input []Symbol, output []fastfec.Llr) {
	const mem = 3
	minLen := mem
	if d.terminated {
		minLen = 2 * mem
	}
	if len(input) < minLen {
		panic("bcjr: input too short to open and possibly close the 8-state trellis")
	}
	if len(output) < len(input) {
		panic("bcjr: output shorter than input")
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

	alpha := d.alpha
	var a [8]int8
	for s := range a {
		a[s] = unreachable
	}
	a[0] = 0
	a = d.scale(a, 0, n)
	alpha[0] = a
	for idx := 1; idx < n; idx++ {
		a = nextAlpha8(a, gamma[idx-1])
		a = d.scale(a, idx, n)
		alpha[idx] = a
	}

	var b [8]int8
	if d.terminated {
		for s := range b {
			b[s] = unreachable
		}
		b[0] = 0
		b = d.scale(b, n, n)
	}

	for idx := n - 1; idx >= 0; idx-- {
		output[idx] = aposteriori8(gamma[idx], alpha[idx], b)
		b = previousBeta8(b, gamma[idx])
		b = d.scale(b, idx, n)
	}
}

func nextAlpha8(prev [8]int8, g [4]int8) [8]int8 {
	var next [8]int8
	for s := range next {
		next[s] = unreachable
	}
	for s := 0; s < 8; s++ {
		if prev[s] == unreachable {
			continue
		}
		for ui := 0; ui < 2; ui++ {
			ns := umts8.succ[ui][s]
			cand := addSat8(prev[s], g[gammaIndex(ui == 1, umts8.parity[ui][s])])
			if cand > next[ns] {
				next[ns] = cand
			}
		}
	}
	return next
}

func previousBeta8(next [8]int8, g [4]int8) [8]int8 {
	var prev [8]int8
	for s := 0; s < 8; s++ {
		best := unreachable
		for ui := 0; ui < 2; ui++ {
			ns := umts8.succ[ui][s]
			if next[ns] == unreachable {
				continue
			}
			cand := addSat8(next[ns], g[gammaIndex(ui == 1, umts8.parity[ui][s])])
			if cand > best {
				best = cand
			}
		}
		prev[s] = best
	}
	return prev
}

func aposteriori8(g [4]int8, alpha, beta [8]int8) fastfec.Llr {
	max0, max1 := unreachable, unreachable
	for s := 0; s < 8; s++ {
		if alpha[s] == unreachable {
			continue
		}
		for ui := 0; ui < 2; ui++ {
			ns := umts8.succ[ui][s]
			if beta[ns] == unreachable {
				continue
			}
			sum := addSat8(addSat8(alpha[s], g[gammaIndex(ui == 1, umts8.parity[ui][s])]), beta[ns])
			if ui == 1 {
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

func (d *Umts8Decoder) scale(vec [8]int8, index, symbolCount int) [8]int8 {
	mask, ok := umts8Mask(d.terminated, index, symbolCount)
	if !ok {
		return scaleAll8(vec)
	}
	return scaleValid8(vec, mask)
}

func umts8Mask(terminated bool, index, symbolCount int) (mask [8]bool, ok bool) {
	if index <= 2 {
		return umts8ForwardValid[index], true
	}
	if terminated {
		k := symbolCount - index
		if k >= 0 && k <= 2 {
			return umts8BackwardValid[k], true
		}
		if k == 3 {
			// Already fully open; explicit mask is equivalent to none.
			return umts8ForwardValid[3], true
		}
	}
	return mask, false
}

func scaleAll8(vec [8]int8) [8]int8 {
	sum := 0
	for _, v := range vec {
		sum += int(v)
	}
	coeff := int8(sum / 8)
	var out [8]int8
	for i, v := range vec {
		out[i] = subSat8(v, coeff)
	}
	return out
}

func scaleValid8(vec [8]int8, mask [8]bool) [8]int8 {
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
	var out [8]int8
	for s, v := range vec {
		if mask[s] {
			out[s] = subSat8(v, coeff)
		} else {
			out[s] = unreachable
		}
	}
	return out
}
