package turbo

import (
	"fmt"

	"github.com/rmja/fastfec"
	"github.com/rmja/fastfec/convolutional/bcjr"
	"github.com/rmja/fastfec/interleaver"
)

// Decoder is a turbo decoder for a Code: two BCJR constituent decoders
// exchanging extrinsic information through a block interleaver. Construction
// resolves, once, which concrete BCJR decoder (generic or the 8-state UMTS
// specialization) each constituent uses, and binds a method value on it:
// RunIteration calls first/second directly, with no interface dispatch on
// the repeated hot-loop call.
type Decoder struct {
	code   Code
	first  func(input []bcjr.Symbol, output []fastfec.Llr)
	second func(input []bcjr.Symbol, output []fastfec.Llr)
}

// NewDecoder creates a turbo decoder for code.
func NewDecoder(code Code, opts bcjr.Options) *Decoder {
	return &Decoder{
		code:   code,
		first:  bcjr.NewDecodeFunc(code.ConstituentEncoderCode, code.TerminateFirst, opts),
		second: bcjr.NewDecodeFunc(code.ConstituentEncoderCode, code.TerminateSecond, opts),
	}
}

// Code returns the turbo code this decoder was constructed for.
func (d *Decoder) Code() Code {
	return d.code
}

// Decode prepares a Decoding for one codeword: input holds the K turbo
// symbols, il is the codeword's interleaver, and firstTermination /
// secondTermination hold each constituent encoder's termination symbols (in
// systematic/parity BCJR-symbol form), or are empty when that encoder isn't
// terminated.
func (d *Decoder) Decode(input []Symbol, il interleaver.QPP, firstTermination, secondTermination []bcjr.Symbol) *Decoding {
	k := len(input)
	if il.Len() != k {
		panic(fmt.Sprintf("turbo: input length %d does not match interleaver length %d", k, il.Len()))
	}

	firstInput := make([]bcjr.Symbol, 0, k+len(firstTermination))
	for _, s := range input {
		firstInput = append(firstInput, bcjr.NewSymbol(s.Systematic, s.FirstParity))
	}
	firstInput = append(firstInput, firstTermination...)

	secondInput := make([]bcjr.Symbol, k+len(secondTermination))
	it := il.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		secondInput[m.I] = bcjr.NewSymbol(input[m.Pi].Systematic, input[m.I].SecondParity)
	}
	copy(secondInput[k:], secondTermination)

	resultLen := k + len(firstTermination)
	if len(secondTermination) > len(firstTermination) {
		resultLen = k + len(secondTermination)
	}

	return &Decoding{
		decoder:       d,
		il:            il,
		firstInput:    firstInput,
		secondInput:   secondInput,
		result:        make([]fastfec.Llr, resultLen),
		deinterleaved: make([]fastfec.Llr, k),
		k:             k,
	}
}

// Decoding holds the per-codeword state of an in-progress turbo decode: the
// two constituent decoders' input buffers, the shared BCJR result buffer,
// and the deinterleave scratch buffer runSecond reuses every iteration.
type Decoding struct {
	decoder       *Decoder
	il            interleaver.QPP
	firstInput    []bcjr.Symbol
	secondInput   []bcjr.Symbol
	result        []fastfec.Llr
	deinterleaved []fastfec.Llr
	k             int
}

// Result returns the K deinterleaved a-posteriori LLRs computed so far. Call
// RunIteration at least once before relying on the result; before the first
// iteration it is all zero.
func (d *Decoding) Result() []fastfec.Llr {
	return d.result[:d.k]
}

// RunIteration runs one full turbo-decode iteration: a BCJR pass over the
// first constituent decoder, extrinsic exchange, a BCJR pass over the
// second, and a final extrinsic exchange plus deinterleave.
func (d *Decoding) RunIteration() {
	d.runFirst()
	d.runSecond()
}

// runFirst runs the first BCJR decoder and feeds its extrinsic information
// to the second decoder's a-priori input, in the interleaved index space.
func (d *Decoding) runFirst() {
	d.decoder.first(d.firstInput, d.result)

	it := d.il.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		lapp := int32(d.result[m.Pi])
		la := int32(d.firstInput[m.Pi].Apriori)
		lu := int32(d.firstInput[m.Pi].Systematic)
		d.secondInput[m.I].Apriori = clampExtrinsic(lapp - la - lu)
	}
}

// runSecond runs the second BCJR decoder, feeds its extrinsic information
// back to the first decoder's a-priori input, and deinterleaves the final
// a-posteriori LLRs into Result order.
func (d *Decoding) runSecond() {
	d.decoder.second(d.secondInput, d.result)

	it := d.il.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		lapp := int32(d.result[m.I])
		la := int32(d.secondInput[m.I].Apriori)
		lu := int32(d.secondInput[m.I].Systematic)
		d.firstInput[m.Pi].Apriori = clampExtrinsic(lapp - la - lu)
	}

	d.il.Deinterleave(d.result[:d.k], d.deinterleaved)
	copy(d.result[:d.k], d.deinterleaved)
}

func clampExtrinsic(v int32) fastfec.Llr {
	if v > 127 {
		return 127
	}
	if v < -128 {
		return -128
	}
	return fastfec.Llr(v)
}
