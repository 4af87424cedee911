// Package catalog lists the standard codes this library ships support for.
package catalog

import (
	"github.com/rmja/fastfec/convolutional"
	"github.com/rmja/fastfec/turbo"
)

// ABRANTES is the example code from "From BCJR to turbo" (Abrantes), used
// throughout the literature to illustrate the BCJR algorithm: transfer
// polynomial G = [1, (1+x^2)/(1+x+x^2)].
var ABRANTES = convolutional.New(3, []int{0b111, 0b101}, 0b111)

// UMTSConstituent is the UMTS/LTE turbo code's rate-1/2 recursive systematic
// constituent code: transfer polynomial G = [1, (1+x+x^3)/(1+x^2+x^3)].
var UMTSConstituent = convolutional.New(4, []int{0b1011, 0b1101}, 0b1011)

// UMTS is the UMTS turbo code: two UMTSConstituent encoders, both
// terminated.
var UMTS = turbo.NewCode(UMTSConstituent)

// Mioty is the convolutional code specified by ETSI TS 103 357 section
// 6.4.6.3 for the mioty LPWAN physical layer: a rate-1/3, non-systematic,
// non-recursive code with constraint length 7.
var Mioty = convolutional.New(7, []int{0b1101101, 0b1010011, 0b1011111}, 0)
