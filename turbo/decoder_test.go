package turbo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmja/fastfec/convolutional/bcjr"
	"github.com/rmja/fastfec/interleaver"
)

func TestDecodeExcelExample(t *testing.T) {
	code := NewCode(umtsConstituent)
	decoder := NewDecoder(code, bcjr.Options{})
	il := interleaver.New(16, 1, 4)

	input := []Symbol{
		NewSymbol(-4, -4, -4),
		NewSymbol(-4, -4, -4),
		NewSymbol(-4, -4, -4),
		NewSymbol(4, 4, 4),
		NewSymbol(-4, 4, 4),
		NewSymbol(-4, 4, 4),
		NewSymbol(4, -4, -4),
		NewSymbol(4, -4, 4),
		NewSymbol(-4, -4, 4),
		NewSymbol(-4, 4, -4),
		NewSymbol(-4, 4, -4),
		NewSymbol(-4, 4, 4),
		NewSymbol(-4, -4, -4),
		NewSymbol(-4, -4, 4),
		NewSymbol(4, -4, -4),
		NewSymbol(-4, 4, 4),
	}
	firstTermination := []bcjr.Symbol{
		bcjr.NewSymbol(4, 4),
		bcjr.NewSymbol(-4, 4),
		bcjr.NewSymbol(4, 4),
	}
	secondTermination := []bcjr.Symbol{
		bcjr.NewSymbol(-4, -4),
		bcjr.NewSymbol(-4, -4),
		bcjr.NewSymbol(-4, -4),
	}

	decoding := decoder.Decode(input, il, firstTermination, secondTermination)

	var results [][]int8
	results = append(results, append([]int8(nil), decoding.Result()...))
	for i := 0; i < 2; i++ {
		decoding.RunIteration()
		results = append(results, append([]int8(nil), decoding.Result()...))
	}

	assert.Equal(t, make([]int8, 16), results[0])
	assert.Equal(t, []int8{-72, -52, -68, 44, -68, -72, 68, 68, -60, -72, -52, -60, -60, -52, 44, -52}, results[1])
	assert.Equal(t, []int8{-108, -84, -92, 59, -92, -108, 88, 46, -76, -84, -60, -68, -76, -60, 44, -52}, results[2])
}
