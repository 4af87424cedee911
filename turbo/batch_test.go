package turbo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rmja/fastfec/convolutional/bcjr"
	"github.com/rmja/fastfec/interleaver"
)

func excelExampleJob() Job {
	il := interleaver.New(16, 1, 4)
	input := []Symbol{
		NewSymbol(-4, -4, -4), NewSymbol(-4, -4, -4), NewSymbol(-4, -4, -4), NewSymbol(4, 4, 4),
		NewSymbol(-4, 4, 4), NewSymbol(-4, 4, 4), NewSymbol(4, -4, -4), NewSymbol(4, -4, 4),
		NewSymbol(-4, -4, 4), NewSymbol(-4, 4, -4), NewSymbol(-4, 4, -4), NewSymbol(-4, 4, 4),
		NewSymbol(-4, -4, -4), NewSymbol(-4, -4, 4), NewSymbol(4, -4, -4), NewSymbol(-4, 4, 4),
	}
	return Job{
		Input:       input,
		Interleaver: il,
		FirstTermination: []bcjr.Symbol{
			bcjr.NewSymbol(4, 4), bcjr.NewSymbol(-4, 4), bcjr.NewSymbol(4, 4),
		},
		SecondTermination: []bcjr.Symbol{
			bcjr.NewSymbol(-4, -4), bcjr.NewSymbol(-4, -4), bcjr.NewSymbol(-4, -4),
		},
		Iterations: 2,
	}
}

func TestDecodeBatchMatchesSingleDecode(t *testing.T) {
	code := NewCode(umtsConstituent)
	pool := NewPool(code, bcjr.Options{})

	job := excelExampleJob()
	expected := []int8{-108, -84, -92, 59, -92, -108, 88, 46, -76, -84, -60, -68, -76, -60, 44, -52}

	jobs := make([]Job, 7)
	for i := range jobs {
		jobs[i] = excelExampleJob()
	}

	results := DecodeBatch(pool, jobs)
	assert.Len(t, results, len(jobs))
	for i, result := range results {
		assert.Equal(t, expected, []int8(result), "job %d", i)
	}

	single := decodeJob(pool, job)
	assert.Equal(t, expected, []int8(single))
}
