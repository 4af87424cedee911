package turbo

import (
	"runtime"
	"sync"

	"github.com/rmja/fastfec"
	"github.com/rmja/fastfec/convolutional/bcjr"
	"github.com/rmja/fastfec/interleaver"
)

// Job describes one codeword to decode: the turbo symbols, its interleaver,
// each constituent encoder's termination symbols, and the number of BCJR
// iterations to run.
type Job struct {
	Input             []Symbol
	Interleaver       interleaver.QPP
	FirstTermination  []bcjr.Symbol
	SecondTermination []bcjr.Symbol
	Iterations        int
}

// DecodeBatch decodes jobs, running independent codewords across
// runtime.GOMAXPROCS(0) workers pulling Decoders from pool. Small batches
// (4 or fewer) or a GOMAXPROCS(0)==1 configuration decode sequentially on
// the calling goroutine instead of paying worker setup cost.
func DecodeBatch(pool *Pool, jobs []Job) [][]fastfec.Llr {
	if len(jobs) <= 4 || runtime.GOMAXPROCS(0) == 1 {
		results := make([][]fastfec.Llr, len(jobs))
		for i, job := range jobs {
			results[i] = decodeJob(pool, job)
		}
		return results
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}

	type indexedJob struct {
		index int
		job   Job
	}
	type indexedResult struct {
		index int
		llrs  []fastfec.Llr
	}

	jobChan := make(chan indexedJob, len(jobs))
	for i, job := range jobs {
		jobChan <- indexedJob{index: i, job: job}
	}
	close(jobChan)

	resultChan := make(chan indexedResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ij := range jobChan {
				resultChan <- indexedResult{index: ij.index, llrs: decodeJob(pool, ij.job)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([][]fastfec.Llr, len(jobs))
	for r := range resultChan {
		results[r.index] = r.llrs
	}
	return results
}

func decodeJob(pool *Pool, job Job) []fastfec.Llr {
	decoder := pool.Get()
	defer pool.Put(decoder)

	decoding := decoder.Decode(job.Input, job.Interleaver, job.FirstTermination, job.SecondTermination)
	for i := 0; i < job.Iterations; i++ {
		decoding.RunIteration()
	}

	out := make([]fastfec.Llr, len(decoding.Result()))
	copy(out, decoding.Result())
	return out
}
