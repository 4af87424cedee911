package interleaver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQppInterleaveDeinterleave(t *testing.T) {
	q := New(16, 1, 4)
	buf := make([]int8, 16)
	for i := range buf {
		buf[i] = int8(i)
	}

	interleaved := make([]int8, 16)
	q.Interleave(buf, interleaved)
	assert.Equal(t, []int8{0, 5, 2, 7, 4, 9, 6, 11, 8, 13, 10, 15, 12, 1, 14, 3}, interleaved)

	deinterleaved := make([]int8, 16)
	q.Deinterleave(buf, deinterleaved)
	assert.Equal(t, []int8{0, 13, 2, 15, 4, 1, 6, 3, 8, 5, 10, 7, 12, 9, 14, 11}, deinterleaved)
}

func TestQppIterMatchesAt(t *testing.T) {
	q := New(16, 1, 4)
	it := q.Iter()
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		require.Equal(t, q.At(m.I), m.Pi)
	}
}

func TestQppBijectionAcrossCatalog(t *testing.T) {
	// Invariant (QPP bijection): for every catalog entry, the multiset
	// {pi(0),...,pi(K-1)} equals {0,...,K-1}.
	for length := 40; length <= 6144; length++ {
		q, ok := ForUMTS(length)
		if !ok {
			continue
		}

		seen := make([]bool, length)
		it := q.Iter()
		count := 0
		for {
			m, ok := it.Next()
			if !ok {
				break
			}
			require.False(t, seen[m.Pi], "length=%d: pi(%d)=%d seen twice", length, m.I, m.Pi)
			seen[m.Pi] = true
			count++
		}
		require.Equal(t, length, count)
	}
}

func TestInterleaveRoundTrip(t *testing.T) {
	// Invariant (Interleave round-trip): deinterleave(interleave(b)) == b
	// for every supported length and every buffer b.
	lengths := []int{40, 48, 128, 504, 512, 1024, 2048, 6144}
	for _, length := range lengths {
		q, ok := ForUMTS(length)
		require.True(t, ok, "length=%d", length)

		src := make([]int8, length)
		for i := range src {
			src[i] = int8(i)
		}

		interleaved := make([]int8, length)
		q.Interleave(src, interleaved)

		roundtrip := make([]int8, length)
		q.Deinterleave(interleaved, roundtrip)

		assert.Equal(t, src, roundtrip, "length=%d", length)
	}
}

func TestForUmtsUnsupportedLength(t *testing.T) {
	_, ok := ForUMTS(41)
	assert.False(t, ok)

	_, ok = ForUMTS(6145)
	assert.False(t, ok)
}
