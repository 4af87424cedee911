package ratematching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPuncturerWidth3Pattern5(t *testing.T) {
	p := New(3, 0b101)
	var kept []bool
	for i := 0; i < 6; i++ {
		kept = append(kept, p.ReadOutput())
	}
	assert.Equal(t, []bool{false, true, false, false, true, false}, kept)
}

func TestPuncturerWidth4Pattern2(t *testing.T) {
	// Pattern 0b0010 (width 4): bit 1 is punctured, bits 0, 2, 3 are kept.
	p := New(4, 0b0010)
	var kept []bool
	for i := 0; i < 8; i++ {
		kept = append(kept, p.ReadOutput())
	}
	assert.Equal(t, []bool{true, false, true, true, true, false, true, true}, kept)
}

func TestDefaultPuncturerKeepsEverything(t *testing.T) {
	p := Default()
	for i := 0; i < 16; i++ {
		assert.True(t, p.ReadOutput())
	}
}
