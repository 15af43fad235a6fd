package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMeasure(t *testing.T) {
	called := false
	r := Measure(func() {
		called = true
		time.Sleep(5 * time.Millisecond)
		_ = make([]byte, 2<<20)
	})
	assert.True(t, called)
	assert.GreaterOrEqual(t, r.Elapsed, 5*time.Millisecond)
	assert.Positive(t, r.CPUCores)
	assert.GreaterOrEqual(t, r.TotalAllocMB, 0.0)
}
