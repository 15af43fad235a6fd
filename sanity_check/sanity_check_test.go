package sanity_check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelfTest(t *testing.T) {
	assert.NoError(t, SelfTest())
}
