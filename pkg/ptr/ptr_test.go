package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPtr(t *testing.T) {
	s := Ptr("score")
	assert.NotNil(t, s)
	assert.Equal(t, "score", *s)

	n := Ptr(int64(42))
	assert.Equal(t, int64(42), *n)
}

func TestPtrGet(t *testing.T) {
	assert.Equal(t, "score", PtrGet(Ptr("score")))
	assert.Equal(t, 1.5, PtrGet(Ptr(1.5)))

	var nilStr *string
	assert.Equal(t, "", PtrGet(nilStr))

	var nilInt *int64
	assert.Equal(t, int64(0), PtrGet(nilInt))
}
