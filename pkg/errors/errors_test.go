package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	sentinel := New("object not found")
	cause := fmt.Errorf("no such sha: %q", "deadbeef")

	wrapped := sentinel.Wrap(cause)
	assert.True(t, Is(wrapped, sentinel))
	assert.Contains(t, wrapped.Error(), "object not found")
	assert.Contains(t, wrapped.Error(), "deadbeef")

	// wrapping must not mutate the sentinel
	assert.NoError(t, sentinel.Unwrap())

	var asErr *Error
	assert.True(t, As(wrapped, &asErr))
	assert.Equal(t, cause, asErr.Unwrap())
}
