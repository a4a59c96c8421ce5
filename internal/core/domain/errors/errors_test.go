package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilArgumentError(t *testing.T) {
	err := NewNilArgumentError("userRepository")
	require.Equal(t, "argument 'userRepository' must not be nil", err.Error())
}

func TestInvalidStateError(t *testing.T) {
	err := NewInvalidStateError("password hash is not set for user 1")
	require.Equal(t, "password hash is not set for user 1", err.Error())
}
