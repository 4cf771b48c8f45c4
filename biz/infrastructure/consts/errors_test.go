package consts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrnoKinds(t *testing.T) {
	assert.ErrorIs(t, ErrClassNotFound, ErrNotFound)
	assert.ErrorIs(t, fmt.Errorf("wrap: %w", ErrRemoveClass), ErrForbidden)
	assert.False(t, errors.Is(ErrClassNotFound, ErrForbidden))
	assert.False(t, errors.Is(ErrLastOwner, ErrConflict))

	st := status.Convert(ErrAlreadyInClass)
	assert.Equal(t, codes.AlreadyExists, st.Code())
	assert.Equal(t, "You are already in class", st.Message())
}
