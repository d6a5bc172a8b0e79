package segcoll

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIndex(t *testing.T) {
	require.NoError(t, CheckIndex(0, 1))
	require.NoError(t, CheckIndex(4, 5))

	for _, i := range []int{-1, 5, 6} {
		err := CheckIndex(i, 5)
		require.ErrorIs(t, err, ErrOutOfBounds)

		var be *BoundsError
		require.True(t, errors.As(err, &be))
		assert.Equal(t, i, be.Index)
		assert.Equal(t, 5, be.Size)
	}
}

func TestCheckRange(t *testing.T) {
	require.NoError(t, CheckRange(0, 0, 0))
	require.NoError(t, CheckRange(2, 5, 5))

	require.ErrorIs(t, CheckRange(-1, 2, 5), ErrOutOfBounds)
	require.ErrorIs(t, CheckRange(6, 6, 5), ErrOutOfBounds)
	require.ErrorIs(t, CheckRange(3, 2, 5), ErrOutOfBounds)
	require.ErrorIs(t, CheckRange(0, 6, 5), ErrOutOfBounds)
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		msg    string
	}{
		{"bounds", NewBoundsError(7, 3), ErrOutOfBounds, "index 7 out of bounds [0, 3)"},
		{"state", NewStateError("next", "iterator exhausted"), ErrInvalidState, "next: iterator exhausted"},
		{"blocked", &StateError{Op: "clear", Reason: "held", Blocker: 2}, ErrInvalidState, "clear: held (blocked by iterator at 2)"},
		{"argument", NewIllegalArgumentError("capacity", -1, "must not be negative"), ErrInvalidArgument, "illegal argument capacity=-1: must not be negative"},
		{"invariant", &InvariantError{Structure: "window", Detail: "bad head"}, ErrInvariantViolation, "window: bad head"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.target)
			assert.EqualError(t, tt.err, tt.msg)

			wrapped := fmt.Errorf("op failed: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.target)
			assert.NotErrorIs(t, tt.err, ErrConcurrentModification)
		})
	}
}
