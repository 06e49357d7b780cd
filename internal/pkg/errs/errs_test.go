//go:build unit

package errs_test

import (
	"context"
	"errors"
	"testing"

	"auction-house/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	t.Run("marked error matches both cause and mark", func(t *testing.T) {
		cause := context.DeadlineExceeded
		err := errs.Mark(errs.Wrap(cause, "withdraw"), errs.ErrPersistenceFailure)

		assert.ErrorIs(t, err, errs.ErrPersistenceFailure)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "withdraw")
	})

	t.Run("stacked marks are all visible", func(t *testing.T) {
		err := errs.Mark(errs.Mark(errors.New("ended"), errs.ErrNotActive), errs.ErrPersistenceFailure)

		assert.True(t, errors.Is(err, errs.ErrNotActive))
		assert.True(t, errs.Is(err, errs.ErrPersistenceFailure))
		assert.False(t, errors.Is(err, errs.ErrNotFound))
		assert.Equal(t, "ended", err.Error())
	})

	t.Run("nil error yields the mark", func(t *testing.T) {
		err := errs.Mark(nil, errs.ErrNotFound)
		assert.Same(t, errs.ErrNotFound, err)
	})
}

func TestWrap(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "noop"))
	assert.NoError(t, errs.Wrapf(nil, "noop %d", 1))

	err := errs.Wrapf(errors.New("boom"), "listing %s", "abc")
	require.Error(t, err)
	assert.Equal(t, "listing abc: boom", err.Error())
}

func TestIsAny(t *testing.T) {
	err := errs.Mark(errors.New("x"), errs.ErrNotActive)

	assert.True(t, errs.IsAny(err, errs.ErrNotFound, errs.ErrNotActive))
	assert.False(t, errs.IsAny(err, errs.ErrNotFound, errs.ErrUnauthorized))
	assert.False(t, errs.IsAny(nil, errs.ErrNotFound))
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))

	lines := errs.ExtractStackLines(errs.New("boom"), 3)
	require.Len(t, lines, 3)
	assert.Equal(t, "boom", lines[0])
}
