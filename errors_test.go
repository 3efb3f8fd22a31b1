package multiver_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/multiver-io/multiver"
)

func TestVersionError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := multiver.NewVersionError("1.x.y", errors.New("bad segment"))
		assert.Equal(t, `multiver: invalid version "1.x.y": bad segment`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := multiver.NewVersionError("abc", errors.New("parse"))
		assert.True(t, errors.Is(err, multiver.ErrInvalidVersion))
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("parse")
		err := multiver.NewVersionError("abc", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("Input", func(t *testing.T) {
		err := multiver.NewVersionError("v1..", errors.New("parse"))
		assert.Equal(t, "v1..", err.Input())
	})

	t.Run("IsInvalidVersion", func(t *testing.T) {
		err := multiver.NewVersionError("bad", errors.New("parse"))
		assert.True(t, multiver.IsInvalidVersion(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, multiver.IsInvalidVersion(wrapped))

		// Sentinel error
		assert.True(t, multiver.IsInvalidVersion(multiver.ErrInvalidVersion))

		// Non-matching error
		assert.False(t, multiver.IsInvalidVersion(errors.New("other error")))
		assert.False(t, multiver.IsInvalidVersion(nil))
	})
}

func TestRangeError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := multiver.NewRangeError(">= nope", errors.New("bad comparator"))
		assert.Equal(t, `multiver: invalid range ">= nope": bad comparator`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := multiver.NewRangeError("??", errors.New("parse"))
		assert.True(t, errors.Is(err, multiver.ErrInvalidRange))
	})

	t.Run("Unwrap", func(t *testing.T) {
		underlying := errors.New("parse")
		err := multiver.NewRangeError("??", underlying)
		assert.True(t, errors.Is(err, underlying))
	})

	t.Run("IsInvalidRange", func(t *testing.T) {
		err := multiver.NewRangeError("bad", errors.New("parse"))
		assert.True(t, multiver.IsInvalidRange(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, multiver.IsInvalidRange(wrapped))

		// Sentinel error
		assert.True(t, multiver.IsInvalidRange(multiver.ErrInvalidRange))

		// Non-matching error
		assert.False(t, multiver.IsInvalidRange(errors.New("other error")))
		assert.False(t, multiver.IsInvalidRange(nil))
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("ErrInvalidVersion", func(t *testing.T) {
		assert.Error(t, multiver.ErrInvalidVersion)
		assert.Contains(t, multiver.ErrInvalidVersion.Error(), "invalid version")
	})

	t.Run("ErrInvalidRange", func(t *testing.T) {
		assert.Error(t, multiver.ErrInvalidRange)
		assert.Contains(t, multiver.ErrInvalidRange.Error(), "invalid range")
	})
}

// BenchmarkErrors benchmarks error creation and checking.
func BenchmarkErrors(b *testing.B) {
	b.Run("NewVersionError", func(b *testing.B) {
		underlying := errors.New("parse")
		for i := 0; i < b.N; i++ {
			_ = multiver.NewVersionError("bad", underlying)
		}
	})

	b.Run("IsInvalidVersion", func(b *testing.B) {
		err := multiver.NewVersionError("bad", errors.New("parse"))
		for i := 0; i < b.N; i++ {
			_ = multiver.IsInvalidVersion(err)
		}
	})
}
