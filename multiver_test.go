package multiver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multiver-io/multiver"
)

func TestVersion(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		v, err := multiver.Version("1.2.3")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), v.Major())
		assert.Equal(t, uint64(2), v.Minor())
		assert.Equal(t, uint64(3), v.Patch())
	})

	t.Run("Memoized", func(t *testing.T) {
		a, err := multiver.Version("4.5.6")
		require.NoError(t, err)
		b, err := multiver.Version("4.5.6")
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := multiver.Version("not-a-version")
		require.Error(t, err)
		assert.True(t, multiver.IsInvalidVersion(err))
	})
}

func TestMustVersion(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		v := multiver.MustVersion("2.0.0")
		assert.Equal(t, "2.0.0", v.String())
	})

	t.Run("PanicsOnInvalid", func(t *testing.T) {
		assert.Panics(t, func() {
			multiver.MustVersion("nope")
		})
	})
}

func TestRange(t *testing.T) {
	t.Parallel()

	t.Run("ComparatorsAnded", func(t *testing.T) {
		c, err := multiver.Range(">=1.2.0, <2.0.0")
		require.NoError(t, err)
		assert.True(t, c.Check(multiver.MustVersion("1.2.0")))
		assert.True(t, c.Check(multiver.MustVersion("1.9.9")))
		assert.False(t, c.Check(multiver.MustVersion("1.1.9")))
		assert.False(t, c.Check(multiver.MustVersion("2.0.0")))
	})

	t.Run("SingleComparator", func(t *testing.T) {
		c, err := multiver.Range(">=3.0.0")
		require.NoError(t, err)
		assert.True(t, c.Check(multiver.MustVersion("3.0.0")))
		assert.True(t, c.Check(multiver.MustVersion("9.9.9")))
		assert.False(t, c.Check(multiver.MustVersion("2.9.9")))
	})

	t.Run("Memoized", func(t *testing.T) {
		a, err := multiver.Range(">=7.0.0")
		require.NoError(t, err)
		b, err := multiver.Range(">=7.0.0")
		require.NoError(t, err)
		assert.Same(t, a, b)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := multiver.Range(">= what")
		require.Error(t, err)
		assert.True(t, multiver.IsInvalidRange(err))
	})
}

func TestMustRange(t *testing.T) {
	t.Parallel()

	t.Run("Valid", func(t *testing.T) {
		c := multiver.MustRange("<5.0.0")
		assert.True(t, c.Check(multiver.MustVersion("4.9.9")))
	})

	t.Run("PanicsOnInvalid", func(t *testing.T) {
		assert.Panics(t, func() {
			multiver.MustRange("nope nope")
		})
	})
}

func TestZeroVersion(t *testing.T) {
	t.Parallel()

	zero := multiver.ZeroVersion()
	assert.Equal(t, "0.0.0", zero.String())
	assert.True(t, zero.LessThan(multiver.MustVersion("0.0.1")))

	// Stable identity across calls.
	assert.Same(t, zero, multiver.ZeroVersion())
}

// BenchmarkMustVersion measures the memoized lookup path generated code
// takes on every query.
func BenchmarkMustVersion(b *testing.B) {
	multiver.MustVersion("1.2.3")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = multiver.MustVersion("1.2.3")
	}
}

// BenchmarkMustRange measures the memoized range lookup plus one match.
func BenchmarkMustRange(b *testing.B) {
	v := multiver.MustVersion("1.5.0")
	multiver.MustRange(">=1.2.0, <2.0.0")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = multiver.MustRange(">=1.2.0, <2.0.0").Check(v)
	}
}
