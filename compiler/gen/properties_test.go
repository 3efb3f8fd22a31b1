package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantProperties(t *testing.T) {
	t.Run("bare variant", func(t *testing.T) {
		props, err := VariantProperties(variant("KindHello"))
		require.NoError(t, err)
		assert.Nil(t, props.Implemented)
		assert.Nil(t, props.Deprecated)
		assert.Empty(t, props.Alternates)
		assert.False(t, props.Annotated())
	})

	t.Run("full lifecycle", func(t *testing.T) {
		props, err := VariantProperties(variant("KindLeaseHint", `implemented = "1.2.0", deprecated = "2.0.0"`))
		require.NoError(t, err)
		require.NotNil(t, props.Implemented)
		assert.Equal(t, "1.2.0", props.Implemented.Version)
		require.NotNil(t, props.Deprecated)
		assert.Equal(t, "2.0.0", props.Deprecated.Version)
		assert.True(t, props.Annotated())
	})

	t.Run("alternates accumulate across directives", func(t *testing.T) {
		props, err := VariantProperties(variant("KindTrailer",
			`alternative_version("<1.5.0", 7)`,
			`alternative_version(">=1.5.0, <2.0.0", 9)`,
		))
		require.NoError(t, err)
		require.Len(t, props.Alternates, 2)
		assert.Equal(t, "<1.5.0", props.Alternates[0].Range)
		assert.Equal(t, ">=1.5.0, <2.0.0", props.Alternates[1].Range)
		assert.True(t, props.Annotated())
	})

	t.Run("duplicate implemented", func(t *testing.T) {
		v := variant("StageDecode", `implemented = "1.0.0"`, `implemented = "1.1.0"`)
		_, err := VariantProperties(v)
		require.Error(t, err)
		require.True(t, IsDuplicateError(err))
		assert.ErrorIs(t, err, ErrDuplicateAnnotation)

		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "implemented", dup.Property)
		assert.Equal(t, "StageDecode", dup.Variant)
		// First points at the earlier declaration, Second at the repeat.
		assert.Equal(t, v.Attrs[0].Pos.Line, dup.First.Line)
		assert.Equal(t, v.Attrs[1].Pos.Line, dup.Second.Line)
	})

	t.Run("duplicate deprecated in one directive", func(t *testing.T) {
		_, err := VariantProperties(variant("StageDecode", `deprecated = "2.0.0", deprecated = "3.0.0"`))
		require.Error(t, err)
		require.True(t, IsDuplicateError(err))

		var dup *DuplicateError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "deprecated", dup.Property)
		assert.Less(t, dup.First.Column, dup.Second.Column)
	})

	t.Run("duplicate diagnostics", func(t *testing.T) {
		v := variant("StageDecode", `implemented = "1.0.0"`, `implemented = "1.1.0"`)
		_, err := VariantProperties(v)
		require.Error(t, err)

		diags := Diagnose(err)
		require.Len(t, diags, 2)
		assert.Contains(t, diags[0].Message, "multiple occurrences of multi_version(implemented)")
		assert.Equal(t, v.Attrs[1].Pos.Line, diags[0].Pos.Line)
		assert.Equal(t, "first one here", diags[1].Message)
		assert.Equal(t, v.Attrs[0].Pos.Line, diags[1].Pos.Line)
	})

	t.Run("parse failure passes through", func(t *testing.T) {
		_, err := VariantProperties(variant("StageDecode", `implemented = 1`))
		require.Error(t, err)
		assert.True(t, IsAnnotationError(err))
	})
}
