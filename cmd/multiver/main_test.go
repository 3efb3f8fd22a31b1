package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "multiver", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)
}

func TestCommandPresence(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"generate", "watch", "init", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := newRootCmd()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	for _, name := range []string{"json", "no-color", "config"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestGenerateFlags(t *testing.T) {
	cmd := newRootCmd()
	gen, _, err := cmd.Find([]string{"generate"})
	require.NoError(t, err)

	typeFlag := gen.Flags().Lookup("type")
	require.NotNil(t, typeFlag)
	assert.Equal(t, "t", typeFlag.Shorthand)

	for _, name := range []string{"output-suffix", "target", "header", "tags", "build-flags", "cache"} {
		assert.NotNil(t, gen.Flags().Lookup(name), "flag %s", name)
	}
}

func TestWatchFlags(t *testing.T) {
	cmd := newRootCmd()
	watch, _, err := cmd.Find([]string{"watch"})
	require.NoError(t, err)

	debounce := watch.Flags().Lookup("debounce")
	require.NotNil(t, debounce)
	assert.Equal(t, "500ms", debounce.DefValue)
	assert.NotNil(t, watch.Flags().Lookup("type"))
	assert.NotNil(t, watch.Flags().Lookup("cache"))
}
