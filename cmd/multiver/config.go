package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigName is the config file looked up in the working directory, as
// .multiver.yaml.
const ConfigName = ".multiver"

// runConfig is one generation run after flags, environment and config file
// were merged. Flags win over MULTIVER_* environment variables, which win
// over .multiver.yaml values.
type runConfig struct {
	Patterns   []string
	Types      []string
	Suffix     string
	Target     string
	Header     string
	BuildFlags []string
	CachePath  string
}

// newViper builds the configured viper instance. A missing config file is
// fine; a malformed one is not.
func newViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("package", "")
	v.SetDefault("types", []string{})
	v.SetDefault("suffix", "")
	v.SetDefault("target", "")
	v.SetDefault("header", "")
	v.SetDefault("build_flags", []string{})
	v.SetDefault("cache", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("MULTIVER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// resolveRunConfig merges the command's flags with the environment and the
// config file into one runConfig. args are the package patterns; with none
// given the config file's package applies, and failing that the working
// directory.
func resolveRunConfig(cmd *cobra.Command, opts *rootOptions, args []string) (*runConfig, error) {
	v, err := newViper(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"types":       "type",
		"suffix":      "output-suffix",
		"target":      "target",
		"header":      "header",
		"build_flags": "build-flags",
		"cache":       "cache",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	rc := &runConfig{
		Patterns:   args,
		Types:      v.GetStringSlice("types"),
		Suffix:     v.GetString("suffix"),
		Target:     v.GetString("target"),
		Header:     v.GetString("header"),
		BuildFlags: v.GetStringSlice("build_flags"),
		CachePath:  v.GetString("cache"),
	}
	if tags, err := flags.GetString("tags"); err == nil && tags != "" {
		rc.BuildFlags = append(rc.BuildFlags, "-tags="+tags)
	}
	if len(rc.Patterns) == 0 {
		if pkg := v.GetString("package"); pkg != "" {
			rc.Patterns = []string{pkg}
		} else {
			rc.Patterns = []string{"."}
		}
	}
	if len(rc.Types) > 0 && len(rc.Patterns) > 1 {
		return nil, fmt.Errorf("explicit --type selection needs a single package, got %d", len(rc.Patterns))
	}
	return rc, nil
}
