package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/multiver-io/multiver/compiler/gen"
)

func newInitCmd(rootOpts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + ConfigName + ".yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.ConfigFile
			if path == "" {
				path = ConfigName + ".yaml"
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			data, err := yaml.Marshal(starterConfig())
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			ok := color.New(color.FgGreen, color.Bold)
			if rootOpts.NoColor {
				ok.DisableColor()
			}
			ok.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

// starterConfig builds the commented starter file as a yaml document, so
// every key carries its explanation.
func starterConfig() *yaml.Node {
	scalar := func(value string) *yaml.Node {
		n := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
		if value == "" {
			n.Style = yaml.DoubleQuotedStyle
		}
		return n
	}
	emptyList := func() *yaml.Node {
		return &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	}
	entry := func(key, comment string, value *yaml.Node) []*yaml.Node {
		return []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: key, HeadComment: comment},
			value,
		}
	}

	mapping := &yaml.Node{Kind: yaml.MappingNode}
	mapping.Content = append(mapping.Content, entry("package",
		"Package to scan, as a directory or import path.",
		scalar("."))...)
	mapping.Content = append(mapping.Content, entry("types",
		"Enum types to generate for. Empty generates for every type\ncarrying a multi_version directive.",
		emptyList())...)
	mapping.Content = append(mapping.Content, entry("suffix",
		"Filename suffix of generated files.",
		scalar(gen.DefaultSuffix))...)
	mapping.Content = append(mapping.Content, entry("target",
		"Directory generated files are written to. Empty writes next to\nthe scanned sources.",
		scalar(""))...)
	mapping.Content = append(mapping.Content, entry("header",
		"First comment line of generated files. Empty keeps the standard\nDO NOT EDIT line.",
		scalar(""))...)
	mapping.Content = append(mapping.Content, entry("build_flags",
		"Extra flags for the package loader, e.g. -tags=integration.",
		emptyList())...)
	mapping.Content = append(mapping.Content, entry("cache",
		"Parse cache location. Empty parses from scratch on every run.",
		scalar(""))...)

	return &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "Configuration for the multiver generator. Command-line flags and\nMULTIVER_* environment variables override these values.",
		Content:     []*yaml.Node{mapping},
	}
}
