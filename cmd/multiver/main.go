// Command multiver generates version-lifecycle metadata for annotated enum
// types: which release each variant shipped in, when it was retired, and
// which wire discriminant it carried along the way.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errDiagnosed marks errors whose diagnostics were already printed, so main
// exits non-zero without repeating them.
var errDiagnosed = errors.New("diagnostics reported")

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	Verbose    bool
	JSON       bool
	NoColor    bool
	ConfigFile string
}

// logger builds the command logger: a development console logger on stderr
// with --verbose, a nop logger otherwise.
func (o *rootOptions) logger() *zap.Logger {
	if !o.Verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "multiver",
		Short: "Version metadata generator for enum types",
		Long: `multiver scans Go packages for enum variants annotated with
//multi_version(...) directives and generates the methods that answer
version-lifecycle questions: when a variant was introduced, when it was
deprecated, whether it exists in a given release, and which discriminant
value it maps to there.`,
		SilenceUsage:  true, // failures print diagnostics, not usage
		SilenceErrors: true, // main owns error printing
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "machine-readable output")
	cmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false, "disable colored diagnostics")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default .multiver.yaml in the working directory)")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnosed) {
			fmt.Fprintf(os.Stderr, "multiver: %v\n", err)
		}
		os.Exit(1)
	}
}
