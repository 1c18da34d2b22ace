package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// newRootCmd assembles the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "yamltree",
		Short:         "Inspect, check and convert YAML documents",
		Long:          `yamltree reads YAML (or JSON) documents into a path-addressable tree, reporting errors with the exact path and position they occur at.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newDumpCmd(opts))
	root.AddCommand(newFmtCmd(opts))
	root.AddCommand(newConvertCmd(opts))

	// Global flags
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "TOML file with reader and writer settings")
	root.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	root.PersistentFlags().StringVar(&opts.inputFormat, "input-format", "auto", "input format (auto|yaml|json)")
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "yamltree:", err)
		os.Exit(1)
	}
}
