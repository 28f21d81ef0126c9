// Package cmd is the go-inject command line.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// NewRootCommand builds the command tree. Each call returns an independent
// tree so tests can run commands side by side.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "go-inject",
		Short:        "A small dependency-injection container for Go",
		Long:         `go-inject wires object graphs from registered constructors and can show, validate and serve the graph it builds.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringSlice("env-file", nil,
		"env file(s) to load before reading configuration (default: .env)")

	root.AddCommand(newDemoCommand())
	root.AddCommand(newGraphCommand())
	root.AddCommand(newServeCommand())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func envFiles(cmd *cobra.Command) []string {
	files, _ := cmd.Flags().GetStringSlice("env-file")
	return files
}
