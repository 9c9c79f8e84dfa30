// Package cli implements the depviz command-line interface.
//
// This package provides commands for turning text into dependency parse
// tree images via the Rosette API and Graphviz, serving the same
// pipeline over HTTP, and managing the document cache. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - tree: Fetch a dependency parse and render it as an image
//   - graph: Fetch a dependency parse and emit the DOT description
//   - render: Render an existing DOT file to SVG, PDF, or PNG
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the document cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context to allow structured progress
// tracking.
//
// # Example
//
//	import "github.com/aweissman/depviz/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aweissman/depviz/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "depviz"

// Execute runs the depviz CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "depviz renders dependency parse trees as images",
		Long:         `depviz fetches syntactic dependency parses from the Rosette API and renders them as SVG, PDF, or PNG images via Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newTreeCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
