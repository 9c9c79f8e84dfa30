package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aweissman/depviz/pkg/errors"
	"github.com/aweissman/depviz/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	fetchOpts
	output string // output file path (stdout if empty)
}

// newGraphCmd creates the graph command, which stops after building the
// digraph and emits the DOT description. Useful for piping into external
// Graphviz tooling or inspecting the graph structure.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Emit the dependency parse digraph as Graphviz DOT",
		Long: `Fetch a syntactic dependency parse for the input text and print the
DOT digraph description without rendering it.

Examples:
  echo "This is a sentence." | depviz graph
  depviz graph -i article.txt -b | dot -Tsvg > article.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), &opts)
		},
	}

	addFetchFlags(cmd, &opts.fetchOpts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runGraph(ctx context.Context, opts *graphOpts) error {
	runner, cleanup, err := newRunner(ctx, &opts.fetchOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	popts, err := opts.pipelineOptions(pipeline.FormatDOT)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Analyzing...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	return writeOutput(opts.output, result.Artifact)
}
