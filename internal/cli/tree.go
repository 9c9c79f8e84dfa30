package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aweissman/depviz/pkg/errors"
	"github.com/aweissman/depviz/pkg/pipeline"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	fetchOpts
	output string // output file path (stdout if empty)
	format string // output format: svg, pdf, png, or dot
}

// newTreeCmd creates the tree command: the complete fetch → build →
// render pipeline in one invocation.
func newTreeCmd() *cobra.Command {
	opts := treeOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render a dependency parse tree as an image",
		Long: `Fetch a syntactic dependency parse for the input text and render it
as an image. Nodes are tokens, edges are grammatical relations, and each
sentence root hangs off a synthetic S node.

Examples:
  echo "This is a sentence." | depviz tree -o tree.svg
  depviz tree -i article.txt -f png -o article.png
  depviz tree -i https://example.com/article.html -u -o article.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), &opts)
		},
	}

	addFetchFlags(cmd, &opts.fetchOpts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), pdf, png, dot")

	return cmd
}

func runTree(ctx context.Context, opts *treeOpts) error {
	logger := loggerFromContext(ctx)

	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return err
	}

	runner, cleanup, err := newRunner(ctx, &opts.fetchOpts)
	if err != nil {
		return err
	}
	defer cleanup()

	popts, err := opts.pipelineOptions(opts.format)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Analyzing...")
	spinner.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.StopWithError(errors.UserMessage(err))
		return err
	}
	spinner.Stop()

	if err := writeOutput(opts.output, result.Artifact); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Rendered %s (%d tokens, %d edges)", opts.output, result.Tokens, result.Edges)
	}
	prog.done("Pipeline complete")
	return nil
}
