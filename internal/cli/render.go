package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aweissman/depviz/pkg/errors"
	"github.com/aweissman/depviz/pkg/pipeline"
	"github.com/aweissman/depviz/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file path (derived from input if empty)
	format string // output format: svg, pdf, png
}

// newRenderCmd creates the render command for rasterizing an existing
// DOT file. This is the offline half of the pipeline: no API key or
// network access is needed.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: pipeline.FormatSVG}

	cmd := &cobra.Command{
		Use:   "render <file.dot>",
		Short: "Render a DOT digraph file to SVG, PDF, or PNG",
		Long: `Render a previously generated DOT digraph description to an image.
Pass "-" to read the description from stdin.

Examples:
  depviz graph -i article.txt -o article.dot
  depviz render article.dot -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (derived from input if empty)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), pdf, png")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	switch opts.format {
	case pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatPNG:
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %s (must be 'svg', 'pdf', or 'png')", opts.format)
	}

	dot, err := readDOT(input)
	if err != nil {
		return err
	}
	logger.Debugf("Read %d bytes of DOT", len(dot))

	svg, err := render.SVG(ctx, dot)
	if err != nil {
		return err
	}

	var artifact []byte
	switch opts.format {
	case pipeline.FormatSVG:
		artifact = svg
	case pipeline.FormatPDF:
		if artifact, err = render.ToPDF(svg); err != nil {
			return err
		}
	case pipeline.FormatPNG:
		if artifact, err = render.ToPNG(svg, pipeline.DefaultPNGScale); err != nil {
			return err
		}
	}

	output := opts.output
	if output == "" && input != "-" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := writeOutput(output, artifact); err != nil {
		return err
	}

	if output != "" {
		printSuccess("Rendered %s", output)
	}
	return nil
}

// readDOT loads the digraph description from a file, or stdin for "-".
func readDOT(input string) (string, error) {
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", input)
	}
	return string(data), nil
}
