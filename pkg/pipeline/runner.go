package pipeline

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/aweissman/depviz/pkg/adm"
	"github.com/aweissman/depviz/pkg/depgraph"
	"github.com/aweissman/depviz/pkg/render"
	"github.com/aweissman/depviz/pkg/rosette"
)

// Runner executes the fetch → build → render pipeline.
// A Runner holds no per-invocation state and is safe for concurrent use
// as long as its Fetcher is.
type Runner struct {
	fetcher Fetcher
	logger  *log.Logger
}

// NewRunner creates a pipeline runner. A nil logger disables logging.
func NewRunner(fetcher Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{fetcher: fetcher, logger: logger}
}

// Execute runs the complete pipeline and returns the rendered result.
// Options are defaulted and validated before any network call; every
// failure aborts the pipeline with no partial result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	doc, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}

	result, err := r.BuildGraph(doc, opts)
	if err != nil {
		return nil, err
	}

	if err := r.Render(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Fetch requests the annotated document for opts from the fetch service.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*adm.Document, error) {
	r.logger.Debug("Fetching annotated document", "endpoint", opts.Endpoint, "language", opts.Language)

	doc, err := r.fetcher.FetchDocument(ctx, rosette.Request{
		Content:    opts.Content,
		ContentURI: opts.ContentURI,
		Language:   opts.Language,
		Endpoint:   opts.Endpoint,
		Refresh:    opts.Refresh,
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// BuildGraph projects the document into a digraph and serializes it as
// DOT. The returned Result has DOT and counts populated; Render fills in
// the artifact.
func (r *Runner) BuildGraph(doc *adm.Document, opts Options) (*Result, error) {
	tokens, err := doc.Tokens()
	if err != nil {
		return nil, err
	}
	deps, err := doc.Dependencies()
	if err != nil {
		return nil, err
	}

	g := depgraph.Build(tokens, deps, depgraph.Options{ShowIndices: opts.ShowIndices})
	r.logger.Debug("Built digraph", "tokens", len(tokens), "edges", len(deps))

	return &Result{
		DOT:    g.DOT(),
		Format: opts.Format,
		Tokens: len(tokens),
		Edges:  len(deps),
	}, nil
}

// Render rasterizes result.DOT into result.Format, storing the bytes in
// result.Artifact. For FormatDOT the artifact is the description itself.
func (r *Runner) Render(ctx context.Context, result *Result) error {
	if result.Format == FormatDOT {
		result.Artifact = []byte(result.DOT)
		return nil
	}

	r.logger.Debug("Rendering", "format", result.Format)
	svg, err := render.SVG(ctx, result.DOT)
	if err != nil {
		return err
	}

	switch result.Format {
	case FormatSVG:
		result.Artifact = svg
	case FormatPDF:
		pdf, err := render.ToPDF(svg)
		if err != nil {
			return err
		}
		result.Artifact = pdf
	case FormatPNG:
		png, err := render.ToPNG(svg, DefaultPNGScale)
		if err != nil {
			return err
		}
		result.Artifact = png
	default:
		return ValidateFormat(result.Format)
	}
	return nil
}
