// Package pipeline provides the core fetch → build → render pipeline for depviz.
//
// This package implements the complete document fetch, graph construction,
// and rendering flow shared by the CLI and the HTTP server. Centralizing
// it keeps behavior identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Request the annotated document from the Rosette API
//  2. Build: Project tokens and dependency edges into a DOT digraph
//  3. Render: Rasterize the digraph (SVG in-process, PDF/PNG via librsvg)
//
// Each stage can be run independently or as part of the complete pipeline.
// Every invocation builds fresh state; nothing is shared between calls.
//
// # Usage
//
//	runner := pipeline.NewRunner(client, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Content: "This is a sentence.",
//	    Format:  pipeline.FormatSVG,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifact
package pipeline

import (
	"context"

	"github.com/aweissman/depviz/pkg/adm"
	"github.com/aweissman/depviz/pkg/errors"
	"github.com/aweissman/depviz/pkg/rosette"
)

// Format constants for pipeline output.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatPNG = "png"
)

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = FormatSVG

// DefaultPNGScale is the rasterization scale for PNG output.
// 2x resolution keeps labels readable on high-DPI displays.
const DefaultPNGScale = 2.0

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

// ValidateFormat checks that format names a supported output format.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", format)
	}
	return nil
}

// Fetcher retrieves an annotated document for a request. The rosette
// package provides the production implementation; tests inject stubs so
// the pipeline runs without network access.
type Fetcher interface {
	FetchDocument(ctx context.Context, req rosette.Request) (*adm.Document, error)
}

// Options holds all pipeline parameters for one invocation.
type Options struct {
	Content     string // Raw text to analyze
	ContentURI  string // URI to extract content from (exclusive with Content)
	Language    string // Optional ISO 639-2 T language override
	Endpoint    string // API endpoint override (default: syntax/dependencies)
	Format      string // Output format (default: svg)
	ShowIndices bool   // Decorate node labels with token order
	Refresh     bool   // Bypass the document cache
}

// SetDefaults fills unset options with their defaults.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
}

// Validate checks the options for consistency.
func (o *Options) Validate() error {
	if o.Content == "" && o.ContentURI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no content to analyze")
	}
	if o.Content != "" && o.ContentURI != "" {
		return errors.New(errors.ErrCodeInvalidInput, "content and content URI are mutually exclusive")
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errors.ValidateLanguage(o.Language); err != nil {
		return err
	}
	if o.Endpoint != "" {
		if err := errors.ValidateEndpoint(o.Endpoint); err != nil {
			return err
		}
	}
	return nil
}

// Result holds the pipeline output.
type Result struct {
	DOT      string // The digraph description (always populated)
	Artifact []byte // Rendered output in the requested format
	Format   string // Format of Artifact
	Tokens   int    // Token node count (excluding synthetic sentence roots)
	Edges    int    // Dependency edge count
}
