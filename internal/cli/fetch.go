package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aweissman/depviz/pkg/pipeline"
	"github.com/aweissman/depviz/pkg/rosette"
)

// fetchOpts holds the command-line flags shared by commands that call
// the Rosette API (tree, graph).
type fetchOpts struct {
	input      string // path to input file (stdin if empty)
	contentURI bool   // treat input as a URI to extract content from
	key        string // API key override
	apiURL     string // API service URL override
	language   string // ISO 639-2 T language override
	endpoint   string // analysis endpoint override
	indices    bool   // decorate node labels with token order
	refresh    bool   // bypass the document cache
	noCache    bool   // disable the document cache entirely
}

// addFetchFlags registers the shared fetch flags on cmd. Short flags
// mirror the classic deps-to-graph script so existing invocations keep
// working.
func addFetchFlags(cmd *cobra.Command, o *fetchOpts) {
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "path to a file containing input data (stdin if empty)")
	cmd.Flags().BoolVarP(&o.contentURI, "content-uri", "u", false, "treat the input as a URI and extract the document content from it")
	cmd.Flags().StringVarP(&o.key, "key", "k", "", "Rosette API key (overrides "+keyEnvVar+" and the config file)")
	cmd.Flags().StringVarP(&o.apiURL, "api-url", "a", "", "alternative Rosette API URL")
	cmd.Flags().StringVarP(&o.language, "language", "l", "", "three-letter ISO 639-2 T code overriding automatic language detection")
	cmd.Flags().StringVar(&o.endpoint, "endpoint", "", "analysis endpoint (default "+rosette.DefaultEndpoint+")")
	cmd.Flags().BoolVarP(&o.indices, "label-indices", "b", false, "add token index labels showing the original token order")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass the document cache")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the document cache")
}

// pipelineOptions resolves the input source into pipeline options.
func (o *fetchOpts) pipelineOptions(format string) (pipeline.Options, error) {
	content, err := loadContent(o.input)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		Language:    o.language,
		Endpoint:    o.endpoint,
		Format:      format,
		ShowIndices: o.indices,
		Refresh:     o.refresh,
	}
	if o.contentURI {
		opts.ContentURI = normalizeURI(content)
	} else {
		opts.Content = content
	}
	return opts, nil
}

// newRunner assembles the document cache, API client, and pipeline
// runner from flags and config. The returned cleanup closes the cache
// backend and must be called when the command finishes.
func newRunner(ctx context.Context, o *fetchOpts) (*pipeline.Runner, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return newRunnerWithConfig(ctx, o, cfg)
}

// newRunnerWithConfig is newRunner for callers that already hold the
// config (serve needs it for the listen address too). Config values fill
// in any fetch options left empty by flags.
func newRunnerWithConfig(ctx context.Context, o *fetchOpts, cfg *config) (*pipeline.Runner, func(), error) {
	key, err := resolveKey(o.key, cfg)
	if err != nil {
		return nil, nil, err
	}

	backend, err := newCacheBackend(cfg, o.noCache)
	if err != nil {
		return nil, nil, err
	}

	apiURL := o.apiURL
	if apiURL == "" {
		apiURL = cfg.APIURL
	}
	if o.language == "" {
		o.language = cfg.Language
	}
	if o.endpoint == "" {
		o.endpoint = cfg.Endpoint
	}

	client := rosette.NewClient(rosette.Config{
		Key:      key,
		BaseURL:  apiURL,
		Cache:    backend,
		CacheTTL: cfg.cacheTTL(),
	})

	runner := pipeline.NewRunner(client, loggerFromContext(ctx))
	cleanup := func() { _ = backend.Close() }
	return runner, cleanup, nil
}
