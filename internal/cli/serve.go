package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/aweissman/depviz/internal/server"
)

// defaultListenAddr is the serve command's default bind address.
const defaultListenAddr = ":8080"

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	fetchOpts
	listen string // bind address
}

// newServeCmd creates the serve command, exposing the pipeline over HTTP.
// The API key is resolved once at startup and held server-side; clients
// never see it.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse tree pipeline over HTTP",
		Long: `Start an HTTP server exposing the fetch → build → render pipeline.

Routes:
  POST /v1/graph   returns the DOT digraph description
  POST /v1/render  returns the rendered image (?format=svg|pdf|png)
  GET  /healthz    liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "listen address (default "+defaultListenAddr+")")
	cmd.Flags().StringVarP(&opts.key, "key", "k", "", "Rosette API key (overrides "+keyEnvVar+" and the config file)")
	cmd.Flags().StringVarP(&opts.apiURL, "api-url", "a", "", "alternative Rosette API URL")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the document cache")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runner, cleanup, err := newRunnerWithConfig(ctx, &opts.fetchOpts, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := opts.listen
	if addr == "" {
		if addr = cfg.Listen; addr == "" {
			addr = defaultListenAddr
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(runner, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
