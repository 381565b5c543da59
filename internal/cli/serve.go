package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigvalue/internal/server"
	"github.com/matzehuels/bigvalue/pkg/buildinfo"
	"github.com/matzehuels/bigvalue/pkg/cache"
	"github.com/matzehuels/bigvalue/pkg/observability"
	"github.com/matzehuels/bigvalue/pkg/pipeline"
)

// redisPrefix namespaces every key bigvalue writes to a shared Redis.
const redisPrefix = appName + ":"

// serveCommand creates the serve command, which starts the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered panels over HTTP",
		Long: `Start an HTTP server that renders panels on request.

Routes:
  GET  /healthz               health check
  POST /render?format=svg     render the JSON panel file in the body
  GET  /panel.svg?text=42...  render a panel from query parameters

Artifacts are cached in Redis when --redis (or ` + envRedisURL + `) is set,
otherwise in the local file cache.`,
		Example: `  bigvalue serve --addr :8080
  bigvalue serve --redis redis://localhost:6379/0 -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL == "" {
				redisURL = os.Getenv(envRedisURL)
			}

			runner, err := c.newServerRunner(cmd.Context(), redisURL, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if c.verbose() {
				observability.NewLogHooks(c.Logger).Register()
				defer observability.Reset()
			}

			srv := server.New(server.Config{
				Addr:   addr,
				Runner: runner,
				Logger: c.Logger,
			})
			printInfo("Serving on %s", StyleHighlight.Render(displayURL(addr)))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the shared artifact cache (env "+envRedisURL+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// newServerRunner builds the runner used by the server. Keys are scoped by
// build version.
func (c *CLI) newServerRunner(ctx context.Context, redisURL string, noCache bool) (*pipeline.Runner, error) {
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.CachePrefix())

	var (
		store cache.Cache
		err   error
	)
	switch {
	case noCache:
		store = cache.NewNullCache()
	case redisURL != "":
		store, err = cache.NewRedisCache(ctx, cache.RedisConfig{URL: redisURL, Prefix: redisPrefix})
		if err != nil {
			return nil, err
		}
		c.Logger.Info("using redis cache", "addr", redactURL(redisURL))
	default:
		store, err = newCache(false)
		if err != nil {
			return nil, err
		}
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// displayURL turns a listen address into a clickable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

// redactURL drops credentials from a connection URL before logging it.
func redactURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	if at := strings.LastIndex(rest, "@"); at >= 0 {
		rest = rest[at+1:]
	}
	return scheme + "://" + rest
}
