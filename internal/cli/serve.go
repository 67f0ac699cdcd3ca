package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/publish"
	"github.com/matzehuels/graphkit/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string
	cors       string
	name       string
	publish    bool // forward change events to Redis pub/sub
	redisCache bool // cache rendered diagrams in Redis instead of on disk
	noCache    bool
	watch      bool // reload when the file changes
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a graph over a read-only HTTP API",
		Long: `Serve a graph over a read-only HTTP API.

Send SIGHUP, or pass --watch, to reload the file. With --publish, the events
of every reload are published to the Redis channel from the [redis] config
section, and websocket clients of /events receive them too.`,
		Example: `  graphkit serve deps.json --addr :8080 --watch
  graphkit serve deps.json --publish --redis-cache`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.addr == "" {
				opts.addr = c.Config.Server.Addr
			}
			if opts.cors == "" {
				opts.cors = c.Config.Server.CORSOrigin
			}
			if opts.name == "" {
				opts.name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			return c.runServe(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.cors, "cors", "", "allowed CORS origin")
	cmd.Flags().StringVar(&opts.name, "name", "", "graph name used in published messages (default: file name)")
	cmd.Flags().BoolVar(&opts.publish, "publish", false, "publish change events to Redis")
	cmd.Flags().BoolVar(&opts.redisCache, "redis-cache", false, "cache rendered diagrams in Redis")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "reload the graph when the file changes")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, path string, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	rc := c.Config.Redis

	var pub publish.Publisher
	var serverOpts []server.Option
	if opts.publish {
		p, err := publish.NewRedisPublisher(ctx, publish.RedisConfig{
			Addr: rc.Addr, Password: rc.Password, DB: rc.DB, Channel: rc.Channel,
		})
		if err != nil {
			return err
		}
		defer p.Close()
		logger.Info("publishing events", "channel", p.Channel())
		pub = p
		serverOpts = append(serverOpts, server.WithEvents(p.Subscribe))
	}

	store, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	load := func() (*graph.Graph, error) {
		return c.loadServed(cmd, path, opts.name, pub, logger)
	}
	g, err := load()
	if err != nil {
		return err
	}

	srv := server.New(g, append(serverOpts,
		server.WithLogger(logger),
		server.WithCache(store),
		server.WithKeyer(cache.NewScopedKeyer(cache.NewDefaultKeyer(), rc.Prefix)),
		server.WithRenderTTL(c.Config.Render.CacheTTL.Duration),
		server.WithCORSOrigin(opts.cors),
		server.WithName(opts.name),
	)...)

	var mu sync.Mutex
	reload := func(trigger string) {
		mu.Lock()
		defer mu.Unlock()
		next, err := load()
		if err != nil {
			logger.Error("reload failed", "path", path, "err", err)
			return
		}
		srv.Replace(next)
		logger.Info("reloaded", "path", path, "trigger", trigger, "order", next.Order(), "size", next.Size())
	}

	if opts.watch {
		if err := watchFile(ctx, path, 100*time.Millisecond, logger, func() { reload("watch") }); err != nil {
			return err
		}
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				reload("SIGHUP")
			}
		}
	}()

	printInfo("Serving %s on %s", StyleHighlight.Render(path), StyleLink.Render(opts.addr))
	return srv.ListenAndServe(ctx, opts.addr)
}

// loadServed imports path and, when pub is set, replays it into a fresh
// graph with the publisher attached so subscribers see every node and edge.
// The publisher stays attached to the returned graph.
func (c *CLI) loadServed(cmd *cobra.Command, path, name string, pub publish.Publisher, logger *log.Logger) (*graph.Graph, error) {
	g, err := c.loadGraph(cmd, path)
	if err != nil || pub == nil {
		return g, err
	}
	served, err := g.NullCopy()
	if err != nil {
		return nil, err
	}
	publish.Attach(cmd.Context(), served, name, pub, logger)
	graph.LogEvents(served, logger)
	if err := served.Import(g.Export(), false); err != nil {
		return nil, err
	}
	return served, nil
}

// serverCache picks the render cache backend for serve.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if !opts.redisCache || opts.noCache {
		return c.newCache(opts.noCache)
	}
	rc := c.Config.Redis
	rdb, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr: rc.Addr, Password: rc.Password, DB: rc.DB,
	})
	if err != nil {
		return nil, err
	}
	return rdb, nil
}
