// Package cli implements the graphkit command-line interface.
//
// # Commands
//
//   - inspect: summarize a serialized graph
//   - convert: re-encode a graph between JSON, BSON and YAML
//   - render: draw a graph as SVG, PNG or DOT
//   - query: neighbors, edges, degrees and attributes of one node or edge
//   - serve: expose a graph over HTTP, optionally publishing events to Redis
//   - browse: explore a graph interactively in the terminal
//   - cache: manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/internal/config"
	"github.com/matzehuels/graphkit/pkg/buildinfo"
	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/graph"
	gio "github.com/matzehuels/graphkit/pkg/io"
)

const appName = "graphkit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	graphFlags graphFlags
}

// graphFlags override the options stored in a serialized graph.
type graphFlags struct {
	typ       string
	multi     bool
	selfLoops bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "graphkit inspects, converts, queries and serves graphs",
		Long:         `graphkit works with graphs serialized as JSON, BSON or YAML: directed, undirected or mixed, with optional parallel edges and arbitrary attributes.`,
		Version:      buildinfo.Read().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/graphkit/config.toml)")
	pf.StringVar(&c.graphFlags.typ, "graph-type", "", "override the graph type: mixed, directed, undirected")
	pf.BoolVar(&c.graphFlags.multi, "multi", false, "allow parallel edges")
	pf.BoolVar(&c.graphFlags.selfLoops, "self-loops", true, "allow self-loops")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Graph Loading
// =============================================================================

// graphOptions merges the [graph] config section with explicit flags.
// Flags win over the file; both win over the options stored in the graph.
func (c *CLI) graphOptions(cmd *cobra.Command) ([]graph.Option, error) {
	opts := c.Config.GraphOptions()
	flags := cmd.Flags()

	if flags.Changed("graph-type") {
		t, err := graph.ParseType(c.graphFlags.typ)
		if err != nil {
			return nil, err
		}
		opts = append(opts, graph.WithType(t))
	}
	if flags.Changed("multi") {
		opts = append(opts, graph.WithMulti(c.graphFlags.multi))
	}
	if flags.Changed("self-loops") {
		opts = append(opts, graph.WithSelfLoops(c.graphFlags.selfLoops))
	}
	return opts, nil
}

// loadGraph imports the file at path with the effective options.
func (c *CLI) loadGraph(cmd *cobra.Command, path string) (*graph.Graph, error) {
	opts, err := c.graphOptions(cmd)
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	prog := newProgress(logger)
	g, err := gio.Import(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("graph loaded", "path", path, "type", g.Type(), "multi", g.Multi(), "order", g.Order(), "size", g.Size())
	prog.debug("Loaded " + path)
	return g, nil
}

// newCache opens the render cache from config unless disabled.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Entry Point
// =============================================================================

// Execute builds the command tree and runs it with ctx.
func Execute(ctx context.Context, args []string) error {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pre := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(LogDebug)
		}
		return pre(cmd, args)
	}

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
