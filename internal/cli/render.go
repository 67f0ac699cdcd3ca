package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/cache"
	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file path; defaults to the input with the format's extension
	format     string // svg, png or dot
	rankDir    string // Graphviz rankdir
	detailed   bool   // add attributes to labels
	edgeLabels bool   // label edges with their keys
	label      string // node attribute used as label
	noCache    bool   // bypass the render cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph as a node-link diagram",
		Long: `Render a graph as a node-link diagram with Graphviz.

SVG and PNG output is cached by graph content and render options, so
rendering an unchanged graph again is instant.`,
		Example: `  graphkit render deps.json
  graphkit render deps.bson -f png --rankdir LR -o deps.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = c.Config.Render.Format
			}
			if opts.rankDir == "" {
				opts.rankDir = c.Config.Render.RankDir
			}
			opts.rankDir = strings.ToUpper(opts.rankDir)
			if err := errors.ValidateFormat(opts.rankDir, nodelink.RankDirs...); err != nil {
				return err
			}
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), png, dot")
	cmd.Flags().StringVar(&opts.rankDir, "rankdir", "", "layout direction: TB (default), LR, BT, RL")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show attributes in node and edge labels")
	cmd.Flags().BoolVar(&opts.edgeLabels, "edge-labels", false, "label edges with their keys")
	cmd.Flags().StringVar(&opts.label, "label", "", "node attribute to use as the label")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the render cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	format, err := nodelink.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	g, err := c.loadGraph(cmd, path)
	if err != nil {
		return err
	}

	store, err := c.newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + string(format)
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+path+"...")
	spinner.Start()
	prog := newProgress(logger)
	data, cached, err := renderCached(ctx, cache.Instrumented(store, "render"), c.Config.Render.CacheTTL.Duration, g, format, nodelink.Options{
		Detailed:       opts.detailed,
		RankDir:        opts.rankDir,
		EdgeLabels:     opts.edgeLabels,
		LabelAttribute: opts.label,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", out)
	}
	prog.debug("Rendered " + out)

	printSuccess("Rendered %s", path)
	printStats(g.Order(), g.Size(), cacheStatus(cached))
	printFile(out)
	return nil
}

// renderCached renders g, reading and writing c by content hash. DOT output
// is never cached.
func renderCached(ctx context.Context, c cache.Cache, ttl time.Duration, g *graph.Graph, format nodelink.Format, opts nodelink.Options) ([]byte, bool, error) {
	if format == nodelink.FormatDOT {
		data, err := nodelink.Render(ctx, g, format, opts)
		return data, false, err
	}

	doc, err := json.Marshal(g.Export())
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	key := cache.NewDefaultKeyer().RenderKey(cache.Hash(doc), cache.RenderKeyOpts{
		Format:   string(format),
		RankDir:  opts.RankDir,
		Detailed: opts.Detailed,
		Label:    opts.LabelAttribute,
		Edges:    opts.EdgeLabels,
	})

	logger := loggerFromContext(ctx)
	if data, hit, err := c.Get(ctx, key); err != nil {
		logger.Warn("render cache read failed", "err", err)
	} else if hit {
		logger.Debug("render cache hit", "key", key)
		return data, true, nil
	}

	data, err := nodelink.Render(ctx, g, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("render cache write failed", "err", err)
	}
	return data, false, nil
}
