package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/graph"
)

// selectorFlags are the --type and --direction flags of traversal queries.
type selectorFlags struct {
	typ       string
	direction string
}

func (f *selectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.typ, "type", "", "edge type: mixed (default), directed, undirected")
	cmd.Flags().StringVar(&f.direction, "direction", "", "direction of directed edges: in, out")
}

func (f *selectorFlags) selector() (graph.Selector, error) {
	return graph.ParseSelector(f.typ, f.direction)
}

// queryCommand creates the query command and its subcommands.
func (c *CLI) queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query nodes and edges of a serialized graph",
	}

	var asJSON bool
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")
	emit := func(w io.Writer, v any, lines []string) error {
		if asJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
		return nil
	}

	cmd.AddCommand(c.queryNeighborsCommand(emit))
	cmd.AddCommand(c.queryEdgesCommand(emit))
	cmd.AddCommand(c.queryDegreeCommand(emit))
	cmd.AddCommand(c.queryNodeCommand(emit))
	cmd.AddCommand(c.queryEdgeCommand(emit))
	return cmd
}

type emitFunc func(w io.Writer, v any, lines []string) error

func (c *CLI) queryNeighborsCommand(emit emitFunc) *cobra.Command {
	var sf selectorFlags
	cmd := &cobra.Command{
		Use:     "neighbors [file] [node]",
		Short:   "List the neighbors of a node",
		Example: `  graphkit query neighbors deps.json app --type directed --direction out`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.selector()
			if err != nil {
				return err
			}
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			keys, err := g.NeighborKeys(sel, args[1])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), nonNil(keys), keys)
		},
	}
	sf.register(cmd)
	return cmd
}

func (c *CLI) queryEdgesCommand(emit emitFunc) *cobra.Command {
	var sf selectorFlags
	cmd := &cobra.Command{
		Use:   "edges [file] [node] [target]",
		Short: "List the edges of a node, or between two nodes",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := sf.selector()
			if err != nil {
				return err
			}
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			entries, err := graph.MapEdges(g, sel, func(e graph.EdgeEntry) graph.EdgeEntry { return e }, args[1:]...)
			if err != nil {
				return err
			}
			keys := make([]string, len(entries))
			lines := make([]string, len(entries))
			for i, e := range entries {
				keys[i] = e.Edge
				lines[i] = fmt.Sprintf("%s\t%s", e.Edge, edgeArrow(e))
			}
			return emit(cmd.OutOrStdout(), keys, lines)
		},
	}
	sf.register(cmd)
	return cmd
}

func (c *CLI) queryDegreeCommand(emit emitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "degree [file] [node]",
		Short: "Print every degree variant of a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			d, err := g.AllDegrees(args[1])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), d, []string{
				fmt.Sprintf("in\t%d", d.In),
				fmt.Sprintf("out\t%d", d.Out),
				fmt.Sprintf("directed\t%d", d.Directed),
				fmt.Sprintf("undirected\t%d", d.Undirected),
				fmt.Sprintf("total\t%d", d.Total),
				fmt.Sprintf("self-loops\t%d", d.SelfLoops),
			})
		},
	}
}

func (c *CLI) queryNodeCommand(emit emitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "node [file] [node]",
		Short: "Print the attributes of a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			n, err := g.ExportNode(args[1])
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), n, attributeLines(n.Attributes))
		},
	}
}

func (c *CLI) queryEdgeCommand(emit emitFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "edge [file] [edge]",
		Short: "Print the extremities and attributes of an edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			e, err := g.ExportEdge(args[1])
			if err != nil {
				return err
			}
			entry := graph.EdgeEntry{Edge: args[1], Source: e.Source, Target: e.Target, Undirected: e.Undirected}
			lines := append([]string{edgeArrow(entry)}, attributeLines(e.Attributes)...)
			return emit(cmd.OutOrStdout(), e, lines)
		},
	}
}

func edgeArrow(e graph.EdgeEntry) string {
	if e.Undirected {
		return e.Source + " -- " + e.Target
	}
	return e.Source + " -> " + e.Target
}

func attributeLines(attrs graph.Attributes) []string {
	lines := make([]string, 0, len(attrs))
	for _, k := range sortedKeys(attrs) {
		lines = append(lines, fmt.Sprintf("%s\t%v", k, attrs[k]))
	}
	return lines
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
