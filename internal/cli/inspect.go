package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphkit/pkg/graph"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		trace  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Summarize a serialized graph",
		Long: `Summarize a serialized graph: its kind, order, size, self-loops and attributes.

With --trace, the graph is replayed into an empty graph of the same kind and
every change event is logged at debug level (implies --verbose).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			if trace {
				if err := c.traceGraph(g); err != nil {
					return err
				}
			}

			in := g.Inspect()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(in)
			}
			printInspection(args[0], in)
			return nil
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "log every change event while replaying the graph")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// traceGraph replays g into a null copy with event logging attached.
func (c *CLI) traceGraph(g *graph.Graph) error {
	c.SetLogLevel(LogDebug)
	replay, err := g.NullCopy()
	if err != nil {
		return err
	}
	detach := graph.LogEvents(replay, c.Logger)
	defer detach()
	return replay.Import(g.Export(), false)
}

func printInspection(path string, in graph.Inspection) {
	fmt.Println(StyleTitle.Render(in.Name) + " " + StyleDim.Render(path))
	printNewline()
	printKeyValue("type", in.Options.Type.String())
	printKeyValue("multi", strconv.FormatBool(in.Options.Multi))
	printKeyValue("self-loops", strconv.FormatBool(in.Options.AllowSelfLoops))
	printKeyValue("order", StyleNumber.Render(strconv.Itoa(in.Order)))
	printKeyValue("size", StyleNumber.Render(strconv.Itoa(in.Size)))
	printKeyValue("directed", strconv.Itoa(in.DirectedSize))
	printKeyValue("undirected", strconv.Itoa(in.UndirectedSize))
	printKeyValue("loops", strconv.Itoa(in.SelfLoops))
	for _, k := range sortedKeys(in.Attributes) {
		printKeyValue("@"+k, fmt.Sprint(in.Attributes[k]))
	}
	if in.Order == 0 {
		printNewline()
		printWarning("Graph is empty")
	}
}
