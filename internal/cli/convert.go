package cli

import (
	"github.com/spf13/cobra"

	gio "github.com/matzehuels/graphkit/pkg/io"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a graph between JSON, BSON and YAML",
		Long: `Convert a graph between JSON, BSON and YAML.

Formats are inferred from the file extensions unless --from or --to is given.
Graph option flags (--graph-type, --multi, --self-loops) are applied to the
converted graph.`,
		Example: `  graphkit convert deps.json deps.bson
  graphkit convert --from json dump.txt deps.bson
  graphkit convert deps.json deps.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in, out := args[0], args[1]

			inFormat, err := formatOrInfer(from, in)
			if err != nil {
				return err
			}
			outFormat, err := formatOrInfer(to, out)
			if err != nil {
				return err
			}
			opts, err := c.graphOptions(cmd)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			g, err := gio.ImportAs(ctx, in, inFormat, opts...)
			if err != nil {
				return err
			}
			if err := gio.ExportAs(ctx, g, out, outFormat); err != nil {
				return err
			}
			prog.debug("Converted " + in)

			printSuccess("Converted %s %s %s", in, iconArrow, out)
			printStats(g.Order(), g.Size())
			printNextStep("Inspect it", "graphkit inspect "+out)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "input format: json, bson, yaml")
	cmd.Flags().StringVar(&to, "to", "", "output format: json, bson, yaml")
	return cmd
}

// formatOrInfer parses an explicit format or infers it from path.
func formatOrInfer(explicit, path string) (gio.Format, error) {
	if explicit != "" {
		return gio.ParseFormat(explicit)
	}
	return gio.FormatFromPath(path)
}
