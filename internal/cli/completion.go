package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	gio "github.com/matzehuels/graphkit/pkg/io"
	"github.com/matzehuels/graphkit/pkg/render/nodelink"
)

// graphExtensions are the file extensions offered for graph arguments.
var graphExtensions = []string{"json", "bson", "yaml", "yml"}

// completionCommand prints a shell completion script for graphkit.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for graphkit. Besides subcommands and flags it
completes graph files (.json, .bson, .yaml) and the values of --graph-type,
--type, --direction, --from, --to, --format and --rankdir.

  $ source <(graphkit completion bash)
  $ graphkit completion zsh > "${fpath[1]}/_graphkit"
  $ graphkit completion fish > ~/.config/fish/completions/graphkit.fish
  PS> graphkit completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}

// flagValues maps flag names to the values offered for them.
func flagValues() map[string][]string {
	var codecs, renders []string
	for _, f := range gio.Formats {
		codecs = append(codecs, string(f))
	}
	for _, f := range nodelink.Formats {
		renders = append(renders, string(f))
	}
	types := []string{"mixed", "directed", "undirected"}
	return map[string][]string{
		"graph-type": types,
		"type":       types,
		"direction":  {"in", "out"},
		"from":       codecs,
		"to":         codecs,
		"format":     renders,
		"rankdir":    nodelink.RankDirs,
	}
}

// registerCompletions walks the command tree, offering graph files for the
// first positional argument of commands that read one and fixed values for
// enumerated flags.
func registerCompletions(root *cobra.Command) {
	values := flagValues()
	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		if fields := strings.Fields(cmd.Use); len(fields) > 1 && (fields[1] == "[file]" || fields[1] == "[input]") {
			cmd.ValidArgsFunction = completeGraphFile
		}
		for name, vals := range values {
			if cmd.LocalFlags().Lookup(name) == nil {
				continue
			}
			_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(vals, cobra.ShellCompDirectiveNoFileComp))
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
}

// completeGraphFile offers graph files for the first argument. The output
// of convert may be any path.
func completeGraphFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch {
	case len(args) == 0:
		return graphExtensions, cobra.ShellCompDirectiveFilterFileExt
	case len(args) == 1 && cmd.Name() == "convert":
		return nil, cobra.ShellCompDirectiveDefault
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
