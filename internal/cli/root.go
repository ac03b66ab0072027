package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "callgraphtool <folder> <function>",
		Short: "Generate a static call graph for a function",
		Long: `callgraphtool runs the callGraph static analyzer over a folder, starting
from one function, then turns the graph it draws into an indented call tree.

The start function may be a bare name, a pasted definition line such as
"def main(argv):", or a file:function pair (for example src/app.py:main)
when the same name is defined in several files.

Artifacts: the image written by callGraph, <output>.tree.txt with the call
tree, and <output>_subset.<ext> with the reachable source, headed by the
call tree as a comment.`,
		Version:       version,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          RunCallgraph,
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("%w\n\n%s", err, cmd.UsageString())}
	})

	flags := rootCmd.Flags()
	flags.StringP("language", "l", "", "Language code passed to callGraph (default: config, else inferred, else py)")
	flags.StringP("output", "o", "", "Output image path (default: ./callgraph_<function>.png)")
	flags.String("callgraph-bin", "", "Path to the callGraph executable")
	flags.Bool("full-path", false, "Label nodes with full file paths")
	flags.Bool("show", false, "Let callGraph open its viewer")
	flags.String("subset", "", "Subset source path (default: <output>_subset.<ext>)")
	flags.Bool("no-subset", false, "Do not request a subset source file")
	flags.String("tree", "", "Call tree text path (default: <output>.tree.txt)")
	flags.Bool("no-tree", false, "Skip call tree post-processing")
	flags.String("config", "", "Config file path")
	flags.Bool("json", false, "Print machine-readable run summary")
	flags.BoolP("verbose", "v", false, "Enable debug logging")

	return rootCmd
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &ExitError{Code: ExitCodeUsage, Err: fmt.Errorf("%w\n\n%s", err, cmd.UsageString())}
		}
		return nil
	}
}
