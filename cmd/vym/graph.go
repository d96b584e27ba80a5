package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym/internal/cli"
	"github.com/sz10101/vym/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <map>",
	Short: "Print a map as a Mermaid diagram",
	Long: `Opens the map and prints a Mermaid flowchart of its branches and xlinks.
With --select the branch at that selection is highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.NewSession(sessionOptions(cmd, args))
		if err != nil {
			return err
		}
		defer env.Session.Close()

		m := env.Session.Host().Current()
		if m == nil {
			return errors.New("no map open")
		}

		var overlay *graph.GraphOverlay
		if sel, _ := cmd.Flags().GetString("select"); sel != "" {
			if !m.Select(sel) {
				return fmt.Errorf("nothing selected by %q", sel)
			}
			overlay = &graph.GraphOverlay{SelectedID: m.SelectedID()}
		}

		fmt.Fprintln(cmd.OutOrStdout(), graph.GenerateMermaid(m.Document(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("select", "s", "", "Selection string of a branch to highlight, e.g. mc:0,bo:1")
}
