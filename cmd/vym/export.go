package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym/internal/cli"
	"github.com/sz10101/vym/pkg/script"
)

var exportCmd = &cobra.Command{
	Use:   "export <map> <format> [key=value...]",
	Short: "Export a map without writing a script",
	Long: `Opens the map and calls exportMap with the given format and parameters,
for example:

  vym export plan.vym ASCII filename=plan.txt listTasks=true`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.NewSession(sessionOptions(cmd, args[:1]))
		if err != nil {
			return err
		}
		defer env.Session.Close()

		var errs script.Errors
		m := env.Session.App().CurrentMap().Bind(&errs)
		if !m.ExportMap(args[1], args[2:]) {
			return errs.Err()
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %s as %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
