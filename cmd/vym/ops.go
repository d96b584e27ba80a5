package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/sz10101/vym/internal/presentation/tui"
	"github.com/sz10101/vym/pkg/script"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the script operations",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := tui.NewRenderer()(script.Reference())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}
